// Package narrate turns user snapshots into natural-language summaries and
// comparisons, via the chat-completion API when a credential is configured
// and a deterministic fallback otherwise.
package narrate

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	apperrors "github.com/git-scope/git-scope/internal/errors"
	"github.com/git-scope/git-scope/internal/llm"
	"github.com/git-scope/git-scope/internal/metrics"
	"github.com/git-scope/git-scope/internal/models"
	"github.com/git-scope/git-scope/internal/prompt"
)

// Narration sources. Fallback and model narrations follow different
// templates; they are distinct output contracts, not one with two sources.
const (
	ViaOpenAI   = "openai"
	ViaFallback = "fallback"
)

// Narration is the text returned to the caller, tagged with its source.
type Narration struct {
	Summary string `json:"summary"`
	Via     string `json:"via"`
}

// Completer produces a completion for a system + user prompt pair.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Service builds prompts from snapshot aggregates and resolves them to a
// narration. A nil completer means no model credential is configured and
// every request takes the fallback path.
type Service struct {
	completer  Completer
	windowDays int
	logger     *logrus.Logger
}

// NewService creates a narration service. completer may be nil.
func NewService(completer Completer, windowDays int, logger *logrus.Logger) *Service {
	return &Service{
		completer:  completer,
		windowDays: windowDays,
		logger:     logger,
	}
}

// Summarize produces a single-profile narration for a snapshot.
func (s *Service) Summarize(ctx context.Context, snap *models.Snapshot) (*Narration, error) {
	if snap == nil || snap.User == nil {
		return nil, apperrors.NewValidationError("snapshot user is required", nil)
	}

	agg := metrics.Summarize(snap.Repos, snap.Events, s.windowDays)

	if s.completer == nil {
		return &Narration{Summary: s.fallbackSummary(snap, agg), Via: ViaFallback}, nil
	}

	userPrompt := prompt.BuildSummaryPrompt(prompt.SummaryParams{
		Username:     snap.Username,
		Name:         snap.User.Name,
		Bio:          snap.User.Bio,
		Followers:    snap.User.Followers,
		PublicRepos:  snap.User.PublicRepos,
		TotalStars:   agg.TotalStars,
		TopRepos:     agg.TopRepos,
		TopLanguages: agg.TopLanguages,
		CommitCount:  agg.CommitCount,
	})

	text, err := s.complete(ctx, prompt.SystemSummary, userPrompt)
	if err != nil {
		return nil, err
	}
	return &Narration{Summary: text, Via: ViaOpenAI}, nil
}

// Compare produces a two-profile comparison narration.
func (s *Service) Compare(ctx context.Context, a, b *models.Snapshot) (*Narration, error) {
	if a == nil || a.User == nil || b == nil || b.User == nil {
		return nil, apperrors.NewValidationError("both snapshots are required", nil)
	}

	aggA := metrics.Summarize(a.Repos, a.Events, s.windowDays)
	aggB := metrics.Summarize(b.Repos, b.Events, s.windowDays)

	if s.completer == nil {
		return &Narration{Summary: fallbackCompare(a, b, aggA, aggB), Via: ViaFallback}, nil
	}

	userPrompt := prompt.BuildComparePrompt(compareParams(a, aggA), compareParams(b, aggB))

	text, err := s.complete(ctx, prompt.SystemCompare, userPrompt)
	if err != nil {
		return nil, err
	}
	return &Narration{Summary: text, Via: ViaOpenAI}, nil
}

// complete calls the model and maps failures onto the service error
// taxonomy: non-success responses propagate the upstream status and message,
// transport failures become network errors.
func (s *Service) complete(ctx context.Context, system, user string) (string, error) {
	text, err := s.completer.Complete(ctx, system, user)
	if err == nil {
		return text, nil
	}

	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		return "", apperrors.NewUpstreamError(apiErr.StatusCode, apiErr.Message)
	}

	s.logger.WithError(err).Error("Completion request failed")
	return "", apperrors.NewNetworkError(fmt.Sprintf("Network error: %v", err), err)
}

func compareParams(snap *models.Snapshot, agg metrics.Summary) prompt.CompareParams {
	return prompt.CompareParams{
		Username:     snap.Username,
		Name:         snap.User.Name,
		Followers:    snap.User.Followers,
		PublicRepos:  snap.User.PublicRepos,
		TotalStars:   agg.TotalStars,
		TopRepos:     agg.TopRepos,
		TopLanguages: agg.TopLanguages,
		Commits30d:   agg.CommitCount,
	}
}

// fallbackSummary synthesizes deterministic narration text directly from the
// aggregated numbers when no model credential is configured.
func (s *Service) fallbackSummary(snap *models.Snapshot, agg metrics.Summary) string {
	topRepos := agg.TopRepos
	if topRepos == "" {
		topRepos = "N/A"
	}

	focus := "varied languages"
	if len(snap.Repos) > 0 && snap.Repos[0].Language != "" {
		focus = snap.Repos[0].Language
	}

	return fmt.Sprintf("@%s has %d public repos and %d followers. Total stars across repositories is %d. Top repositories: %s. Recent push activity shows ~%d commits. Overall, the profile suggests areas of focus around %s. Consider improving README quality, adding topics, and contributing to trending projects.",
		snap.Username, snap.User.PublicRepos, snap.User.Followers,
		agg.TotalStars, topRepos, agg.CommitCount, focus)
}

func fallbackCompare(a, b *models.Snapshot, aggA, aggB metrics.Summary) string {
	return fmt.Sprintf(`Summary: @%s vs @%s. A stars=%d, repos=%d, commits30d=%d. B stars=%d, repos=%d, commits30d=%d.

- **Total stars:** A %d vs B %d
- **Public repos:** A %d vs B %d
- **Commit activity (30d):** A %d vs B %d

Suggestions:
- A: improve docs, tests, topics; promote top repos.
- B: collaborate more, add CI, contribute to OSS.`,
		a.Username, b.Username,
		aggA.TotalStars, a.User.PublicRepos, aggA.CommitCount,
		aggB.TotalStars, b.User.PublicRepos, aggB.CommitCount,
		aggA.TotalStars, aggB.TotalStars,
		a.User.PublicRepos, b.User.PublicRepos,
		aggA.CommitCount, aggB.CommitCount)
}
