// Package metrics computes derived statistics over fetched GitHub snapshots.
// Every function is pure, deterministic, and total over its inputs.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/git-scope/git-scope/internal/models"
)

// Summary bundles the aggregate metrics for one repository/event snapshot.
type Summary struct {
	TotalStars   int    `json:"total_stars"`
	TopRepos     string `json:"top_repos"`
	TopLanguages string `json:"top_languages"`
	CommitCount  int    `json:"commit_count"`
}

// Summarize computes all aggregates for a snapshot using a windowDays
// lookback ending now.
func Summarize(repos []models.Repository, events []models.Event, windowDays int) Summary {
	return SummarizeAt(repos, events, time.Now(), windowDays)
}

// SummarizeAt is Summarize with an explicit window end.
func SummarizeAt(repos []models.Repository, events []models.Event, now time.Time, windowDays int) Summary {
	return Summary{
		TotalStars:   TotalStars(repos),
		TopRepos:     TopRepositories(repos, 5),
		TopLanguages: TopLanguages(repos, 3),
		CommitCount:  CommitActivityAt(events, now, windowDays),
	}
}

// TotalStars sums stargazer counts across repositories. Empty input yields 0.
func TotalStars(repos []models.Repository) int {
	total := 0
	for _, r := range repos {
		total += r.StarsCount
	}
	return total
}

// TopRepositories returns the n highest-starred repositories rendered as
// "name (X★)" joined by ", ". Ties keep input order. Empty input yields "".
func TopRepositories(repos []models.Repository, n int) string {
	sorted := make([]models.Repository, len(repos))
	copy(sorted, repos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StarsCount > sorted[j].StarsCount
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	parts := make([]string, 0, len(sorted))
	for _, r := range sorted {
		parts = append(parts, fmt.Sprintf("%s (%d★)", r.Name, r.StarsCount))
	}
	return strings.Join(parts, ", ")
}

// TopLanguages returns the n most frequent primary languages rendered as
// "lang (count)" joined by ", ". Repositories with a blank language are
// excluded entirely, never counted as unknown. Ties keep first-seen order.
func TopLanguages(repos []models.Repository, n int) string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range repos {
		lang := strings.TrimSpace(r.Language)
		if lang == "" {
			continue
		}
		if _, seen := counts[lang]; !seen {
			order = append(order, lang)
		}
		counts[lang]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}

	parts := make([]string, 0, len(order))
	for _, lang := range order {
		parts = append(parts, fmt.Sprintf("%s (%d)", lang, counts[lang]))
	}
	return strings.Join(parts, ", ")
}

// CommitActivity counts commits in push events within the last windowDays.
func CommitActivity(events []models.Event, windowDays int) int {
	return CommitActivityAt(events, time.Now(), windowDays)
}

// CommitActivityAt counts commits carried by events whose type is exactly
// "PushEvent" and whose timestamp falls within [now - windowDays, now].
// Events with a missing payload or commit list contribute 0, as do events
// with an unparseable timestamp.
func CommitActivityAt(events []models.Event, now time.Time, windowDays int) int {
	cutoff := now.AddDate(0, 0, -windowDays)
	commits := 0
	for _, ev := range events {
		if ev.Type != models.PushEventType {
			continue
		}
		ts, err := time.Parse(time.RFC3339, ev.CreatedAt)
		if err != nil {
			continue
		}
		if ts.Before(cutoff) || ts.After(now) {
			continue
		}
		if ev.Payload != nil {
			commits += len(ev.Payload.Commits)
		}
	}
	return commits
}
