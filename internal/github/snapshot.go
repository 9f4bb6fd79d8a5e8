package github

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/git-scope/git-scope/internal/models"
)

// SnapshotLoader loads a user's profile, repositories, and recent events.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context, username string) (*models.Snapshot, error)
}

// LoadSnapshot issues the profile, repository, and event reads concurrently
// and joins the results. If any one read fails the whole load fails; no
// partial snapshot is surfaced.
func (c *Client) LoadSnapshot(ctx context.Context, username string) (*models.Snapshot, error) {
	if username == "" {
		return nil, NewValidationError("username", "cannot be empty")
	}

	var (
		user   *models.User
		repos  []models.Repository
		events []models.Event
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		user, err = c.GetUser(gCtx, username)
		return err
	})

	g.Go(func() error {
		var err error
		repos, err = c.GetRepos(gCtx, username)
		return err
	})

	g.Go(func() error {
		var err error
		events, err = c.GetRecentEvents(gCtx, username)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.Snapshot{
		Username: username,
		User:     user,
		Repos:    repos,
		Events:   events,
	}, nil
}
