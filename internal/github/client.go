package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/git-scope/git-scope/internal/models"
)

const acceptHeader = "application/vnd.github+json"

// Client is a read-only client for the GitHub REST API. Without a token it
// runs under anonymous rate limits; with one, requests are authenticated via
// an oauth2 static token source.
type Client struct {
	client  *http.Client
	baseURL string
	logger  *logrus.Logger

	reposPerPage  int
	eventsPerPage int
}

// ClientOption allows configuring the GitHub client
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithPageSizes configures the repository and event page caps.
func WithPageSizes(reposPerPage, eventsPerPage int) ClientOption {
	return func(c *Client) {
		c.reposPerPage = reposPerPage
		c.eventsPerPage = eventsPerPage
	}
}

// NewClient creates a new GitHub client with the given token and options.
// An empty token yields an unauthenticated client.
func NewClient(token string, logger *logrus.Logger, opts ...ClientOption) *Client {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = 30 * time.Second
	}

	client := &Client{
		client:        httpClient,
		baseURL:       "https://api.github.com",
		logger:        logger,
		reposPerPage:  100,
		eventsPerPage: 100,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// GetUser fetches the public profile for a username.
func (c *Client) GetUser(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, NewValidationError("username", "cannot be empty")
	}

	var user models.User
	path := fmt.Sprintf("/users/%s", url.PathEscape(username))
	if err := c.get(ctx, path, username, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetRepos fetches the user's repositories, most recently updated first,
// capped at the configured page size.
func (c *Client) GetRepos(ctx context.Context, username string) ([]models.Repository, error) {
	if username == "" {
		return nil, NewValidationError("username", "cannot be empty")
	}

	query := url.Values{}
	query.Set("per_page", strconv.Itoa(c.reposPerPage))
	query.Set("sort", "updated")

	var repos []models.Repository
	path := fmt.Sprintf("/users/%s/repos?%s", url.PathEscape(username), query.Encode())
	if err := c.get(ctx, path, username, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// GetRecentEvents fetches the user's recent public events, most recent first,
// capped at the configured page size.
func (c *Client) GetRecentEvents(ctx context.Context, username string) ([]models.Event, error) {
	if username == "" {
		return nil, NewValidationError("username", "cannot be empty")
	}

	query := url.Values{}
	query.Set("per_page", strconv.Itoa(c.eventsPerPage))

	var events []models.Event
	path := fmt.Sprintf("/users/%s/events/public?%s", url.PathEscape(username), query.Encode())
	if err := c.get(ctx, path, username, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// get performs a single GET without retries. Each read is independent and
// side-effect free; callers fan them out and fail independently.
func (c *Client) get(ctx context.Context, path, username string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewAPIError(resp.StatusCode, "failed to read response body")
	}

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp, username, body)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) statusError(resp *http.Response, username string, body []byte) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return NewNotFoundError(username)
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		retryAfter := retryAfterSeconds(resp)
		c.logger.WithFields(logrus.Fields{
			"status":      resp.StatusCode,
			"retry_after": retryAfter,
		}).Warn("GitHub rate limit exhausted")
		return NewRateLimitError(retryAfter)
	default:
		return NewAPIError(resp.StatusCode, string(body))
	}
}

// retryAfterSeconds extracts a retry hint from Retry-After or, failing that,
// the X-RateLimit-Reset epoch. Zero means no hint was reported.
func retryAfterSeconds(resp *http.Response) int {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return secs
		}
	}
	if v := resp.Header.Get("X-RateLimit-Reset"); v != "" {
		if reset, err := strconv.ParseInt(v, 10, 64); err == nil {
			if secs := int(time.Until(time.Unix(reset, 0)).Seconds()); secs > 0 {
				return secs
			}
		}
	}
	return 0
}
