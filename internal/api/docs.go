package api

import (
	"github.com/git-scope/git-scope/internal/metrics"
	"github.com/git-scope/git-scope/internal/models"
)

// ErrorResponse represents an API error
// @Description Error response from the API
// @swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// @example Invalid payload
	Error string `json:"error" example:"Invalid payload"`
}

// RateLimitedResponse represents a rate-limited API error
// @Description Rate limit error with an optional retry hint in seconds
// @swagger:model RateLimitedResponse
type RateLimitedResponse struct {
	// Error message
	// @example GitHub API rate limit exceeded
	Error string `json:"error" example:"GitHub API rate limit exceeded"`
	// Seconds to wait before retrying; 0 when unknown
	// @example 42
	RetryAfter int `json:"retry_after,omitempty" example:"42"`
}

// SnapshotResponse is a loaded snapshot with its computed metrics
// @Description A user snapshot with aggregate metrics
// @swagger:model SnapshotResponse
type SnapshotResponse struct {
	*models.Snapshot
	// Metrics are the aggregates computed over the snapshot
	Metrics metrics.Summary `json:"metrics"`
}

// NarrationResponse represents a narration result
// @Description Natural-language narration and its source
// @swagger:model NarrationResponse
type NarrationResponse struct {
	// Narration text in Markdown
	Summary string `json:"summary"`
	// Source of the text
	// @example openai
	Via string `json:"via" example:"openai" enums:"openai,fallback"`
}
