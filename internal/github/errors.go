package github

import (
	"errors"
	"fmt"
)

// APIError represents a non-success response from the GitHub API, carrying
// the upstream status code and raw body text.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API error %d: %s", e.StatusCode, e.Body)
}

// NotFoundError represents an unknown user or resource.
type NotFoundError struct {
	Username string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("GitHub user not found: %s", e.Username)
}

// RateLimitError represents an exhausted primary or secondary rate limit.
// RetryAfter is a hint in seconds; zero means the reset time was not reported.
type RateLimitError struct {
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("GitHub API rate limit exceeded, retry after %ds", e.RetryAfter)
	}
	return "GitHub API rate limit exceeded"
}

// ValidationError represents invalid input to client methods.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: invalid %s: %s", e.Field, e.Value)
}

// NewAPIError creates a new APIError with the given status code and body text
func NewAPIError(statusCode int, body string) error {
	return &APIError{StatusCode: statusCode, Body: body}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(username string) error {
	return &NotFoundError{Username: username}
}

// NewRateLimitError creates a new RateLimitError
func NewRateLimitError(retryAfter int) error {
	return &RateLimitError{RetryAfter: retryAfter}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, value string) error {
	return &ValidationError{Field: field, Value: value}
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsRateLimit checks if an error is a RateLimitError
func IsRateLimit(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}
