package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apperrors "github.com/git-scope/git-scope/internal/errors"
	"github.com/git-scope/git-scope/internal/github"
	"github.com/git-scope/git-scope/internal/metrics"
	"github.com/git-scope/git-scope/internal/models"
	"github.com/git-scope/git-scope/internal/narrate"
	"github.com/git-scope/git-scope/internal/notes"
)

// ProfileService fetches profiles and full snapshots from GitHub.
type ProfileService interface {
	GetUser(ctx context.Context, username string) (*models.User, error)
	LoadSnapshot(ctx context.Context, username string) (*models.Snapshot, error)
}

// Narrator produces summary and comparison narrations.
type Narrator interface {
	Summarize(ctx context.Context, snap *models.Snapshot) (*narrate.Narration, error)
	Compare(ctx context.Context, a, b *models.Snapshot) (*narrate.Narration, error)
}

// Handler holds the request handlers for the API.
type Handler struct {
	profiles   ProfileService
	narrator   Narrator
	notes      *notes.Store
	windowDays int
	logger     *logrus.Logger
}

// NewHandler creates a new API handler.
func NewHandler(profiles ProfileService, narrator Narrator, noteStore *notes.Store, windowDays int, logger *logrus.Logger) *Handler {
	return &Handler{
		profiles:   profiles,
		narrator:   narrator,
		notes:      noteStore,
		windowDays: windowDays,
		logger:     logger,
	}
}

// GetUserProfile returns the public profile for a username.
func (h *Handler) GetUserProfile(c *gin.Context) {
	username := c.Param("username")

	user, err := h.profiles.GetUser(c.Request.Context(), username)
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUserSnapshot loads the profile, repositories, and events for a username
// concurrently and returns them with computed metrics. A single failed read
// fails the whole load; no partial snapshot is returned.
func (h *Handler) GetUserSnapshot(c *gin.Context) {
	username := c.Param("username")

	snap, err := h.profiles.LoadSnapshot(c.Request.Context(), username)
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SnapshotResponse{
		Snapshot: snap,
		Metrics:  metrics.Summarize(snap.Repos, snap.Events, h.windowDays),
	})
}

// Summarize produces a narration for a single profile snapshot.
func (h *Handler) Summarize(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid payload"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid payload"})
		return
	}

	narration, err := h.narrator.Summarize(c.Request.Context(), SnapshotPayload(req).Snapshot())
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, narration)
}

// Compare produces a narration contrasting two profile snapshots.
func (h *Handler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid payload"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid payload"})
		return
	}

	narration, err := h.narrator.Compare(c.Request.Context(), req.A.Snapshot(), req.B.Snapshot())
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, narration)
}

// ListNotes returns all notes, or the notes for one target when both
// target_type and target_key query parameters are present.
func (h *Handler) ListNotes(c *gin.Context) {
	targetType := c.Query("target_type")
	targetKey := c.Query("target_key")

	if targetType == "" && targetKey == "" {
		c.JSON(http.StatusOK, h.notes.List())
		return
	}

	tt := models.NoteTargetType(targetType)
	if !tt.Valid() || targetKey == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "target_type must be user or repo and target_key is required"})
		return
	}

	c.JSON(http.StatusOK, h.notes.ListFor(tt, targetKey))
}

// CreateNote attaches a new note to a profile or repository.
func (h *Handler) CreateNote(c *gin.Context) {
	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid payload"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	note, err := h.notes.Add(req.TargetType, req.TargetKey, req.Content)
	if err != nil {
		h.logger.WithError(err).Error("Failed to persist note")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save note"})
		return
	}

	c.JSON(http.StatusCreated, note)
}

// UpdateNote replaces a note's content.
func (h *Handler) UpdateNote(c *gin.Context) {
	id := c.Param("id")

	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid payload"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	note, ok, err := h.notes.Update(id, req.Content)
	if err != nil {
		h.logger.WithError(err).Error("Failed to persist note")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save note"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Note not found"})
		return
	}

	c.JSON(http.StatusOK, note)
}

// DeleteNote removes a note.
func (h *Handler) DeleteNote(c *gin.Context) {
	id := c.Param("id")

	ok, err := h.notes.Remove(id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to persist note")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete note"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Note not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// respondWithError maps service and client errors onto HTTP responses:
// not-found → 404, rate limits → 429 with a retry_after hint, upstream
// failures propagate their status, validation → 400, everything else → 500.
func (h *Handler) respondWithError(c *gin.Context, err error) {
	var ghNotFound *github.NotFoundError
	var ghRateLimit *github.RateLimitError
	var ghAPI *github.APIError
	var ghValidation *github.ValidationError
	var upstream *apperrors.UpstreamError
	var rateLimited *apperrors.RateLimitedError
	var appErr *apperrors.AppError

	switch {
	case errors.As(err, &ghNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: ghNotFound.Error()})
	case errors.As(err, &ghRateLimit):
		c.JSON(http.StatusTooManyRequests, RateLimitedResponse{
			Error:      ghRateLimit.Error(),
			RetryAfter: ghRateLimit.RetryAfter,
		})
	case errors.As(err, &ghAPI):
		c.JSON(ghAPI.StatusCode, ErrorResponse{Error: ghAPI.Body})
	case errors.As(err, &ghValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: ghValidation.Error()})
	case errors.As(err, &rateLimited):
		c.JSON(http.StatusTooManyRequests, RateLimitedResponse{
			Error:      rateLimited.Error(),
			RetryAfter: rateLimited.RetryAfter,
		})
	case errors.As(err, &upstream):
		c.JSON(upstream.StatusCode, ErrorResponse{Error: upstream.Message})
	case errors.As(err, &appErr):
		switch appErr.Type {
		case apperrors.ErrInvalidInput:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: appErr.Message})
		case apperrors.ErrNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{Error: appErr.Message})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: appErr.Message})
		}
	default:
		h.logger.WithError(err).Error("Unhandled request error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
