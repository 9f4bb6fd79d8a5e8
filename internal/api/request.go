package api

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/git-scope/git-scope/internal/models"
	"github.com/git-scope/git-scope/pkg/utils"
)

// SnapshotPayload is the wire form of a user snapshot supplied by callers.
type SnapshotPayload struct {
	Username string              `json:"username"`
	User     *models.User        `json:"user"`
	Repos    []models.Repository `json:"repos"`
	Events   []models.Event      `json:"events"`
}

// Validate validates the snapshot payload shape. A missing user or repos
// list rejects before any downstream call.
func (p SnapshotPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Username, validation.Required),
		validation.Field(&p.User, validation.NotNil),
		validation.Field(&p.Repos, validation.NotNil),
	)
}

// Snapshot converts the payload into the domain snapshot.
func (p SnapshotPayload) Snapshot() *models.Snapshot {
	return &models.Snapshot{
		Username: p.Username,
		User:     p.User,
		Repos:    p.Repos,
		Events:   p.Events,
	}
}

// SummarizeRequest is the body of POST /summarize.
type SummarizeRequest SnapshotPayload

// Validate validates the request
func (r SummarizeRequest) Validate() error {
	return SnapshotPayload(r).Validate()
}

// CompareRequest is the body of POST /compare.
type CompareRequest struct {
	A *SnapshotPayload `json:"a"`
	B *SnapshotPayload `json:"b"`
}

// Validate validates the request
func (r CompareRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.A, validation.NotNil),
		validation.Field(&r.B, validation.NotNil),
	)
}

// CreateNoteRequest is the body of POST /notes.
type CreateNoteRequest struct {
	TargetType models.NoteTargetType `json:"targetType"`
	TargetKey  string                `json:"targetKey"`
	Content    string                `json:"content"`
}

// Validate validates the request
func (r CreateNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TargetType, validation.Required, validation.In(models.NoteTargetUser, models.NoteTargetRepo)),
		validation.Field(&r.TargetKey, validation.Required, validation.By(r.matchesTargetType)),
		validation.Field(&r.Content, validation.Required),
	)
}

// matchesTargetType requires the key's kind prefix to agree with targetType,
// e.g. "user:torvalds" for a user note.
func (r CreateNoteRequest) matchesTargetType(value interface{}) error {
	key, _ := value.(string)
	kind, _, ok := utils.ParseTargetKey(key)
	if !ok || kind != string(r.TargetType) {
		return errors.New("must be in <targetType>:<identifier> form")
	}
	return nil
}

// UpdateNoteRequest is the body of PUT /notes/:id.
type UpdateNoteRequest struct {
	Content string `json:"content"`
}

// Validate validates the request
func (r UpdateNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required),
	)
}
