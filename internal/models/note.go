package models

// NoteTargetType identifies what kind of entity a note is attached to.
type NoteTargetType string

const (
	NoteTargetUser NoteTargetType = "user"
	NoteTargetRepo NoteTargetType = "repo"
)

// Valid reports whether t is a known target type.
func (t NoteTargetType) Valid() bool {
	return t == NoteTargetUser || t == NoteTargetRepo
}

// Note is a free-text annotation attached to a profile or repository.
// The id is generator-assigned and stable for the note's lifetime.
// Timestamps are unix milliseconds.
type Note struct {
	ID         string         `json:"id"`
	TargetType NoteTargetType `json:"targetType"`
	TargetKey  string         `json:"targetKey"`
	Content    string         `json:"content"`
	CreatedAt  int64          `json:"createdAt"`
	UpdatedAt  int64          `json:"updatedAt"`
}
