// Package notes manages free-text annotations attached to profiles and
// repositories. The id-keyed note map is the sole source of truth; every
// mutation rewrites the full serialized blob through a storage port.
package notes

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/git-scope/git-scope/internal/models"
)

// StoragePort is the persistence capability the store writes through.
// Implementations hold one opaque blob; concurrent writers across processes
// are last-write-wins.
type StoragePort interface {
	// Read returns the current blob, or nil when none has been written.
	Read() ([]byte, error)
	// Write replaces the blob.
	Write(data []byte) error
}

// Store is an in-memory note map persisted through a storage port.
// Mutations are serialized; the original ran in a single-threaded context,
// but HTTP handlers do not.
type Store struct {
	mu      sync.Mutex
	notes   map[string]models.Note
	storage StoragePort
	logger  *logrus.Logger

	now func() int64
}

// NewStore creates a store hydrated from the port's current blob. An absent
// or corrupt blob yields an empty store, never an error: fail open is the
// persistence contract here.
func NewStore(storage StoragePort, logger *logrus.Logger) *Store {
	s := &Store{
		notes:   make(map[string]models.Note),
		storage: storage,
		logger:  logger,
		now:     func() int64 { return time.Now().UnixMilli() },
	}

	data, err := storage.Read()
	if err != nil {
		logger.WithError(err).Warn("Failed to read notes blob, starting empty")
		return s
	}
	if len(data) == 0 {
		return s
	}

	var notes map[string]models.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		logger.WithError(err).Warn("Corrupt notes blob, starting empty")
		return s
	}
	if notes != nil {
		s.notes = notes
	}
	return s
}

// List returns all notes ordered by updated timestamp, newest first.
func (s *Store) List() []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

// ListFor returns the notes attached to one target, newest first.
func (s *Store) ListFor(targetType models.NoteTargetType, targetKey string) []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]models.Note, 0)
	for _, n := range s.sortedLocked() {
		if n.TargetType == targetType && n.TargetKey == targetKey {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

// Add creates a note with a fresh id and persists the full blob.
func (s *Store) Add(targetType models.NoteTargetType, targetKey, content string) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	note := models.Note{
		ID:         xid.New().String(),
		TargetType: targetType,
		TargetKey:  targetKey,
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.notes[note.ID] = note

	if err := s.persistLocked(); err != nil {
		return models.Note{}, err
	}
	return note, nil
}

// Update replaces a note's content and bumps its updated timestamp, keeping
// id and created timestamp stable. An absent id is a no-op.
func (s *Store) Update(id, content string) (models.Note, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[id]
	if !ok {
		return models.Note{}, false, nil
	}

	note.Content = content
	note.UpdatedAt = s.now()
	s.notes[id] = note

	if err := s.persistLocked(); err != nil {
		return models.Note{}, false, err
	}
	return note, true, nil
}

// Remove deletes a note. An absent id is a no-op.
func (s *Store) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return false, nil
	}
	delete(s.notes, id)

	if err := s.persistLocked(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) sortedLocked() []models.Note {
	all := make([]models.Note, 0, len(s.notes))
	for _, n := range s.notes {
		all = append(all, n)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].UpdatedAt != all[j].UpdatedAt {
			return all[i].UpdatedAt > all[j].UpdatedAt
		}
		return all[i].ID < all[j].ID
	})
	return all
}

func (s *Store) persistLocked() error {
	data, err := json.Marshal(s.notes)
	if err != nil {
		return err
	}
	return s.storage.Write(data)
}
