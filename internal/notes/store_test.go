package notes

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/git-scope/git-scope/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(bytes.NewBuffer(nil)) // Discard logs during tests
	return logger
}

func TestStore_AddAndListFor(t *testing.T) {
	store := NewStore(NewMemoryStorage(), testLogger())

	note, err := store.Add(models.NoteTargetUser, "user:octocat", "great profile")
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, note.CreatedAt, note.UpdatedAt)

	listed := store.ListFor(models.NoteTargetUser, "user:octocat")
	require.Len(t, listed, 1)
	assert.Equal(t, "user:octocat", listed[0].TargetKey)
	assert.Equal(t, "great profile", listed[0].Content)

	assert.Empty(t, store.ListFor(models.NoteTargetRepo, "user:octocat"))
	assert.Empty(t, store.ListFor(models.NoteTargetUser, "user:other"))
}

func TestStore_Update(t *testing.T) {
	store := NewStore(NewMemoryStorage(), testLogger())
	store.now = func() int64 { return 1000 }

	note, err := store.Add(models.NoteTargetRepo, "repo:octocat/hello-world", "first draft")
	require.NoError(t, err)

	store.now = func() int64 { return 2000 }
	updated, ok, err := store.Update(note.ID, "second draft")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, note.ID, updated.ID)
	assert.Equal(t, note.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "second draft", updated.Content)
	assert.Equal(t, int64(2000), updated.UpdatedAt)

	t.Run("absent id is a no-op", func(t *testing.T) {
		_, ok, err := store.Update("missing", "content")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestStore_Remove(t *testing.T) {
	store := NewStore(NewMemoryStorage(), testLogger())

	note, err := store.Add(models.NoteTargetUser, "user:octocat", "to delete")
	require.NoError(t, err)

	ok, err := store.Remove(note.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, store.ListFor(models.NoteTargetUser, "user:octocat"))

	t.Run("absent id is a no-op", func(t *testing.T) {
		ok, err := store.Remove(note.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestStore_ListOrder(t *testing.T) {
	store := NewStore(NewMemoryStorage(), testLogger())

	store.now = func() int64 { return 1 }
	older, err := store.Add(models.NoteTargetUser, "user:a", "older")
	require.NoError(t, err)

	store.now = func() int64 { return 2 }
	newer, err := store.Add(models.NoteTargetUser, "user:a", "newer")
	require.NoError(t, err)

	all := store.List()
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)
	assert.Equal(t, older.ID, all[1].ID)

	// Updating the older note moves it to the front.
	store.now = func() int64 { return 3 }
	_, ok, err := store.Update(older.ID, "bumped")
	require.NoError(t, err)
	require.True(t, ok)

	all = store.List()
	assert.Equal(t, older.ID, all[0].ID)
}

func TestStore_RoundTrip(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage, testLogger())

	a, err := store.Add(models.NoteTargetUser, "user:octocat", "note a")
	require.NoError(t, err)
	b, err := store.Add(models.NoteTargetRepo, "repo:octocat/hello-world", "note b")
	require.NoError(t, err)

	// Simulated process restart: a fresh store rehydrates from the same blob.
	restarted := NewStore(storage, testLogger())

	all := restarted.List()
	require.Len(t, all, 2)

	byID := map[string]models.Note{all[0].ID: all[0], all[1].ID: all[1]}
	assert.Equal(t, a, byID[a.ID])
	assert.Equal(t, b, byID[b.ID])
}

func TestStore_CorruptBlobFailsOpen(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Write([]byte("{not json")))

	store := NewStore(storage, testLogger())
	assert.Empty(t, store.List())

	// The store stays usable after the corrupt load.
	_, err := store.Add(models.NoteTargetUser, "user:octocat", "fresh start")
	require.NoError(t, err)
	assert.Len(t, store.List(), 1)
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	storage := NewFileStorage(path)

	t.Run("missing file reads as no blob", func(t *testing.T) {
		data, err := storage.Read()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("write then read round-trips", func(t *testing.T) {
		require.NoError(t, storage.Write([]byte(`{"x":1}`)))
		data, err := storage.Read()
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"x":1}`), data)
	})

	t.Run("store survives restart through the file", func(t *testing.T) {
		store := NewStore(storage, testLogger())
		note, err := store.Add(models.NoteTargetUser, "user:octocat", "persisted")
		require.NoError(t, err)

		restarted := NewStore(NewFileStorage(path), testLogger())
		listed := restarted.ListFor(models.NoteTargetUser, "user:octocat")
		require.Len(t, listed, 1)
		assert.Equal(t, note, listed[0])
	})
}
