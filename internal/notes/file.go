package notes

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStorage persists the notes blob to a single JSON file. A missing file
// reads as no blob. Writes are whole-file replacements; concurrent processes
// are last-write-wins, matching the storage contract.
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-backed storage port at path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (f *FileStorage) Write(data []byte) error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(f.path, data, 0o644)
}
