package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend keeps one JSON file per record file id under a data
// directory. Writes overwrite the whole file in one shot; a crash
// mid-write can leave a truncated file, which the lenient read path
// treats as an empty store.
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(fileID string) string {
	return filepath.Join(b.dir, fileID)
}

func (b *FileBackend) Read(fileID string) ([]byte, error) {
	data, err := os.ReadFile(b.path(fileID))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fileID, err)
	}
	return data, nil
}

// Write stores the file with owner-only permissions; the users file holds
// credential material.
func (b *FileBackend) Write(fileID string, data []byte) error {
	if err := os.WriteFile(b.path(fileID), data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", fileID, err)
	}
	return nil
}
