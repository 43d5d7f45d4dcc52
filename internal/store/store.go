package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// Backend reads and writes the raw bytes of one named record file.
// Implementations: FileBackend, SQLiteBackend, MemoryBackend.
type Backend interface {
	Read(fileID string) ([]byte, error)
	Write(fileID string, data []byte) error
}

// ErrUnreadable reports that backing data exists but cannot be read or
// decoded, on a path where silent recovery would lose records on the next
// save. A file that was never written does not qualify: that is an empty
// store everywhere.
var ErrUnreadable = errors.New("record store unreadable")

// Store persists JSON arrays of records through a Backend. One mutex
// serializes every read-modify-write, so id allocation over the current
// contents cannot race in-process.
type Store struct {
	mu      sync.Mutex
	backend Backend
}

func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Load returns the records behind fileID. A missing, unreadable or
// unparsable file yields an empty result: read paths recover silently.
func Load[T any](s *Store, fileID string) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadLenient[T](s.backend, fileID)
}

// Save serializes records and overwrites the record file in one shot.
func Save[T any](s *Store, fileID string, records []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return save(s.backend, fileID, records)
}

// Update runs fn over the current records and saves its result, holding
// the store lock across the whole read-modify-write. The load is strict:
// an unreadable or corrupt file surfaces as ErrUnreadable instead of
// being treated as empty (a missing file is still just an empty store).
// An error from fn aborts without saving.
func Update[T any](s *Store, fileID string, fn func([]T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := loadStrict[T](s.backend, fileID)
	if err != nil {
		return err
	}
	updated, err := fn(records)
	if err != nil {
		return err
	}
	return save(s.backend, fileID, updated)
}

// UpdateLenient is Update with the silent-recovery read, for append paths
// where a missing file is a valid empty starting point.
func UpdateLenient[T any](s *Store, fileID string, fn func([]T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := fn(loadLenient[T](s.backend, fileID))
	if err != nil {
		return err
	}
	return save(s.backend, fileID, updated)
}

func loadLenient[T any](b Backend, fileID string) []T {
	data, err := b.Read(fileID)
	if err != nil {
		return nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}
	return records
}

func loadStrict[T any](b Backend, fileID string) ([]T, error) {
	data, err := b.Read(fileID)
	if err != nil {
		// a file that was never written is an empty store, not a failure
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrUnreadable, fileID, err)
	}
	return records, nil
}

func save[T any](b Backend, fileID string, records []T) error {
	// keep a JSON array on disk even when everything was deleted
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", fileID, err)
	}
	return b.Write(fileID, data)
}
