package store

import (
	"fmt"
	"os"
	"sync"
)

// MemoryBackend keeps record files in memory. Tests and ephemeral runs
// use it in place of the file backend.
type MemoryBackend struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{files: make(map[string][]byte)}
}

func (b *MemoryBackend) Read(fileID string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.files[fileID]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", fileID, os.ErrNotExist)
	}
	return data, nil
}

func (b *MemoryBackend) Write(fileID string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.files[fileID] = append([]byte(nil), data...)
	return nil
}
