package uistate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// SyncStore is a synchronous, string-keyed, string-valued store in the shape
// of browser local storage: small capacity, no expiry, no transactions.
type SyncStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// MemorySyncStore is an in-process SyncStore.
type MemorySyncStore struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemorySyncStore creates an in-memory SyncStore.
func NewMemorySyncStore() *MemorySyncStore {
	return &MemorySyncStore{
		items: make(map[string]string),
	}
}

// Get loads a key from memory.
func (s *MemorySyncStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[key]
	return value, ok
}

// Set stores a key.
func (s *MemorySyncStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

// Delete removes a key.
func (s *MemorySyncStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// FileSyncStore is a SyncStore backed by a single JSON file, written
// synchronously on every change.
type FileSyncStore struct {
	mu    sync.Mutex
	path  string
	items map[string]string
}

// NewFileSyncStore creates a FileSyncStore at path, loading any existing
// content. A missing file is treated as an empty store.
func NewFileSyncStore(path string) (*FileSyncStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sync store path is required")
	}

	items := make(map[string]string)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("failed to parse sync store %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read sync store %s: %w", path, err)
	}

	return &FileSyncStore{
		path:  path,
		items: items,
	}, nil
}

// Get loads a key.
func (s *FileSyncStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.items[key]
	return value, ok
}

// Set stores a key and flushes the file.
func (s *FileSyncStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return s.flush()
}

// Delete removes a key and flushes the file.
func (s *FileSyncStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return s.flush()
}

// flush writes the whole map; the store is small by contract so a full
// rewrite per change is acceptable.
func (s *FileSyncStore) flush() error {
	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sync store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create sync store directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write sync store %s: %w", s.path, err)
	}
	return nil
}
