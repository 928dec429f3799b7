package uploads

import (
	"context"
	"io"
	"sync"
)

// MemoryStore keeps uploads in memory. Used by tests and throwaway dev servers.
type MemoryStore struct {
	mu    sync.RWMutex
	files map[string]StoredFile
}

type StoredFile struct {
	ContentType string
	Data        []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string]StoredFile)}
}

func (s *MemoryStore) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = StoredFile{ContentType: contentType, Data: data}
	return "/uploads/" + name, nil
}

// Get returns a stored file by name.
func (s *MemoryStore) Get(name string) (StoredFile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[name]
	return f, ok
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}
