package blob

import (
	"context"
	"fmt"
	"sync"

	"github.com/rentnest/rentnest/backend/internal/domain/providers"
)

// MemoryStore is an in-process blob store for local development and tests.
type MemoryStore struct {
	mu    sync.Mutex
	next  int
	blobs map[string][]byte
}

// NewMemoryStore creates an empty in-memory blob store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string][]byte),
	}
}

var _ providers.BlobStore = (*MemoryStore)(nil)

// Upload stores the bytes under a generated URL.
func (s *MemoryStore) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	url := fmt.Sprintf("memory://blobs/%d", s.next)
	stored := make([]byte, len(data))
	copy(stored, data)
	s.blobs[url] = stored
	return url, nil
}

// Delete removes a stored blob; deleting an unknown URL is a no-op.
func (s *MemoryStore) Delete(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, url)
	return nil
}

// Len reports the number of stored blobs.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
