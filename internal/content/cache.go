package content

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedStore keeps recently fetched documents in memory
type CachedStore struct {
	Store
	cache *lru.Cache[string, string]
}

// NewCachedStore wraps store with an LRU of size entries
func NewCachedStore(store Store, size int) (*CachedStore, error) {
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("content cache: %w", err)
	}
	return &CachedStore{Store: store, cache: cache}, nil
}

// Fetch serves file from the cache, falling back to the wrapped store.
// Failures are not cached.
func (s *CachedStore) Fetch(ctx context.Context, file string) (string, error) {
	if text, ok := s.cache.Get(file); ok {
		return text, nil
	}
	text, err := s.Store.Fetch(ctx, file)
	if err != nil {
		return "", err
	}
	s.cache.Add(file, text)
	return text, nil
}

// Invalidate drops file so the next Fetch goes to the store
func (s *CachedStore) Invalidate(file string) {
	s.cache.Remove(file)
}

// Purge empties the cache
func (s *CachedStore) Purge() {
	s.cache.Purge()
}

// Len returns the number of cached documents
func (s *CachedStore) Len() int {
	return s.cache.Len()
}
