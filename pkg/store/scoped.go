package store

import (
	"context"
	"strings"
)

// ScopedStore wraps a Store with a key prefix for profile isolation.
//
// Example usage:
//
//	// Separate data for two learners sharing one Redis
//	anna := store.Scoped(redisStore, "profile:anna:")
//	ben := store.Scoped(redisStore, "profile:ben:")
type ScopedStore struct {
	inner  Store
	prefix string
}

// Scoped returns a store whose keys are transparently prefixed.
// An empty prefix returns inner unchanged.
func Scoped(inner Store, prefix string) Store {
	if prefix == "" {
		return inner
	}
	return &ScopedStore{inner: inner, prefix: prefix}
}

// Get reads a prefixed key.
func (s *ScopedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set writes a prefixed key.
func (s *ScopedStore) Set(ctx context.Context, key string, value []byte) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

// Remove deletes a prefixed key.
func (s *ScopedStore) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, s.prefix+key)
}

// Clear removes only the keys inside the scope.
func (s *ScopedStore) Clear(ctx context.Context) error {
	keys, err := s.inner.Keys(ctx, s.prefix)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := s.inner.Remove(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns scope-relative keys starting with prefix.
func (s *ScopedStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.inner.Keys(ctx, s.prefix+prefix)
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, s.prefix)
	}
	return keys, nil
}

// Close closes the wrapped store.
func (s *ScopedStore) Close() error {
	return s.inner.Close()
}

// Ensure ScopedStore implements Store.
var _ Store = (*ScopedStore)(nil)
