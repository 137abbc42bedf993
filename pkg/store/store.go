// Package store defines the key-value persistence contract used by abclisten
// and its backends.
//
// Values are opaque serialized text (JSON in practice); keys are plain
// strings namespaced by prefix ("abc-list:", "kawa:", "settings:").
// Backends:
//   - [MemoryStore]: process-local map, for tests and throwaway sessions
//   - [FileStore]: one file per key under a data directory (CLI default)
//   - [RedisStore]: shared storage for the HTTP server
//   - [MongoStore]: one document per key in a MongoDB collection
//
// [Scoped] wraps any backend with a key prefix so several profiles can share
// one backend without seeing each other's data.
package store

import (
	"context"
	"errors"
)

// Store is a key-value store with string keys and byte values.
//
// Get reports a missing key as (nil, false, nil), never as an error.
// Remove of a missing key is not an error. Clear removes every key visible
// to the store (for scoped stores, only keys under the scope prefix).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	// Keys returns all keys starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store closed")

// Backend names accepted by [Open].
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)
