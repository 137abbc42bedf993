package store

import (
	"context"
	"fmt"
)

// Options selects and configures a backend for Open.
type Options struct {
	Backend string
	Dir     string // file backend
	Redis   RedisConfig
	Mongo   MongoConfig
	// Scope, when set, wraps the backend with Scoped.
	Scope string
}

// Open creates the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		s   Store
		err error
	)
	switch opts.Backend {
	case BackendMemory:
		s = NewMemoryStore()
	case BackendFile, "":
		if opts.Dir == "" {
			return nil, fmt.Errorf("file store requires a directory")
		}
		s, err = NewFileStore(opts.Dir)
	case BackendRedis:
		s, err = NewRedisStore(ctx, opts.Redis)
	case BackendMongo:
		s, err = NewMongoStore(ctx, opts.Mongo)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return Scoped(s, opts.Scope), nil
}
