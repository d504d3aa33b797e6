package cache

import (
	"github.com/matzehuels/plinth/pkg/errors"
)

// Open returns the backend named by cfg. An empty backend means a file cache
// when a directory is given and no cache otherwise.
func Open(cfg Config) (Cache, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = BackendNone
		if cfg.Dir != "" {
			backend = BackendFile
		}
	}

	switch backend {
	case BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if cfg.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "file cache needs a directory")
		}
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		if cfg.URL == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "redis cache needs a url")
		}
		return NewRedisCache(cfg.URL, cfg.Prefix)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", cfg.Backend)
}
