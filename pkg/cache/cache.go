// Package cache stores solved layouts and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// # Keys
//
// A [Keyer] derives keys from a document hash and the options that affect
// the result, so changing the viewport, font or output format never serves
// a stale entry:
//
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey(cache.Hash(doc), cache.LayoutKeyOpts{Width: 800, Height: 600})
//
// [ScopedKeyer] prefixes every key, which keeps tenants of one Redis apart.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry. A missing or expired key is a
// miss, not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes. Layouts and artifacts are pure functions of their keys,
// so the TTLs only bound disk and memory use.
const (
	TTLLayout = 7 * 24 * time.Hour
	TTLRender = 7 * 24 * time.Hour
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config selects and configures a backend.
type Config struct {
	Backend string `toml:"backend"`
	// Dir is the FileCache directory.
	Dir string `toml:"dir"`
	// URL is a redis:// URL for RedisCache.
	URL string `toml:"url"`
	// Prefix namespaces RedisCache keys.
	Prefix string `toml:"prefix"`
}
