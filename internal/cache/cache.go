package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/brandprint/internal/model"
)

// Cache stores fetched response bodies keyed by URL.
// Implementations must be safe for concurrent use: one cache is shared by
// every stylesheet fetch of an extraction.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Kinds of cached bodies
const (
	KindPage       = "page"
	KindStylesheet = "css"
)

// CacheKey generates a cache key for a body of the given kind fetched from url
func CacheKey(kind, url string) string {
	hash := sha256.Sum256([]byte(url))
	return "brandprint:v1:" + kind + ":" + hex.EncodeToString(hash[:])
}

// FromConfig builds the cache described by cfg, or nil when caching is disabled
func FromConfig(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Dir == "" {
		return NewMemoryCache(cfg.MemoryTTL, 10*time.Minute)
	}
	return NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
}
