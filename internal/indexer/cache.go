package indexer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/maypok86/otter"
	"github.com/mvp-joe/fndoc/internal/docmeta"
)

// ResultCache holds extraction results keyed by path, content and config.
// Cached values are shared between callers and must be treated as read-only.
type ResultCache struct {
	cache otter.Cache[string, *docmeta.FileMetadata]
}

// NewResultCache creates a cache bounded to capacity entries.
func NewResultCache(capacity int) (*ResultCache, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache capacity must be positive, got %d", capacity)
	}

	cache, err := otter.MustBuilder[string, *docmeta.FileMetadata](capacity).
		CollectStats().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build result cache: %w", err)
	}

	return &ResultCache{cache: cache}, nil
}

// Get returns the cached result for key.
func (c *ResultCache) Get(key string) (*docmeta.FileMetadata, bool) {
	return c.cache.Get(key)
}

// Set stores a result under key.
func (c *ResultCache) Set(key string, result *docmeta.FileMetadata) {
	c.cache.Set(key, result)
}

// Hits returns the number of cache hits so far.
func (c *ResultCache) Hits() int64 {
	return c.cache.Stats().Hits()
}

// Close releases the cache's background resources.
func (c *ResultCache) Close() {
	c.cache.Close()
}

// cacheKey hashes everything that determines an extraction result.
func cacheKey(filePath string, source []byte, fingerprint string) string {
	h := sha256.New()
	h.Write([]byte(filePath))
	h.Write([]byte{0})
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	h.Write(source)
	return hex.EncodeToString(h.Sum(nil))
}
