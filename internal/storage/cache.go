// cache.go - In-memory cache for recent classification results

package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/bosocmputer/document_classifier/internal/classifier"
)

const CACHE_TTL = 5 * time.Minute // Cached results expire after 5 minutes

// cacheEntry holds one cached result with its load time
type cacheEntry struct {
	result   *classifier.Result
	loadedAt time.Time
}

// ResultCache keeps recent classification results in memory, keyed by a
// content hash, so re-uploading the same document within the TTL does not
// re-bill a model call. Nothing outlives the process and no document bytes
// are retained - only the SHA-256 key.
type ResultCache struct {
	entries map[string]cacheEntry
	mu      sync.RWMutex
}

// NewResultCache creates an empty result cache
func NewResultCache() *ResultCache {
	return &ResultCache{
		entries: make(map[string]cacheEntry),
	}
}

// CacheKey derives the cache key for a document
func CacheKey(content []byte, mimeType string) string {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte(mimeType))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached result for key, or nil if absent or expired
func (c *ResultCache) Get(key string) *classifier.Result {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists || time.Since(entry.loadedAt) >= CACHE_TTL {
		return nil
	}
	return entry.result
}

// Set stores a result under key
func (c *ResultCache) Set(key string, result *classifier.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Opportunistically drop expired entries so the map does not grow unbounded
	for k, e := range c.entries {
		if time.Since(e.loadedAt) >= CACHE_TTL {
			delete(c.entries, k)
		}
	}

	c.entries[key] = cacheEntry{result: result, loadedAt: time.Now()}
}

// Clear removes all cached results
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
