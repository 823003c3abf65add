// internal/app/system/bugcache/bugcache.go
//
// Package bugcache is a small in-memory cache for Bugzilla search results.
// Searches against the public instance are slow and rate-limited, so the
// bug endpoints serve repeated queries from here unless the caller asks
// for a refresh.
package bugcache

import (
	"strings"
	"sync"
	"time"

	"github.com/sprinthub/sprinthub/internal/bugzilla"
)

type entry struct {
	bugs    []bugzilla.Bug
	fetched time.Time
}

// Cache maps a query key to its last result set. A zero TTL means entries
// never expire and are only replaced by an explicit refresh.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

// New builds a cache. ttl bounds how long an entry is served; pass 0 to
// keep entries until refreshed.
func New(ttl time.Duration) *Cache {
	return &Cache{entries: map[string]entry{}, ttl: ttl}
}

// Key joins query parts into a cache key.
func Key(parts ...string) string {
	return strings.Join(parts, "|")
}

// Get returns the cached result for key, if present and fresh.
func (c *Cache) Get(key string) ([]bugzilla.Bug, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && time.Since(e.fetched) > c.ttl {
		return nil, false
	}
	return e.bugs, true
}

// Put stores a result set for key, replacing any previous entry.
func (c *Cache) Put(key string, bugs []bugzilla.Bug) {
	c.mu.Lock()
	c.entries[key] = entry{bugs: bugs, fetched: time.Now()}
	c.mu.Unlock()
}

// Invalidate drops the entry for key, if any.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len reports how many entries are cached. Used by the health endpoint.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
