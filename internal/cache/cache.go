// Package cache provides the in-process quote cache. Each namespace
// (search, live, historical) is its own Cache with a fixed TTL decided
// at construction; entries age out lazily and there is no size bound or
// eviction beyond expiry. That is a known limitation, acceptable at the
// scale of this app.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is a TTL key/value store for one quote namespace.
type Cache struct {
	store *gocache.Cache
}

// New returns a cache whose entries expire ttl after insertion.
func New(ttl time.Duration) *Cache {
	// Purge interval of 2x the TTL keeps memory bounded by recency;
	// expiry itself is enforced on read.
	return &Cache{store: gocache.New(ttl, 2*ttl)}
}

// NewStale returns a cache whose entries never expire. Used to retain
// last-good live quotes for the gateway's degrade path.
func NewStale() *Cache {
	return &Cache{store: gocache.New(gocache.NoExpiration, 0)}
}

// Get returns the value for key, or ok=false if absent or expired.
func (c *Cache) Get(key string) (any, bool) {
	return c.store.Get(key)
}

// Set stores value under key with the namespace TTL, replacing any
// previous value.
func (c *Cache) Set(key string, value any) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}
