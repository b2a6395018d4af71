// Package querycache is a request-keyed read cache for server-owned
// collections. Reads for the same key are deduplicated so concurrent callers
// share one network fetch; mutations invalidate keys to force the next read
// to re-fetch; optimistic local mutations are display hints that the next
// authoritative fetch overwrites.
package querycache

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	// DefaultTTL is how long a successful fetch stays fresh.
	DefaultTTL = 30 * time.Second
	// DefaultMaxIdle is how long an untouched entry survives before GC.
	DefaultMaxIdle = 5 * time.Minute
)

type entry struct {
	data       any
	err        error
	version    uint64
	stale      bool
	fetchedAt  time.Time
	lastAccess time.Time
}

// Cache is a process-wide singleton shared by all views. All methods are
// safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	sf      singleflight.Group
	ttl     time.Duration
	maxIdle time.Duration
}

// Option customizes a Cache.
type Option func(*Cache)

// WithTTL sets the freshness window for successful fetches.
func WithTTL(d time.Duration) Option {
	return func(c *Cache) { c.ttl = d }
}

// WithMaxIdle sets the inactivity window after which entries are collected.
func WithMaxIdle(d time.Duration) Option {
	return func(c *Cache) { c.maxIdle = d }
}

func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]*entry),
		ttl:     DefaultTTL,
		maxIdle: DefaultMaxIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key builds a cache key from a resource name and its parameters.
func Key(resource string, params ...string) string {
	if len(params) == 0 {
		return resource
	}
	return resource + ":" + strings.Join(params, ":")
}

// Query returns the cached value for key when it is fresh; otherwise it runs
// fetcher — at most once per key even under concurrent callers — and caches
// the result. The returned version increases with every authoritative store
// and is the handle for MutateSince.
//
// A failed fetch is returned to every waiting caller and recorded as an
// error entry, which is immediately stale: the next Query retries.
func (c *Cache) Query(ctx context.Context, key string, fetcher func(ctx context.Context) (any, error)) (any, uint64, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		e.lastAccess = time.Now()
		if e.err == nil && !e.stale && time.Since(e.fetchedAt) < c.ttl {
			data, version := e.data, e.version
			c.mu.Unlock()
			return data, version, nil
		}
	}
	c.mu.Unlock()

	type result struct {
		data    any
		version uint64
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		data, err := fetcher(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()
		e, ok := c.entries[key]
		if !ok {
			e = &entry{}
			c.entries[key] = e
		}
		e.version++
		e.lastAccess = time.Now()
		if err != nil {
			e.err = err
			e.stale = true
			return nil, err
		}
		e.data = data
		e.err = nil
		e.stale = false
		e.fetchedAt = time.Now()
		return result{data: data, version: e.version}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	r := v.(result)
	return r.data, r.version, nil
}

// Version returns the current version of key, or 0 when the key is absent.
func (c *Cache) Version(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e.version
	}
	return 0
}

// Invalidate marks the key stale, forcing the next Query to re-fetch.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		e.stale = true
	}
}

// InvalidatePrefix marks every key with the prefix stale.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if strings.HasPrefix(k, prefix) {
			e.stale = true
		}
	}
}

// MutateSince applies an optimistic local transformation to the cached data,
// but only when no authoritative fetch has landed since the caller observed
// version seen. Returns whether the mutation was applied. The optimistic
// value does not advance the version: the next authoritative fetch
// overwrites it.
func (c *Cache) MutateSince(key string, seen uint64, fn func(any) any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.err != nil || e.version != seen {
		return false
	}
	e.data = fn(e.data)
	e.lastAccess = time.Now()
	return true
}

// Mutate applies fn against whatever version is current. Shorthand for
// callers that did not snapshot a version before their write.
func (c *Cache) Mutate(key string, fn func(any) any) bool {
	return c.MutateSince(key, c.Version(key), fn)
}

// Remove drops the key entirely.
func (c *Cache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// collect drops entries untouched for longer than maxIdle.
func (c *Cache) collect(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if now.Sub(e.lastAccess) > c.maxIdle {
			delete(c.entries, k)
		}
	}
}

// StartGC collects idle entries every interval until ctx is cancelled.
func (c *Cache) StartGC(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect(time.Now())
		case <-ctx.Done():
			return
		}
	}
}
