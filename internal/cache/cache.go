// Package cache provides a TTL cache for read-operation results, keyed by
// working directory and command line. Write operations invalidate every entry
// for their working directory.
package cache

import (
	"strings"
	"sync"
	"time"
)

// DefaultTTL is used when New is given a zero or negative TTL.
const DefaultTTL = 5 * time.Second

type entry struct {
	value   any
	workDir string
	expires time.Time
}

// Cache is a synchronized TTL map. The zero value is not usable; create one
// with New.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry

	now func() time.Time
}

// New creates a cache whose entries expire after ttl.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func key(workDir string, args []string) string {
	return workDir + "\x00" + strings.Join(args, "\x1f")
}

// Get returns the cached value for the invocation, if present and fresh.
func (c *Cache) Get(workDir string, args []string) (any, bool) {
	k := key(workDir, args)

	c.mu.RLock()
	e, ok := c.entries[k]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expires) {
		c.mu.Lock()
		delete(c.entries, k)
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Put stores the value for the invocation.
func (c *Cache) Put(workDir string, args []string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key(workDir, args)] = entry{
		value:   value,
		workDir: workDir,
		expires: c.now().Add(c.ttl),
	}
}

// Invalidate drops every entry recorded for the working directory.
func (c *Cache) Invalidate(workDir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if e.workDir == workDir {
			delete(c.entries, k)
		}
	}
}

// Len reports the number of stored entries, including any not yet evicted.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
