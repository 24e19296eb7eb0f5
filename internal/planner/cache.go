package planner

import (
	"strings"
	"sync"
)

// queryCache is a keyed cache with last-writer-by-key semantics: a value
// stored under a key simply replaces the previous one, and a late store
// for an old key never touches other keys. Mutations invalidate whole key
// families so the next read refetches.
type queryCache struct {
	mu      sync.RWMutex
	entries map[string]interface{}
}

func newQueryCache() *queryCache {
	return &queryCache{entries: make(map[string]interface{})}
}

func (c *queryCache) get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.entries[key]
	return value, ok
}

func (c *queryCache) set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// invalidateFamily drops every key sharing the given prefix.
func (c *queryCache) invalidateFamily(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}
