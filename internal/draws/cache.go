package draws

import "sync"

// #region cache
type cacheKey struct {
	seed uint32
	n    int
}

type cacheEntry struct {
	once  sync.Once
	panel Panel
}

// Cache builds each (seed, n) panel at most once and shares it read-only.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]*cacheEntry
}

// NewCache creates an empty panel cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]*cacheEntry)}
}

// Get returns the panel for (seed, n), building it on first use.
// Concurrent callers for the same key wait for a single build.
func (c *Cache) Get(seed uint32, n int) Panel {
	key := cacheKey{seed: seed, n: n}

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &cacheEntry{}
		c.entries[key] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.panel = Build(seed, n)
	})
	return e.panel
}

// Len reports how many panels have been requested.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
// #endregion cache
