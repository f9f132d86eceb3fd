// Package material provides the batch-scoped texture-name → material
// mapping. One Cache lives for one batch import: every GEO file in the
// batch that references the same texture name gets the same handle.
package material

import "sync"

// Material is the handle shared by all meshes in a batch that reference
// the same texture name.
type Material struct {
	Name string // texture name, e.g. "chrome01"
}

// Cache is a concurrency-safe name → material map. Insert-only: existing
// entries are never overwritten, so every caller observes the same handle
// for a given name (first writer wins).
type Cache struct {
	mu    sync.RWMutex
	items map[string]*Material
}

// NewCache creates an empty cache for one batch import.
func NewCache() *Cache {
	return &Cache{items: make(map[string]*Material)}
}

// Resolve returns the material for a texture name, creating it on first use.
func (c *Cache) Resolve(name string) *Material {
	// Fast path: read lock
	c.mu.RLock()
	if m, ok := c.items[name]; ok {
		c.mu.RUnlock()
		return m
	}
	c.mu.RUnlock()

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.items[name]; ok {
		return m
	}
	m := &Material{Name: name}
	c.items[name] = m
	return m
}

// Len returns the number of distinct texture names seen so far.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
