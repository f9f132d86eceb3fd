package texture

import (
	"image"
	"sync"
)

// Resolver resolves a GEO face's texture name to a decoded RGBA image.
// Previews are texture-optional: nil means render with a fallback color.
type Resolver interface {
	Resolve(texName string) *image.NRGBA
}

// Cache is a concurrency-safe texture cache. Many GEO parts in one batch
// reference the same handful of texture names ("chrome01" and friends), and
// batch workers race to resolve them, so each file decodes at most once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	img    *image.NRGBA
	loaded bool // true if we've attempted to load (img may still be nil)
}

// NewCache creates a new texture cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches a texture by face texture name. Returns nil when
// the name is not in the index, which is also the usual fate of the
// placeholder name "i76_default".
func (c *Cache) Resolve(texName string) *image.NRGBA {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		return nil
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, _ := LoadTexture(path)

	// Write lock with double-check
	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		return entry.img
	}
	c.items[path] = &cacheEntry{img: img, loaded: true}
	c.mu.Unlock()

	return img
}
