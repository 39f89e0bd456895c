package texture

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/graphview/scene"
)

// ErrCacheDestroyed is returned by Get after Destroy.
var ErrCacheDestroyed = errors.New("texture: cache destroyed")

// Builder creates the fragment a texture is generated from.
type Builder func() (*scene.Node, error)

// Cache maps string keys to generated textures.
//
// Entries live until Delete, Clear or Destroy; there is no eviction, so a
// key is rasterized at most once while it stays in the cache.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*scene.Texture
	resolution float64
	destroyed  bool
	hits       uint64
	misses     uint64
}

// NewCache creates a cache generating textures at resolution device
// pixels per unit. Non-positive resolutions mean 1.
func NewCache(resolution float64) *Cache {
	if resolution <= 0 {
		resolution = 1
	}
	return &Cache{
		entries:    make(map[string]*scene.Texture),
		resolution: resolution,
	}
}

// Resolution returns the device pixel ratio textures are generated at.
func (c *Cache) Resolution() float64 { return c.resolution }

// Get returns the texture for key, building it on a miss.
//
// On a miss the builder's fragment is measured, its bounds are snapped
// outward to whole units and exactly that region is rasterized. The
// fragment is destroyed afterwards. Builder errors are returned and
// nothing is stored.
func (c *Cache) Get(key string, build Builder) (*scene.Texture, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return nil, ErrCacheDestroyed
	}
	if tex, ok := c.entries[key]; ok {
		c.hits++
		return tex, nil
	}
	c.misses++

	frag, err := build()
	if err != nil {
		return nil, fmt.Errorf("texture: build %q: %w", key, err)
	}
	if frag == nil {
		return nil, fmt.Errorf("texture: build %q: nil fragment", key)
	}
	tex := scene.GenerateTexture(frag, frag.LocalBounds().Snap(), c.resolution)
	frag.Destroy()

	c.entries[key] = tex
	return tex, nil
}

// Has reports whether key is cached.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]
	return ok
}

// Delete releases and removes the texture for key. Missing keys are
// ignored.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tex, ok := c.entries[key]; ok {
		tex.Destroy()
		delete(c.entries, key)
	}
}

// Clear releases and removes every texture.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearLocked()
}

func (c *Cache) clearLocked() {
	for _, tex := range c.entries {
		tex.Destroy()
	}
	c.entries = make(map[string]*scene.Texture)
}

// Destroy clears the cache and makes further Get calls fail.
func (c *Cache) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearLocked()
	c.destroyed = true
}

// Len returns the number of cached textures.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Len:    len(c.entries),
		Hits:   c.hits,
		Misses: c.misses,
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Hits counts Get calls served from the cache.
	Hits uint64
	// Misses counts Get calls that ran the builder.
	Misses uint64
}

// HitRate returns the hit ratio (0.0 to 1.0).
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
