// Package texture memoizes textures generated from scene fragments.
//
// The graph view draws every node circle, border, icon, label and label
// background as a sprite. Sprites with the same geometry share one white
// texture and differ only in tint, so the cache key is built from the
// parameters that affect rasterization (size, width, font, content) and
// never from colors.
//
// # Example
//
//	c := texture.NewCache(2) // device pixel ratio
//	tex, err := c.Get("node-circle-15", func() (*scene.Node, error) {
//	    return circleFragment(15), nil
//	})
//
// Cache is safe for concurrent use. Builders run under the cache lock, so
// a builder must not call back into the same cache.
package texture
