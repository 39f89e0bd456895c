package graph

import (
	"fmt"
	"maps"
)

// SetNodeAttribute sets one node attribute.
func (g *Graph) SetNodeAttribute(key, name string, v any) error {
	e, ok := g.nodes[key]
	if !ok {
		return fmt.Errorf("%w: node %q", ErrNotFound, key)
	}
	e.attrs[name] = v
	g.nodeUpdated(key, e, UpdateSet, name)
	return nil
}

// RemoveNodeAttribute deletes one node attribute.
func (g *Graph) RemoveNodeAttribute(key, name string) error {
	e, ok := g.nodes[key]
	if !ok {
		return fmt.Errorf("%w: node %q", ErrNotFound, key)
	}
	delete(e.attrs, name)
	g.nodeUpdated(key, e, UpdateRemove, name)
	return nil
}

// MergeNodeAttributes shallow-merges attrs into a node's attributes.
func (g *Graph) MergeNodeAttributes(key string, attrs Attributes) error {
	e, ok := g.nodes[key]
	if !ok {
		return fmt.Errorf("%w: node %q", ErrNotFound, key)
	}
	maps.Copy(e.attrs, attrs)
	g.nodeUpdated(key, e, UpdateMerge, "")
	return nil
}

// ReplaceNodeAttributes replaces a node's attributes with a copy of attrs.
func (g *Graph) ReplaceNodeAttributes(key string, attrs Attributes) error {
	e, ok := g.nodes[key]
	if !ok {
		return fmt.Errorf("%w: node %q", ErrNotFound, key)
	}
	e.attrs = cloneAttrs(attrs)
	g.nodeUpdated(key, e, UpdateReplace, "")
	return nil
}

func (g *Graph) nodeUpdated(key string, e *nodeEntry, kind UpdateKind, name string) {
	g.emit(Event{Type: NodeAttributesUpdated, Key: key, Attributes: maps.Clone(e.attrs), Kind: kind, Name: name})
}

// SetEdgeAttribute sets one edge attribute.
func (g *Graph) SetEdgeAttribute(key, name string, v any) error {
	e, ok := g.edges[key]
	if !ok {
		return fmt.Errorf("%w: edge %q", ErrNotFound, key)
	}
	e.attrs[name] = v
	g.edgeUpdated(key, e, UpdateSet, name)
	return nil
}

// RemoveEdgeAttribute deletes one edge attribute.
func (g *Graph) RemoveEdgeAttribute(key, name string) error {
	e, ok := g.edges[key]
	if !ok {
		return fmt.Errorf("%w: edge %q", ErrNotFound, key)
	}
	delete(e.attrs, name)
	g.edgeUpdated(key, e, UpdateRemove, name)
	return nil
}

// MergeEdgeAttributes shallow-merges attrs into an edge's attributes.
func (g *Graph) MergeEdgeAttributes(key string, attrs Attributes) error {
	e, ok := g.edges[key]
	if !ok {
		return fmt.Errorf("%w: edge %q", ErrNotFound, key)
	}
	maps.Copy(e.attrs, attrs)
	g.edgeUpdated(key, e, UpdateMerge, "")
	return nil
}

// ReplaceEdgeAttributes replaces an edge's attributes with a copy of attrs.
func (g *Graph) ReplaceEdgeAttributes(key string, attrs Attributes) error {
	e, ok := g.edges[key]
	if !ok {
		return fmt.Errorf("%w: edge %q", ErrNotFound, key)
	}
	e.attrs = cloneAttrs(attrs)
	g.edgeUpdated(key, e, UpdateReplace, "")
	return nil
}

func (g *Graph) edgeUpdated(key string, e *edgeEntry, kind UpdateKind, name string) {
	g.emit(Event{
		Type:       EdgeAttributesUpdated,
		Key:        key,
		Attributes: maps.Clone(e.attrs),
		Source:     e.source,
		Target:     e.target,
		Kind:       kind,
		Name:       name,
	})
}

// UpdateEachNodeAttributes replaces every node's attributes with fn's
// result and emits one EachNodeAttributesUpdated event.
func (g *Graph) UpdateEachNodeAttributes(fn func(key string, attrs Attributes) Attributes) {
	for k, e := range g.nodes {
		e.attrs = cloneAttrs(fn(k, maps.Clone(e.attrs)))
	}
	g.emit(Event{Type: EachNodeAttributesUpdated})
}

// UpdateEachEdgeAttributes replaces every edge's attributes with fn's
// result and emits one EachEdgeAttributesUpdated event.
func (g *Graph) UpdateEachEdgeAttributes(fn func(key string, attrs Attributes) Attributes) {
	for k, e := range g.edges {
		e.attrs = cloneAttrs(fn(k, maps.Clone(e.attrs)))
	}
	g.emit(Event{Type: EachEdgeAttributesUpdated})
}

// Position returns a node's numeric x and y attributes.
func (g *Graph) Position(key string) (x, y float64, err error) {
	e, ok := g.nodes[key]
	if !ok {
		return 0, 0, fmt.Errorf("%w: node %q", ErrNotFound, key)
	}
	return PositionOf(key, e.attrs)
}

// PositionOf reads numeric x and y from attrs. key is used in the error.
func PositionOf(key string, attrs Attributes) (x, y float64, err error) {
	var okX, okY bool
	x, okX = Float(attrs["x"])
	y, okY = Float(attrs["y"])
	if !okX || !okY {
		return 0, 0, fmt.Errorf("%w: node %q", ErrMissingPosition, key)
	}
	return x, y, nil
}

// Float converts the numeric types found in attribute maps to float64.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
