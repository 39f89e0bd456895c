package layout

import (
	"context"
	"fmt"

	"github.com/gogpu/graphview/graph"
)

// DefaultEngine is used when no engine is given.
const DefaultEngine = "dot"

// NeedsLayout reports whether some node of g lacks a numeric position.
func NeedsLayout(g *graph.Graph) bool {
	missing := false
	g.ForEachNode(func(key string, attrs graph.Attributes) {
		if _, _, err := graph.PositionOf(key, attrs); err != nil {
			missing = true
		}
	})
	return missing
}

// Apply positions every node of g with engine. The new coordinates are
// written in a single attribute update.
func Apply(ctx context.Context, g *graph.Graph, engine string) error {
	if g.Order() == 0 {
		return nil
	}
	if engine == "" {
		engine = DefaultEngine
	}

	dot, keys := ToDOT(g)
	out, err := Render(ctx, []byte(dot), engine)
	if err != nil {
		return err
	}
	d, err := Parse(out)
	if err != nil {
		return err
	}

	pos := make(map[string][2]float64, len(d.Nodes))
	for _, n := range d.Nodes {
		var i int
		if _, err := fmt.Sscanf(n.Name, "n%d", &i); err != nil || i < 0 || i >= len(keys) {
			continue
		}
		pos[keys[i]] = [2]float64{n.X, n.Y}
	}
	if len(pos) != len(keys) {
		return fmt.Errorf("layout: %s placed %d of %d nodes", engine, len(pos), len(keys))
	}

	g.UpdateEachNodeAttributes(func(key string, attrs graph.Attributes) graph.Attributes {
		p := pos[key]
		attrs["x"], attrs["y"] = p[0], p[1]
		return attrs
	})
	return nil
}

// LoadDOT lays out a DOT file and returns it as a graph. Every node gets
// x and y, a label when it differs from its name, and a color when its
// shape is filled. Edge labels are kept.
func LoadDOT(ctx context.Context, data []byte, engine string) (*graph.Graph, error) {
	if engine == "" {
		engine = DefaultEngine
	}
	out, err := Render(ctx, data, engine)
	if err != nil {
		return nil, err
	}
	d, err := Parse(out)
	if err != nil {
		return nil, err
	}
	return d.Graph()
}

// Graph converts the drawing to a graph. Edge keys are "tail->head",
// suffixed with "#n" for the n-th parallel edge, so reloading an unchanged
// file yields the same keys.
func (d *Drawing) Graph() (*graph.Graph, error) {
	g := graph.New()
	seen := make(map[string]int)
	for _, n := range d.Nodes {
		attrs := graph.Attributes{"x": n.X, "y": n.Y}
		if n.Label != "" && n.Label != n.Name {
			attrs["label"] = n.Label
		}
		if n.Fill != "" {
			attrs["color"] = n.Fill
		}
		if err := g.MergeNode(n.Name, attrs); err != nil {
			return nil, err
		}
	}
	for _, e := range d.Edges {
		tail, head := e.Tail, e.Head
		var attrs graph.Attributes
		if e.Label != "" {
			attrs = graph.Attributes{"label": e.Label}
		}
		key := tail + "->" + head
		if n := seen[key]; n > 0 {
			seen[key] = n + 1
			key = fmt.Sprintf("%s#%d", key, n)
		} else {
			seen[key] = 1
		}
		if err := g.AddEdgeWithKey(key, tail, head, attrs); err != nil {
			return nil, err
		}
	}
	return g, nil
}
