package graph

import (
	"encoding/json"
	"fmt"
	"io"
)

// Serialized is graphology's JSON serialization of a graph.
type Serialized struct {
	Attributes Attributes       `json:"attributes,omitempty"`
	Options    *SerialOptions   `json:"options,omitempty"`
	Nodes      []SerializedNode `json:"nodes"`
	Edges      []SerializedEdge `json:"edges"`
}

// SerialOptions mirrors graphology's graph options. They are informative
// only: a Graph is always a multigraph allowing self loops.
type SerialOptions struct {
	Type           string `json:"type,omitempty"`
	Multi          bool   `json:"multi"`
	AllowSelfLoops bool   `json:"allowSelfLoops"`
}

// SerializedNode is one node.
type SerializedNode struct {
	Key        string     `json:"key"`
	Attributes Attributes `json:"attributes,omitempty"`
}

// SerializedEdge is one edge. An empty key gets a generated one.
type SerializedEdge struct {
	Key        string     `json:"key,omitempty"`
	Source     string     `json:"source"`
	Target     string     `json:"target"`
	Attributes Attributes `json:"attributes,omitempty"`
	Undirected bool       `json:"undirected,omitempty"`
}

// Import adds the serialized nodes and edges to g. Existing nodes get
// their attributes merged; existing edge keys are an error.
func (g *Graph) Import(s Serialized) error {
	for k, v := range s.Attributes {
		g.attrs[k] = v
	}
	for _, n := range s.Nodes {
		if err := g.MergeNode(n.Key, n.Attributes); err != nil {
			return err
		}
	}
	for _, e := range s.Edges {
		var err error
		if e.Key == "" {
			_, err = g.AddEdge(e.Source, e.Target, e.Attributes)
		} else {
			err = g.AddEdgeWithKey(e.Key, e.Source, e.Target, e.Attributes)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Export returns the serialized form of g in insertion order.
func (g *Graph) Export() Serialized {
	s := Serialized{
		Attributes: g.Attributes(),
		Options:    &SerialOptions{Type: "directed", Multi: true, AllowSelfLoops: true},
		Nodes:      make([]SerializedNode, 0, len(g.nodes)),
		Edges:      make([]SerializedEdge, 0, len(g.edges)),
	}
	g.ForEachNode(func(key string, attrs Attributes) {
		s.Nodes = append(s.Nodes, SerializedNode{Key: key, Attributes: attrs})
	})
	g.ForEachEdge(func(key string, attrs Attributes, source, target string) {
		s.Edges = append(s.Edges, SerializedEdge{Key: key, Source: source, Target: target, Attributes: attrs})
	})
	return s
}

// ReadJSON decodes a serialized graph from r into a new Graph.
func ReadJSON(r io.Reader, opts ...Option) (*Graph, error) {
	var s Serialized
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("graph: decode json: %w", err)
	}
	normalizeNumbers(s.Attributes)
	for _, n := range s.Nodes {
		normalizeNumbers(n.Attributes)
	}
	for _, e := range s.Edges {
		normalizeNumbers(e.Attributes)
	}
	g := New(opts...)
	if err := g.Import(s); err != nil {
		return nil, err
	}
	return g, nil
}

// WriteJSON encodes g to w.
func (g *Graph) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g.Export()); err != nil {
		return fmt.Errorf("graph: encode json: %w", err)
	}
	return nil
}

// normalizeNumbers turns json.Number values into int64 when integral and
// float64 otherwise, recursively.
func normalizeNumbers(m map[string]any) {
	for k, v := range m {
		m[k] = normalizeValue(v)
	}
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		normalizeNumbers(t)
		return t
	case []any:
		for i := range t {
			t[i] = normalizeValue(t[i])
		}
		return t
	}
	return v
}
