package graph

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"
	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/multi"

	"github.com/gogpu/graphview/internal/emitter"
)

// Sentinel errors for the graph package.
var (
	// ErrNotFound is returned for a missing node or edge key.
	ErrNotFound = errors.New("graph: not found")

	// ErrDuplicateKey is returned when adding a key that already exists.
	ErrDuplicateKey = errors.New("graph: duplicate key")

	// ErrMissingPosition is returned by Position for a node without numeric
	// x and y attributes.
	ErrMissingPosition = errors.New("graph: missing position")
)

// Attributes is an attribute map.
type Attributes = map[string]any

type nodeEntry struct {
	id    int64
	seq   uint64
	attrs Attributes
}

type edgeEntry struct {
	line   gonum.Line
	seq    uint64
	source string
	target string
	attrs  Attributes
}

// Graph is an attributed multigraph with string keys.
type Graph struct {
	topo    *multi.DirectedGraph
	nodes   map[string]*nodeEntry
	edges   map[string]*edgeEntry
	byNode  map[int64]string
	byLine  map[int64]string
	seq     uint64
	attrs   Attributes
	events  emitter.Emitter[Event]
	newEdge func() string
}

// Option configures a Graph.
type Option func(*Graph)

// WithEdgeKeys sets the generator for keys of edges added without one.
// The default generates random UUIDs.
func WithEdgeKeys(gen func() string) Option {
	return func(g *Graph) {
		if gen != nil {
			g.newEdge = gen
		}
	}
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{newEdge: uuid.NewString}
	g.reset()
	g.attrs = Attributes{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Graph) reset() {
	g.topo = multi.NewDirectedGraph()
	g.nodes = make(map[string]*nodeEntry)
	g.edges = make(map[string]*edgeEntry)
	g.byNode = make(map[int64]string)
	g.byLine = make(map[int64]string)
}

// Subscribe registers fn for every change and returns a function that
// unsubscribes it.
func (g *Graph) Subscribe(fn func(Event)) (unsubscribe func()) {
	return g.events.On(fn)
}

func (g *Graph) emit(ev Event) { g.events.Emit(ev) }

// Order returns the number of nodes.
func (g *Graph) Order() int { return len(g.nodes) }

// Size returns the number of edges.
func (g *Graph) Size() int { return len(g.edges) }

// HasNode reports whether key is a node.
func (g *Graph) HasNode(key string) bool {
	_, ok := g.nodes[key]
	return ok
}

// HasEdge reports whether key is an edge.
func (g *Graph) HasEdge(key string) bool {
	_, ok := g.edges[key]
	return ok
}

// Attributes returns a copy of the graph-level attributes.
func (g *Graph) Attributes() Attributes { return maps.Clone(g.attrs) }

// SetAttribute sets a graph-level attribute. No event is emitted.
func (g *Graph) SetAttribute(name string, v any) { g.attrs[name] = v }

// AddNode adds a node. attrs is copied.
func (g *Graph) AddNode(key string, attrs Attributes) error {
	if _, ok := g.nodes[key]; ok {
		return fmt.Errorf("%w: node %q", ErrDuplicateKey, key)
	}
	n := g.topo.NewNode()
	g.topo.AddNode(n)
	g.seq++
	e := &nodeEntry{id: n.ID(), seq: g.seq, attrs: cloneAttrs(attrs)}
	g.nodes[key] = e
	g.byNode[e.id] = key
	g.emit(Event{Type: NodeAdded, Key: key, Attributes: maps.Clone(e.attrs)})
	return nil
}

// MergeNode adds key if missing, otherwise merges attrs into it.
func (g *Graph) MergeNode(key string, attrs Attributes) error {
	if !g.HasNode(key) {
		return g.AddNode(key, attrs)
	}
	return g.MergeNodeAttributes(key, attrs)
}

// AddEdge adds an edge with a generated key and returns the key.
func (g *Graph) AddEdge(source, target string, attrs Attributes) (string, error) {
	key := g.newEdge()
	if err := g.AddEdgeWithKey(key, source, target, attrs); err != nil {
		return "", err
	}
	return key, nil
}

// AddEdgeWithKey adds an edge between two existing nodes.
func (g *Graph) AddEdgeWithKey(key, source, target string, attrs Attributes) error {
	if _, ok := g.edges[key]; ok {
		return fmt.Errorf("%w: edge %q", ErrDuplicateKey, key)
	}
	s, ok := g.nodes[source]
	if !ok {
		return fmt.Errorf("%w: edge %q source node %q", ErrNotFound, key, source)
	}
	t, ok := g.nodes[target]
	if !ok {
		return fmt.Errorf("%w: edge %q target node %q", ErrNotFound, key, target)
	}
	line := g.topo.NewLine(g.topo.Node(s.id), g.topo.Node(t.id))
	g.topo.SetLine(line)
	g.seq++
	e := &edgeEntry{line: line, seq: g.seq, source: source, target: target, attrs: cloneAttrs(attrs)}
	g.edges[key] = e
	g.byLine[line.ID()] = key
	g.emit(Event{Type: EdgeAdded, Key: key, Attributes: maps.Clone(e.attrs), Source: source, Target: target})
	return nil
}

// DropNode removes a node and its incident edges. An EdgeDropped event is
// emitted for each edge before the NodeDropped event.
func (g *Graph) DropNode(key string) error {
	e, ok := g.nodes[key]
	if !ok {
		return fmt.Errorf("%w: node %q", ErrNotFound, key)
	}
	for _, ek := range g.EdgesOf(key) {
		_ = g.DropEdge(ek)
	}
	g.topo.RemoveNode(e.id)
	delete(g.nodes, key)
	delete(g.byNode, e.id)
	g.emit(Event{Type: NodeDropped, Key: key, Attributes: e.attrs})
	return nil
}

// DropEdge removes an edge.
func (g *Graph) DropEdge(key string) error {
	e, ok := g.edges[key]
	if !ok {
		return fmt.Errorf("%w: edge %q", ErrNotFound, key)
	}
	g.topo.RemoveLine(e.line.From().ID(), e.line.To().ID(), e.line.ID())
	delete(g.edges, key)
	delete(g.byLine, e.line.ID())
	g.emit(Event{Type: EdgeDropped, Key: key, Attributes: e.attrs, Source: e.source, Target: e.target})
	return nil
}

// Clear removes every node and edge, emitting a single Cleared event.
func (g *Graph) Clear() {
	g.reset()
	g.emit(Event{Type: Cleared})
}

// ClearEdges removes every edge, emitting a single EdgesCleared event.
func (g *Graph) ClearEdges() {
	for _, e := range g.edges {
		g.topo.RemoveLine(e.line.From().ID(), e.line.To().ID(), e.line.ID())
	}
	g.edges = make(map[string]*edgeEntry)
	g.byLine = make(map[int64]string)
	g.emit(Event{Type: EdgesCleared})
}

// Nodes returns node keys in insertion order.
func (g *Graph) Nodes() []string {
	keys := slices.Collect(maps.Keys(g.nodes))
	slices.SortFunc(keys, func(a, b string) int { return cmpSeq(g.nodes[a].seq, g.nodes[b].seq) })
	return keys
}

// Edges returns edge keys in insertion order.
func (g *Graph) Edges() []string {
	keys := slices.Collect(maps.Keys(g.edges))
	g.sortEdges(keys)
	return keys
}

func (g *Graph) sortEdges(keys []string) {
	slices.SortFunc(keys, func(a, b string) int { return cmpSeq(g.edges[a].seq, g.edges[b].seq) })
}

func cmpSeq(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ForEachNode calls fn for every node in insertion order with a copy of
// its attributes.
func (g *Graph) ForEachNode(fn func(key string, attrs Attributes)) {
	for _, k := range g.Nodes() {
		fn(k, maps.Clone(g.nodes[k].attrs))
	}
}

// ForEachEdge calls fn for every edge in insertion order.
func (g *Graph) ForEachEdge(fn func(key string, attrs Attributes, source, target string)) {
	for _, k := range g.Edges() {
		e := g.edges[k]
		fn(k, maps.Clone(e.attrs), e.source, e.target)
	}
}

// NodeAttributes returns a copy of a node's attributes.
func (g *Graph) NodeAttributes(key string) (Attributes, bool) {
	e, ok := g.nodes[key]
	if !ok {
		return nil, false
	}
	return maps.Clone(e.attrs), true
}

// NodeAttribute returns one node attribute.
func (g *Graph) NodeAttribute(key, name string) (any, bool) {
	e, ok := g.nodes[key]
	if !ok {
		return nil, false
	}
	v, ok := e.attrs[name]
	return v, ok
}

// EdgeAttributes returns a copy of an edge's attributes.
func (g *Graph) EdgeAttributes(key string) (Attributes, bool) {
	e, ok := g.edges[key]
	if !ok {
		return nil, false
	}
	return maps.Clone(e.attrs), true
}

// EdgeExtremities returns an edge's source and target node keys.
func (g *Graph) EdgeExtremities(key string) (source, target string, ok bool) {
	e, ok := g.edges[key]
	if !ok {
		return "", "", false
	}
	return e.source, e.target, true
}

// EdgesOf returns the keys of edges incident to a node, in insertion
// order. Self loops are listed once.
func (g *Graph) EdgesOf(key string) []string {
	n, ok := g.nodes[key]
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	collect := func(lines gonum.Lines) {
		for lines.Next() {
			k := g.byLine[lines.Line().ID()]
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	from := g.topo.From(n.id)
	for from.Next() {
		collect(g.topo.Lines(n.id, from.Node().ID()))
	}
	to := g.topo.To(n.id)
	for to.Next() {
		collect(g.topo.Lines(to.Node().ID(), n.id))
	}
	g.sortEdges(out)
	return out
}

// Neighbors returns the keys of nodes adjacent to key in either
// direction, sorted by insertion order.
func (g *Graph) Neighbors(key string) []string {
	n, ok := g.nodes[key]
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, it := range []gonum.Nodes{g.topo.From(n.id), g.topo.To(n.id)} {
		for it.Next() {
			k := g.byNode[it.Node().ID()]
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	slices.SortFunc(out, func(a, b string) int { return cmpSeq(g.nodes[a].seq, g.nodes[b].seq) })
	return out
}

// Degree returns the number of edges incident to key.
func (g *Graph) Degree(key string) int { return len(g.EdgesOf(key)) }

func cloneAttrs(a Attributes) Attributes {
	if a == nil {
		return Attributes{}
	}
	return maps.Clone(a)
}
