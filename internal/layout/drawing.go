package layout

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/graph/formats/dot"
	"gonum.org/v1/gonum/graph/formats/dot/ast"
)

// ErrNoDrawing is returned when laid out DOT holds no graph, or nodes
// without positions.
var ErrNoDrawing = errors.New("layout: no graph drawing")

// pointsPerInch converts Graphviz node sizes to points.
const pointsPerInch = 72

// Drawing is a laid out graph as reported by Graphviz.
type Drawing struct {
	Nodes []DrawnNode
	Edges []DrawnEdge
}

// DrawnNode is one positioned node.
type DrawnNode struct {
	Name  string
	Label string
	// Fill is the fill color of filled shapes, empty otherwise.
	Fill          string
	X, Y          float64
	Width, Height float64
}

// DrawnEdge is one edge between two drawn nodes.
type DrawnEdge struct {
	Tail, Head string
	Label      string
}

// Node returns the drawn node named name.
func (d *Drawing) Node(name string) (DrawnNode, bool) {
	for _, n := range d.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return DrawnNode{}, false
}

type attrs map[string]string

// scope holds the attribute defaults in effect for a statement list.
type scope struct {
	node, edge attrs
}

func (s scope) child() scope {
	return scope{node: maps.Clone(s.node), edge: maps.Clone(s.edge)}
}

type drawingParser struct {
	index map[string]int
	nodes []attrs
	names []string
	edges []DrawnEdge
	// touched collects the nodes mentioned inside the subgraph being
	// parsed; nil outside subgraphs.
	touched []string
}

// Parse reads the output of [Render]. Positions are moved so that y
// grows downwards inside the graph's bounding box.
func Parse(src []byte) (*Drawing, error) {
	f, err := dot.ParseBytes(src)
	if err != nil {
		return nil, fmt.Errorf("layout: parse DOT output: %w", err)
	}
	if len(f.Graphs) == 0 {
		return nil, ErrNoDrawing
	}
	g := f.Graphs[0]

	p := &drawingParser{index: make(map[string]int)}
	graphAttrs := make(attrs)
	p.stmts(g.Stmts, scope{node: attrs{}, edge: attrs{}}, graphAttrs)
	if len(p.names) == 0 {
		return nil, ErrNoDrawing
	}

	_, lly, _, ury, err := box(graphAttrs["bb"])
	if err != nil {
		return nil, fmt.Errorf("layout: graph bb: %w", err)
	}

	d := &Drawing{Nodes: make([]DrawnNode, 0, len(p.names)), Edges: p.edges}
	for i, name := range p.names {
		a := p.nodes[i]
		x, y, err := point(a["pos"])
		if err != nil {
			return nil, fmt.Errorf("%w: node %q pos: %v", ErrNoDrawing, name, err)
		}
		n := DrawnNode{
			Name:   name,
			Label:  name,
			X:      x,
			Y:      lly + ury - y,
			Width:  inches(a["width"]),
			Height: inches(a["height"]),
		}
		if l, ok := a["label"]; ok && l != `\N` {
			n.Label = l
		}
		if strings.Contains(a["style"], "filled") {
			n.Fill = a["fillcolor"]
			if n.Fill == "" {
				n.Fill = a["color"]
			}
		}
		d.Nodes = append(d.Nodes, n)
	}
	return d, nil
}

func (p *drawingParser) stmts(list []ast.Stmt, s scope, graphAttrs attrs) {
	for _, stmt := range list {
		switch st := stmt.(type) {
		case *ast.Attr:
			if graphAttrs != nil {
				graphAttrs[unquote(st.Key)] = unquote(st.Val)
			}
		case *ast.AttrStmt:
			switch st.Kind {
			case ast.GraphKind:
				if graphAttrs != nil {
					set(graphAttrs, st.Attrs)
				}
			case ast.NodeKind:
				set(s.node, st.Attrs)
			case ast.EdgeKind:
				set(s.edge, st.Attrs)
			}
		case *ast.NodeStmt:
			set(p.node(unquote(st.Node.ID), s), st.Attrs)
		case *ast.EdgeStmt:
			p.edge(st, s)
		case *ast.Subgraph:
			p.subgraph(st, s)
		}
	}
}

// node returns the attributes of node name, declaring it with the scope's
// defaults on first use.
func (p *drawingParser) node(name string, s scope) attrs {
	p.touch(name)
	if i, ok := p.index[name]; ok {
		return p.nodes[i]
	}
	p.index[name] = len(p.names)
	p.names = append(p.names, name)
	a := maps.Clone(s.node)
	p.nodes = append(p.nodes, a)
	return a
}

func (p *drawingParser) touch(name string) {
	if p.touched != nil && !slices.Contains(p.touched, name) {
		p.touched = append(p.touched, name)
	}
}

// subgraph parses sg in a child scope and returns the nodes it mentions.
func (p *drawingParser) subgraph(sg *ast.Subgraph, s scope) []string {
	outer := p.touched
	p.touched = []string{}
	p.stmts(sg.Stmts, s.child(), nil)
	names := p.touched
	p.touched = outer
	for _, name := range names {
		p.touch(name)
	}
	return names
}

func (p *drawingParser) edge(st *ast.EdgeStmt, s scope) {
	a := maps.Clone(s.edge)
	set(a, st.Attrs)
	label := a["label"]

	tails := p.vertex(st.From, s)
	for e := st.To; e != nil; e = e.To {
		heads := p.vertex(e.Vertex, s)
		for _, t := range tails {
			for _, h := range heads {
				p.edges = append(p.edges, DrawnEdge{Tail: t, Head: h, Label: label})
			}
		}
		tails = heads
	}
}

// vertex returns the node names an edge end stands for. Ports are not
// part of the name.
func (p *drawingParser) vertex(v ast.Vertex, s scope) []string {
	switch v := v.(type) {
	case *ast.Node:
		name := unquote(v.ID)
		p.node(name, s)
		return []string{name}
	case *ast.Subgraph:
		return p.subgraph(v, s)
	}
	return nil
}

func set(dst attrs, list []*ast.Attr) {
	for _, a := range list {
		dst[unquote(a.Key)] = unquote(a.Val)
	}
}

// unquote returns the value of a DOT ID: quoted strings lose their quotes
// and escaped quotes and line continuations, HTML strings their brackets.
func unquote(id string) string {
	switch {
	case len(id) >= 2 && id[0] == '"' && id[len(id)-1] == '"':
		s := id[1 : len(id)-1]
		s = strings.ReplaceAll(s, "\\\r\n", "")
		s = strings.ReplaceAll(s, "\\\n", "")
		return strings.ReplaceAll(s, `\"`, `"`)
	case len(id) >= 2 && id[0] == '<' && id[len(id)-1] == '>':
		return id[1 : len(id)-1]
	}
	return id
}

func floats(s string, n int) ([]float64, error) {
	parts := strings.Split(strings.TrimSuffix(s, "!"), ",")
	if len(parts) < n {
		return nil, fmt.Errorf("%q: want %d numbers", s, n)
	}
	out := make([]float64, n)
	for i := range out {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func point(s string) (x, y float64, err error) {
	v, err := floats(s, 2)
	if err != nil {
		return 0, 0, err
	}
	return v[0], v[1], nil
}

func box(s string) (llx, lly, urx, ury float64, err error) {
	v, err := floats(s, 4)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return v[0], v[1], v[2], v[3], nil
}

func inches(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v * pointsPerInch
}
