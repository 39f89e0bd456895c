package graphview

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/graphview/canvas"
	"github.com/gogpu/graphview/csscolor"
	"github.com/gogpu/graphview/graph"
	"github.com/gogpu/graphview/internal/view"
	"github.com/gogpu/graphview/scene"
	"github.com/gogpu/graphview/style"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

// row builds a graph with nodes at x = 0, 50, 100, ... on y = 0.
func row(t *testing.T, keys ...string) *graph.Graph {
	t.Helper()
	g := graph.New()
	for i, k := range keys {
		if err := g.AddNode(k, graph.Attributes{"x": float64(50 * i), "y": 0.0}); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func newView(t *testing.T, g Graph, opts ...Option) (*GraphView, *canvas.Offscreen) {
	t.Helper()
	c, err := canvas.NewOffscreen(400, 300)
	if err != nil {
		t.Fatal(err)
	}
	gv, err := New(c, g, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		gv.Destroy()
		_ = c.Close()
	})
	return gv, c
}

func pointer(typ scene.PointerType, x, y float64) scene.PointerEvent {
	return scene.PointerEvent{Type: typ, X: x, Y: y}
}

// screenOf returns the screen position of node key.
func screenOf(t *testing.T, gv *GraphView, key string) (x, y float64) {
	t.Helper()
	nv, ok := gv.NodeView(key)
	if !ok {
		t.Fatalf("no view for node %q", key)
	}
	e := nv.Graphics.Element
	return gv.Viewport().ToScreen(e.X, e.Y)
}

type fakeCanvas struct {
	dc   *gg.Context
	w, h int
}

func (f fakeCanvas) Context() *gg.Context      { return f.dc }
func (f fakeCanvas) Size() (width, height int) { return f.w, f.h }
func (f fakeCanvas) MarkDirty()                {}

func TestNewErrors(t *testing.T) {
	dc := gg.NewContext(10, 10)
	defer dc.Close()

	tests := []struct {
		name    string
		canvas  Canvas
		graph   Graph
		opts    []Option
		wantErr error
	}{
		{"nil canvas", nil, graph.New(), nil, ErrInvalidContainer},
		{"no context", fakeCanvas{w: 10, h: 10}, graph.New(), nil, ErrInvalidContainer},
		{"zero size", fakeCanvas{dc: dc}, graph.New(), nil, ErrInvalidContainer},
		{"nil graph", fakeCanvas{dc: dc, w: 10, h: 10}, nil, nil, ErrNilGraph},
		{
			"bad background",
			fakeCanvas{dc: dc, w: 10, h: 10},
			graph.New(),
			[]Option{WithBackground("nope")},
			csscolor.ErrInvalidColor,
		},
		{
			"bad node color",
			fakeCanvas{dc: dc, w: 10, h: 10},
			row(t, "a"),
			[]Option{WithStyle(style.Partial{"node": style.Partial{"color": style.Value("nope")}})},
			csscolor.ErrInvalidColor,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gv, err := New(tt.canvas, tt.graph, tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
			}
			if gv != nil {
				t.Error("New() returned a view with an error")
			}
		})
	}
}

func TestNewBuildsLayersAndViews(t *testing.T) {
	g := row(t, "a", "b")
	if err := g.AddEdgeWithKey("ab", "a", "b", nil); err != nil {
		t.Fatal(err)
	}
	gv, _ := newView(t, g)

	names := []string{LayerEdges, LayerFrontEdges, LayerNodes, LayerNodeLabels, LayerFrontNodes, LayerFrontNodeLabels}
	world := gv.Viewport().World
	if world.NumChildren() != len(names) {
		t.Fatalf("world has %d children, want %d", world.NumChildren(), len(names))
	}
	for i, name := range names {
		if got := world.ChildAt(i).Name; got != name {
			t.Errorf("layer %d = %q, want %q", i, got, name)
		}
	}
	if n := gv.Layer(LayerNodes).NumChildren(); n != 2 {
		t.Errorf("nodes layer has %d children, want 2", n)
	}
	if n := gv.Layer(LayerNodeLabels).NumChildren(); n != 2 {
		t.Errorf("labels layer has %d children, want 2", n)
	}
	ev, ok := gv.EdgeView("ab")
	if !ok {
		t.Fatal("no view for edge ab")
	}
	if geo := ev.Geometry(); geo.X != 25 || geo.Length != 50 || geo.Rotation != 0 {
		t.Errorf("edge geometry = %+v", geo)
	}
}

func TestResetView(t *testing.T) {
	tests := []struct {
		name      string
		keys      []string
		wantScale float64
		cx        float64
	}{
		// 500 world units across fit 400 screen pixels.
		{"wide", []string{"a", "b", "c", "d", "e", "f", "g"}, 400.0 / 500, 150},
		// Small graphs are not zoomed in past 1.
		{"single", []string{"a"}, 1, 0},
		{"empty", nil, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gv, _ := newView(t, row(t, tt.keys...))
			vp := gv.Viewport()
			if !near(vp.Scale(), tt.wantScale) {
				t.Errorf("Scale() = %v, want %v", vp.Scale(), tt.wantScale)
			}
			x, y := vp.Center()
			if !near(x, tt.cx) || !near(y, 0) {
				t.Errorf("Center() = (%v, %v), want (%v, 0)", x, y, tt.cx)
			}
		})
	}
}

func TestResolutionScalesScreen(t *testing.T) {
	c, err := canvas.NewOffscreen(800, 600)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	gv, err := New(c, row(t, "a"), WithResolution(2))
	if err != nil {
		t.Fatal(err)
	}
	defer gv.Destroy()
	vp := gv.Viewport()
	if vp.ScreenWidth != 400 || vp.ScreenHeight != 300 {
		t.Errorf("screen = %vx%v, want 400x300", vp.ScreenWidth, vp.ScreenHeight)
	}
	if gv.Cache().Resolution() != 2 {
		t.Errorf("cache resolution = %v, want 2", gv.Cache().Resolution())
	}
}

func TestGraphSync(t *testing.T) {
	g := row(t, "a", "b")
	gv, _ := newView(t, g)

	if err := g.AddNode("c", graph.Attributes{"x": 10.0, "y": 20.0}); err != nil {
		t.Fatal(err)
	}
	nv, ok := gv.NodeView("c")
	if !ok {
		t.Fatal("added node has no view")
	}
	if e := nv.Graphics.Element; e.X != 10 || e.Y != 20 || e.Parent() != gv.Layer(LayerNodes) {
		t.Errorf("node c at (%v, %v) in %v", e.X, e.Y, e.Parent())
	}

	if err := g.AddEdgeWithKey("ac", "a", "c", nil); err != nil {
		t.Fatal(err)
	}
	if _, ok := gv.EdgeView("ac"); !ok {
		t.Fatal("added edge has no view")
	}

	// Moving a node moves its edges.
	if err := g.MergeNodeAttributes("c", graph.Attributes{"x": 0.0, "y": 40.0}); err != nil {
		t.Fatal(err)
	}
	ev, _ := gv.EdgeView("ac")
	if geo := ev.Geometry(); geo.X != 0 || geo.Y != 20 || geo.Length != 40 {
		t.Errorf("edge after move = %+v", geo)
	}

	if err := g.DropNode("c"); err != nil {
		t.Fatal(err)
	}
	if _, ok := gv.NodeView("c"); ok {
		t.Error("dropped node still has a view")
	}
	if _, ok := gv.EdgeView("ac"); ok {
		t.Error("edge of dropped node still has a view")
	}

	g.Clear()
	if len(gv.nodes) != 0 || len(gv.edges) != 0 {
		t.Errorf("after Clear: %d node views, %d edge views", len(gv.nodes), len(gv.edges))
	}
	if n := gv.Layer(LayerNodes).NumChildren(); n != 0 {
		t.Errorf("nodes layer has %d children after Clear", n)
	}
}

func TestStyleFromAttributes(t *testing.T) {
	var logs bytes.Buffer
	g := row(t, "a")
	if err := g.SetNodeAttribute("a", "color", "#ff0000"); err != nil {
		t.Fatal(err)
	}
	gv, _ := newView(t, g,
		WithStyle(style.Partial{"node": style.Partial{"color": style.Attribute("color", "#000000")}}),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)
	circle := func() *scene.Node {
		nv, _ := gv.NodeView("a")
		return nv.Element(view.NodeCircle)
	}
	if circle().Tint != 0xff0000 {
		t.Fatalf("tint = %06x, want ff0000", circle().Tint)
	}

	if err := g.SetNodeAttribute("a", "color", "#00ff00"); err != nil {
		t.Fatal(err)
	}
	if circle().Tint != 0x00ff00 {
		t.Errorf("tint after update = %06x, want 00ff00", circle().Tint)
	}

	// A bad color inside an event is logged and the node keeps its look.
	if err := g.SetNodeAttribute("a", "color", "not-a-color"); err != nil {
		t.Fatal(err)
	}
	if circle().Tint != 0x00ff00 {
		t.Errorf("tint after bad color = %06x, want 00ff00", circle().Tint)
	}
	if !strings.Contains(logs.String(), "not-a-color") {
		t.Errorf("bad color not logged: %q", logs.String())
	}
}

func TestHoverRestoresLayerIndex(t *testing.T) {
	g := row(t, "a", "b", "c")
	hover := style.Partial{"node": style.Partial{"color": style.Value("#ff0000")}}
	gv, _ := newView(t, g, WithHoverStyle(hover))

	var events []string
	gv.OnAny(func(ev Event) { events = append(events, ev.Type.String()+":"+ev.Key) })

	nodes := gv.Layer(LayerNodes)
	labels := gv.Layer(LayerNodeLabels)
	b, _ := gv.NodeView("b")
	if nodes.ChildIndex(b.Graphics.Element) != 1 || labels.ChildIndex(b.Label.Element) != 1 {
		t.Fatal("node b does not start at index 1")
	}

	x, y := screenOf(t, gv, "b")
	gv.HandlePointer(pointer(scene.PointerMove, x, y))
	if !b.Hovered {
		t.Fatal("b not hovered")
	}
	if b.Graphics.Element.Parent() != gv.Layer(LayerFrontNodes) || b.Label.Element.Parent() != gv.Layer(LayerFrontNodeLabels) {
		t.Error("hovered node not in the front layers")
	}
	if nodes.ChildAt(1) != b.Graphics.Placeholder || labels.ChildAt(1) != b.Label.Placeholder {
		t.Error("placeholders not left at index 1")
	}
	if tint := b.Element(view.NodeCircle).Tint; tint != 0xff0000 {
		t.Errorf("hover tint = %06x, want ff0000", tint)
	}

	gv.HandlePointer(pointer(scene.PointerMove, x, y-100))
	if b.Hovered {
		t.Fatal("b still hovered")
	}
	if nodes.ChildIndex(b.Graphics.Element) != 1 || labels.ChildIndex(b.Label.Element) != 1 {
		t.Error("index not restored after leave")
	}
	if nodes.NumChildren() != 3 || gv.Layer(LayerFrontNodes).NumChildren() != 0 {
		t.Error("layers not restored after leave")
	}
	if tint := b.Element(view.NodeCircle).Tint; tint != 0x000000 {
		t.Errorf("tint after leave = %06x, want 000000", tint)
	}

	want := []string{"nodeMouseover:b", "nodeMousemove:b", "nodeMouseout:b"}
	if strings.Join(events, " ") != strings.Join(want, " ") {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestDragReleasedOutside(t *testing.T) {
	g := row(t, "a", "b")
	gv, _ := newView(t, g)

	x, y := screenOf(t, gv, "a")
	gv.HandlePointer(pointer(scene.PointerDown, x, y))
	if gv.Dragging() != "a" || !gv.Viewport().Paused() {
		t.Fatalf("Dragging() = %q, Paused() = %v after press", gv.Dragging(), gv.Viewport().Paused())
	}

	gv.HandlePointer(pointer(scene.PointerMove, x+10, y+20))
	wx, wy := gv.Viewport().ToWorld(x+10, y+20)
	px, py, err := g.Position("a")
	if err != nil {
		t.Fatal(err)
	}
	if !near(px, wx) || !near(py, wy) {
		t.Errorf("dragged to (%v, %v), want (%v, %v)", px, py, wx, wy)
	}

	// Release far outside the canvas.
	gv.HandlePointer(pointer(scene.PointerUp, -500, -500))
	if gv.Dragging() != "" || gv.Viewport().Paused() {
		t.Errorf("drag not ended: Dragging() = %q, Paused() = %v", gv.Dragging(), gv.Viewport().Paused())
	}
	if gv.docMove.Len() != 0 || gv.docUp.Len() != 0 {
		t.Errorf("document listeners left: move %d, up %d", gv.docMove.Len(), gv.docUp.Len())
	}
	if a, _ := gv.NodeView("a"); a.Hovered {
		t.Error("node still hovered after release away from it")
	}

	gv.HandlePointer(pointer(scene.PointerMove, 300, 280))
	qx, qy, _ := g.Position("a")
	if qx != px || qy != py {
		t.Errorf("node moved after release: (%v, %v) -> (%v, %v)", px, py, qx, qy)
	}
}

func TestDragSuppressesOtherHover(t *testing.T) {
	g := row(t, "a", "b")
	gv, _ := newView(t, g)

	ax, ay := screenOf(t, gv, "a")
	bx, by := screenOf(t, gv, "b")
	gv.HandlePointer(pointer(scene.PointerDown, ax, ay))
	gv.HandlePointer(pointer(scene.PointerMove, bx, by+40))
	b, _ := gv.NodeView("b")
	gv.HandlePointer(pointer(scene.PointerMove, bx, by))
	if b.Hovered {
		t.Error("node hovered during another node's drag")
	}
	gv.HandlePointer(pointer(scene.PointerUp, bx, by))
	a, _ := gv.NodeView("a")
	if !a.Hovered {
		t.Error("dragged node under the pointer lost hover on release")
	}
}

func TestClickRequiresSameEntity(t *testing.T) {
	g := row(t, "a", "b")
	gv, _ := newView(t, g)

	clicks := 0
	gv.On(NodeClick, func(ev Event) {
		if ev.Key != "a" {
			t.Errorf("click on %q", ev.Key)
		}
		clicks++
	})

	x, y := screenOf(t, gv, "a")
	gv.HandlePointer(pointer(scene.PointerDown, x, y))
	gv.HandlePointer(pointer(scene.PointerUp, x, y))
	if clicks != 1 {
		t.Fatalf("clicks = %d after press and release on a, want 1", clicks)
	}

	gv.HandlePointer(pointer(scene.PointerDown, x, y))
	gv.HandlePointer(pointer(scene.PointerUp, x, y-200))
	if clicks != 1 {
		t.Errorf("clicks = %d after release elsewhere, want 1", clicks)
	}
}

func TestEdgeHoverAndClick(t *testing.T) {
	g := row(t, "a", "b", "c")
	if err := g.AddEdgeWithKey("ac", "a", "c", graph.Attributes{}); err != nil {
		t.Fatal(err)
	}
	gv, _ := newView(t, g, WithStyle(style.Partial{"edge": style.Partial{"width": style.Value(6.0)}}))

	var got []EventType
	gv.OnAny(func(ev Event) {
		if ev.Key == "ac" {
			got = append(got, ev.Type)
		}
	})

	// Between a and b, on the edge line but off both nodes.
	ax, ay := screenOf(t, gv, "a")
	bx, _ := screenOf(t, gv, "b")
	x := (ax + bx) / 2
	gv.HandlePointer(pointer(scene.PointerMove, x, ay+1))
	e, _ := gv.EdgeView("ac")
	if !e.Hovered || e.Graphics.Element.Parent() != gv.Layer(LayerFrontEdges) {
		t.Fatal("edge not hovered and promoted")
	}
	gv.HandlePointer(pointer(scene.PointerDown, x, ay+1))
	gv.HandlePointer(pointer(scene.PointerUp, x, ay+1))
	gv.HandlePointer(pointer(scene.PointerMove, x, ay+100))
	if e.Hovered || gv.Layer(LayerEdges).ChildIndex(e.Graphics.Element) != 0 {
		t.Error("edge not restored after leave")
	}

	want := []EventType{EdgeMouseover, EdgeMousemove, EdgeMousedown, EdgeMouseup, EdgeClick, EdgeMouseout}
	if len(got) != len(want) {
		t.Fatalf("edge events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLODVisibility(t *testing.T) {
	g := row(t, "a")
	if err := g.SetNodeAttribute("a", "label", "alpha"); err != nil {
		t.Fatal(err)
	}
	gv, _ := newView(t, g, WithStyle(style.Partial{"node": style.Partial{
		"icon": style.Partial{"content": style.Value("A")},
		"label": style.Partial{
			"content":         style.Attribute("label", ""),
			"backgroundColor": style.Value("#ffffff"),
		},
	}}))
	nv, _ := gv.NodeView("a")

	tests := []struct {
		scale                     float64
		lod                       int
		base, border, icon, label bool
	}{
		{0.05, 0, true, false, false, false},
		{0.15, 1, true, true, false, false},
		{0.3, 2, true, true, true, false},
		{0.5, 3, true, true, true, true},
	}
	for _, tt := range tests {
		gv.Viewport().SetZoom(tt.scale, true)
		gv.Render()
		if gv.LOD() != tt.lod {
			t.Errorf("scale %v: LOD() = %d, want %d", tt.scale, gv.LOD(), tt.lod)
		}
		check := func(name string, want bool) {
			if got := nv.Element(name).Visible; got != want {
				t.Errorf("scale %v: %s visible = %v, want %v", tt.scale, name, got, want)
			}
		}
		check(view.NodeCircle, tt.base)
		check(view.NodeBorder, tt.border)
		check(view.NodeIcon, tt.icon)
		check(view.NodeLabelBackground, tt.label)
		check(view.NodeLabelText, tt.label)
	}
}

func TestCullingOffscreen(t *testing.T) {
	g := row(t, "a", "b")
	gv, _ := newView(t, g)
	gv.Viewport().SetZoom(1, true)
	// Node a ends up 300 units left of the screen center.
	gv.Viewport().MoveCenter(300, 0)
	gv.Render()
	a, _ := gv.NodeView("a")
	if a.Element(view.NodeCircle).Visible {
		t.Error("offscreen node circle is visible")
	}
	gv.Viewport().MoveCenter(0, 0)
	gv.Render()
	if !a.Element(view.NodeCircle).Visible {
		t.Error("onscreen node circle is hidden")
	}
}

func TestFrameCoalescesRenders(t *testing.T) {
	g := row(t, "a", "b")
	gv, c := newView(t, g)

	if !gv.Frame(0) {
		t.Fatal("first Frame did not draw")
	}
	if gv.Frame(0) {
		t.Fatal("Frame drew without changes")
	}
	for i := range 5 {
		if err := g.SetNodeAttribute("a", "x", float64(i)); err != nil {
			t.Fatal(err)
		}
	}
	if !gv.RenderRequested() {
		t.Fatal("graph change did not request a render")
	}
	if !gv.Frame(0) || gv.Frame(0) {
		t.Error("changes were not drawn exactly once")
	}
	if c.Frames() != 2 {
		t.Errorf("canvas frames = %d, want 2", c.Frames())
	}
}

func TestZoomInOut(t *testing.T) {
	gv, _ := newView(t, row(t, "a", "b", "c", "d", "e", "f", "g"))
	s := gv.Viewport().Scale()
	gv.ZoomIn()
	if gv.Viewport().Scale() <= s {
		t.Errorf("ZoomIn: scale %v -> %v", s, gv.Viewport().Scale())
	}
	gv.ZoomOut()
	if !near(gv.Viewport().Scale(), s) {
		t.Errorf("ZoomOut did not undo ZoomIn: %v, want %v", gv.Viewport().Scale(), s)
	}
}

func TestResize(t *testing.T) {
	gv, _ := newView(t, row(t, "a"))
	if err := gv.Resize(200, 100); err != nil {
		t.Fatal(err)
	}
	if vp := gv.Viewport(); vp.ScreenWidth != 200 || vp.ScreenHeight != 100 {
		t.Errorf("screen = %vx%v after Resize", vp.ScreenWidth, vp.ScreenHeight)
	}
	if err := gv.Resize(0, 100); !errors.Is(err, ErrInvalidContainer) {
		t.Errorf("Resize(0, 100) error = %v", err)
	}
}

func TestDestroyDuringDrag(t *testing.T) {
	g := row(t, "a")
	gv, _ := newView(t, g)
	x, y := screenOf(t, gv, "a")
	gv.HandlePointer(pointer(scene.PointerDown, x, y))
	gv.Destroy()

	if gv.docMove.Len() != 0 || gv.docUp.Len() != 0 {
		t.Error("document listeners survive Destroy")
	}
	if !gv.Destroyed() || gv.Dragging() != "" {
		t.Error("view not destroyed cleanly")
	}
	gv.HandlePointer(pointer(scene.PointerMove, x+50, y))
	if px, _, _ := g.Position("a"); px != 0 {
		t.Errorf("node moved after Destroy: x = %v", px)
	}
	// Graph events after Destroy are ignored.
	if err := g.AddNode("z", graph.Attributes{"x": 0.0, "y": 0.0}); err != nil {
		t.Fatal(err)
	}
	if _, err := gv.cache.Get("x", nil); err == nil {
		t.Error("cache usable after Destroy")
	}
	if gv.Resize(10, 10) == nil {
		t.Error("Resize after Destroy succeeded")
	}
}

func TestHoverNodeAPI(t *testing.T) {
	gv, _ := newView(t, row(t, "a", "b"))
	if !gv.HoverNode("b") {
		t.Fatal("HoverNode(b) = false")
	}
	b, _ := gv.NodeView("b")
	if !b.Graphics.InFront() {
		t.Error("hovered node not promoted")
	}
	if !gv.UnhoverNode("b") || b.Graphics.InFront() {
		t.Error("UnhoverNode did not demote")
	}
	if gv.HoverNode("zz") {
		t.Error("HoverNode of unknown key = true")
	}
}

func TestHoverStyleRevealsContent(t *testing.T) {
	gv, _ := newView(t, row(t, "a"), WithHoverStyle(style.Partial{"node": style.Partial{
		"icon":  style.Partial{"content": style.Value("X")},
		"label": style.Partial{"content": style.Value("hello")},
	}}))
	gv.Viewport().SetZoom(0.5, true)
	gv.Render()
	nv, _ := gv.NodeView("a")
	if nv.Element(view.NodeLabelText).Visible {
		t.Fatal("empty label visible before hover")
	}

	gv.HoverNode("a")
	gv.Render()
	for _, name := range []string{view.NodeIcon, view.NodeLabelText} {
		if !nv.Element(name).Visible {
			t.Errorf("%s hidden after hover", name)
		}
	}

	gv.UnhoverNode("a")
	gv.Render()
	if nv.Element(view.NodeLabelText).Visible {
		t.Error("label visible after unhover")
	}
}

func TestDragMoveUpdatesOnce(t *testing.T) {
	g := row(t, "a", "b")
	if err := g.AddEdgeWithKey("ab", "a", "b", nil); err != nil {
		t.Fatal(err)
	}
	gv, _ := newView(t, g)

	var updates []graph.Attributes
	off := g.Subscribe(func(ev graph.Event) {
		if ev.Type == graph.NodeAttributesUpdated && ev.Key == "a" {
			updates = append(updates, ev.Attributes)
		}
	})
	defer off()

	x, y := screenOf(t, gv, "a")
	gv.HandlePointer(pointer(scene.PointerDown, x, y))
	gv.HandlePointer(pointer(scene.PointerMove, x+15, y+25))
	gv.HandlePointer(pointer(scene.PointerUp, x+15, y+25))

	if len(updates) != 1 {
		t.Fatalf("node updates per move = %d, want 1", len(updates))
	}
	wx, wy := gv.Viewport().ToWorld(x+15, y+25)
	if !near(updates[0]["x"].(float64), wx) || !near(updates[0]["y"].(float64), wy) {
		t.Errorf("update carried (%v, %v), want (%v, %v)", updates[0]["x"], updates[0]["y"], wx, wy)
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(nil)
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger enabled")
	}
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	newView(t, row(t, "a"))
	if !strings.Contains(buf.String(), "graphview: created") {
		t.Errorf("package logger not used: %q", buf.String())
	}
}
