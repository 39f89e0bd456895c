package graphview

import (
	"fmt"
	"image"
	"log/slog"
	"maps"
	"slices"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"github.com/gogpu/graphview/csscolor"
	"github.com/gogpu/graphview/graph"
	"github.com/gogpu/graphview/internal/emitter"
	"github.com/gogpu/graphview/internal/view"
	"github.com/gogpu/graphview/scene"
	"github.com/gogpu/graphview/style"
	"github.com/gogpu/graphview/text"
	"github.com/gogpu/graphview/texture"
)

// Graph is the attributed graph a GraphView renders. *graph.Graph
// implements it.
type Graph interface {
	ForEachNode(fn func(key string, attrs graph.Attributes))
	ForEachEdge(fn func(key string, attrs graph.Attributes, source, target string))
	NodeAttributes(key string) (graph.Attributes, bool)
	EdgeAttributes(key string) (graph.Attributes, bool)
	EdgeExtremities(key string) (source, target string, ok bool)
	EdgesOf(key string) []string
	MergeNodeAttributes(key string, attrs graph.Attributes) error
	Subscribe(fn func(graph.Event)) (unsubscribe func())
}

// Canvas is the display element a GraphView draws into. Size is in device
// pixels. MarkDirty is called after each drawn frame.
//
// *canvas.Offscreen, *canvas.Window and *ggcanvas.Canvas implement it.
type Canvas interface {
	Context() *gg.Context
	Size() (width, height int)
	MarkDirty()
}

// Layer names, back to front.
const (
	LayerEdges           = "edges"
	LayerFrontEdges      = "front-edges"
	LayerNodes           = "nodes"
	LayerNodeLabels      = "node-labels"
	LayerFrontNodes      = "front-nodes"
	LayerFrontNodeLabels = "front-node-labels"
)

// Viewport fit parameters.
const (
	WorldPadding = 100
	MaxFitScale  = 1
)

// GraphView is an interactive view of a Graph.
type GraphView struct {
	canvas     Canvas
	graph      Graph
	opts       options
	log        *slog.Logger
	background gg.RGBA
	defaults   style.Definition

	rasterizer  *text.Rasterizer
	cache       *texture.Cache
	stage       *scene.Node
	viewport    *scene.Viewport
	interaction *scene.Interaction

	edgeLayer           *scene.Node
	frontEdgeLayer      *scene.Node
	nodeLayer           *scene.Node
	nodeLabelLayer      *scene.Node
	frontNodeLayer      *scene.Node
	frontNodeLabelLayer *scene.Node

	nodes map[string]*view.NodeView
	edges map[string]*view.EdgeView

	events eventBus

	// Document-level listeners, attached only while a press is active.
	docMove emitter.Emitter[scene.PointerEvent]
	docUp   emitter.Emitter[scene.PointerEvent]

	mousedownNode string
	mousedownEdge string
	pressOff      []func()

	unsubscribe     func()
	viewportOff     []func()
	renderRequested bool
	visibilityDue   bool
	destroyed       bool
}

// New creates a view of g drawn into c and fits the viewport to the
// graph. Every initial entity is styled; the first style error is
// returned and nothing is kept.
func New(c Canvas, g Graph, opts ...Option) (*GraphView, error) {
	if c == nil || c.Context() == nil {
		return nil, ErrInvalidContainer
	}
	w, h := c.Size()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidContainer, w, h)
	}
	if g == nil {
		return nil, ErrNilGraph
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	rgb, alpha, err := csscolor.Parse(o.background)
	if err != nil {
		return nil, fmt.Errorf("graphview: background: %w", err)
	}

	gv := &GraphView{
		canvas:     c,
		graph:      g,
		opts:       o,
		log:        o.logger,
		background: csscolor.ToRGBA(rgb, alpha),
		defaults:   style.Defaults(),
		rasterizer: text.NewRasterizer(),
		cache:      texture.NewCache(o.resolution),
		nodes:      make(map[string]*view.NodeView),
		edges:      make(map[string]*view.EdgeView),
	}
	if gv.log == nil {
		gv.log = Logger()
	}

	if err := gv.loadResources(); err != nil {
		gv.cache.Destroy()
		return nil, err
	}
	gv.buildStage(w, h)

	var first error
	g.ForEachNode(func(key string, attrs graph.Attributes) {
		if err := gv.createNode(key, attrs); err != nil && first == nil {
			first = err
		}
	})
	g.ForEachEdge(func(key string, attrs graph.Attributes, source, target string) {
		if err := gv.createEdge(key, attrs, source, target); err != nil && first == nil {
			first = err
		}
	})
	if first != nil {
		gv.Destroy()
		return nil, first
	}
	gv.unsubscribe = g.Subscribe(gv.onGraphEvent)

	gv.ResetView()
	gv.log.Info("graphview: created",
		"nodes", len(gv.nodes),
		"edges", len(gv.edges),
		"width", w,
		"height", h,
		"resolution", o.resolution)
	return gv, nil
}

func (gv *GraphView) loadResources() error {
	for _, family := range slices.Sorted(maps.Keys(gv.opts.fonts)) {
		if err := gv.rasterizer.RegisterFont(family, gv.opts.fonts[family]); err != nil {
			return fmt.Errorf("graphview: font %q: %w", family, err)
		}
	}
	for _, bf := range gv.opts.bitmapFonts {
		if err := gv.rasterizer.RegisterBitmapFont(bf.Family, bf.Size, bf.Charset); err != nil {
			return fmt.Errorf("graphview: bitmap font %q: %w", bf.Family, err)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(gv.opts.textures)) {
		img := gv.opts.textures[name]
		_, err := gv.cache.Get(imageKey(name), func() (*scene.Node, error) {
			return scene.NewSprite(name, scene.NewTexture(toRGBA(img), 1)), nil
		})
		if err != nil {
			return fmt.Errorf("graphview: texture %q: %w", name, err)
		}
	}
	return nil
}

func imageKey(name string) string { return "image-" + name }

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, img, b, draw.Src, nil)
	return dst
}

func (gv *GraphView) buildStage(w, h int) {
	res := gv.opts.resolution
	sw, sh := float64(w)/res, float64(h)/res

	gv.viewport = scene.NewViewport(sw, sh, sw, sh)
	gv.stage = scene.NewContainer("stage")
	gv.stage.AddChild(gv.viewport.World)

	gv.edgeLayer = scene.NewContainer(LayerEdges)
	gv.frontEdgeLayer = scene.NewContainer(LayerFrontEdges)
	gv.nodeLayer = scene.NewContainer(LayerNodes)
	gv.nodeLabelLayer = scene.NewContainer(LayerNodeLabels)
	gv.frontNodeLayer = scene.NewContainer(LayerFrontNodes)
	gv.frontNodeLabelLayer = scene.NewContainer(LayerFrontNodeLabels)
	gv.viewport.World.AddChild(gv.layers()...)

	gv.interaction = scene.NewInteraction(gv.stage)

	idle := func(scene.ViewportEvent) {
		gv.visibilityDue = true
		gv.requestRender()
	}
	gv.viewportOff = []func(){
		gv.viewport.Moved.On(func(scene.ViewportEvent) { gv.requestRender() }),
		gv.viewport.MovedEnd.On(idle),
		gv.viewport.ZoomedEnd.On(idle),
	}
}

// layers returns the six layers back to front.
func (gv *GraphView) layers() []*scene.Node {
	return []*scene.Node{
		gv.edgeLayer,
		gv.frontEdgeLayer,
		gv.nodeLayer,
		gv.nodeLabelLayer,
		gv.frontNodeLayer,
		gv.frontNodeLabelLayer,
	}
}

// Layer returns a layer by name, or nil.
func (gv *GraphView) Layer(name string) *scene.Node {
	return gv.viewport.World.ChildByName(name)
}

// Viewport returns the pan/zoom camera.
func (gv *GraphView) Viewport() *scene.Viewport { return gv.viewport }

// Stage returns the scene root drawn onto the canvas.
func (gv *GraphView) Stage() *scene.Node { return gv.stage }

// Cache returns the texture cache.
func (gv *GraphView) Cache() *texture.Cache { return gv.cache }

// Rasterizer returns the text rasterizer with the registered fonts.
func (gv *GraphView) Rasterizer() *text.Rasterizer { return gv.rasterizer }

// Texture returns an image preloaded with WithTextures.
func (gv *GraphView) Texture(name string) (*scene.Texture, bool) {
	if gv.destroyed || !gv.cache.Has(imageKey(name)) {
		return nil, false
	}
	tex, err := gv.cache.Get(imageKey(name), nil)
	if err != nil {
		return nil, false
	}
	return tex, true
}

// NodeView returns the view object of node key.
func (gv *GraphView) NodeView(key string) (*view.NodeView, bool) {
	v, ok := gv.nodes[key]
	return v, ok
}

// EdgeView returns the view object of edge key.
func (gv *GraphView) EdgeView(key string) (*view.EdgeView, bool) {
	v, ok := gv.edges[key]
	return v, ok
}

// Dragging returns the key of the node being dragged, or "".
func (gv *GraphView) Dragging() string { return gv.mousedownNode }

// Destroyed reports whether Destroy was called.
func (gv *GraphView) Destroyed() bool { return gv.destroyed }

// Destroy releases the scene, the texture cache and every listener. The
// canvas stays owned by the caller. Calling Destroy twice is a no-op.
func (gv *GraphView) Destroy() {
	if gv.destroyed {
		return
	}
	gv.endPress(-1)
	if gv.unsubscribe != nil {
		gv.unsubscribe()
		gv.unsubscribe = nil
	}
	for _, off := range gv.viewportOff {
		off()
	}
	gv.viewportOff = nil

	for key, v := range gv.edges {
		v.Destroy()
		delete(gv.edges, key)
	}
	for key, v := range gv.nodes {
		v.Destroy()
		delete(gv.nodes, key)
	}
	if gv.stage != nil {
		gv.stage.Destroy()
	}
	gv.cache.Destroy()
	gv.events.clear()
	gv.destroyed = true
	gv.log.Info("graphview: destroyed")
}

func (gv *GraphView) requestRender() { gv.renderRequested = true }

func (gv *GraphView) report(msg string, err error) {
	if err != nil {
		gv.log.Error(msg, "err", err)
	}
}
