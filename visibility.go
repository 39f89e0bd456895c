package graphview

import (
	"github.com/gogpu/graphview/graph"
	"github.com/gogpu/graphview/internal/view"
	"github.com/gogpu/graphview/scene"
)

// updateVisibility culls every leaf element against the screen, then
// gates node details by the LOD of the current zoom.
func (gv *GraphView) updateVisibility() {
	screen := scene.RectXYWH(0, 0, gv.viewport.ScreenWidth, gv.viewport.ScreenHeight)
	culled := 0
	for _, layer := range gv.layers() {
		layer.Walk(func(n *scene.Node) bool {
			if n.Kind() == scene.KindContainer {
				return true
			}
			n.Visible = n.Bounds().Intersects(screen)
			if !n.Visible {
				culled++
			}
			return true
		})
	}

	lod := view.LOD(gv.viewport.Scale())
	for _, nv := range gv.nodes {
		nv.UpdateVisibility(lod)
	}
	for _, e := range gv.edges {
		e.UpdateVisibility(lod)
	}
	gv.visibilityDue = false
	gv.log.Debug("graphview: visibility updated",
		"scale", gv.viewport.Scale(),
		"lod", lod,
		"culled", culled)
}

// LOD returns the level of detail of the current zoom.
func (gv *GraphView) LOD() int { return view.LOD(gv.viewport.Scale()) }

// ResetView centers the viewport on the graph and zooms to fit every node
// with WorldPadding around it, never zooming in past MaxFitScale.
func (gv *GraphView) ResetView() {
	if gv.destroyed {
		return
	}
	bounds := scene.EmptyRect()
	n := 0
	gv.graph.ForEachNode(func(key string, attrs graph.Attributes) {
		x, y, err := graph.PositionOf(key, attrs)
		if err != nil {
			return
		}
		bounds = bounds.UnionPoint(x, y)
		n++
	})
	if n == 0 {
		bounds = scene.Rect{}
	}

	// A single node or a row of nodes has degenerate bounds, so measure
	// the extents directly rather than through Width and Height.
	bw, bh := bounds.MaxX-bounds.MinX, bounds.MaxY-bounds.MinY
	w, h := bw+2*WorldPadding, bh+2*WorldPadding
	cx, cy := bounds.MinX+bw/2, bounds.MinY+bh/2

	vp := gv.viewport
	vp.WorldWidth, vp.WorldHeight = w, h
	vp.Fit(true, w, h)
	if vp.Scale() > MaxFitScale {
		vp.SetZoom(MaxFitScale, true)
	}
	vp.MoveCenter(cx, cy)
}

// ZoomIn narrows the visible world by a tenth of the world width.
func (gv *GraphView) ZoomIn() {
	if gv.destroyed {
		return
	}
	gv.viewport.Zoom(-gv.viewport.WorldWidth/10, true)
}

// ZoomOut widens the visible world by a tenth of the world width.
func (gv *GraphView) ZoomOut() {
	if gv.destroyed {
		return
	}
	gv.viewport.Zoom(gv.viewport.WorldWidth/10, true)
}
