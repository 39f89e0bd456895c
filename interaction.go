package graphview

import (
	"fmt"
	"time"

	"github.com/gogpu/graphview/graph"
	"github.com/gogpu/graphview/internal/view"
	"github.com/gogpu/graphview/scene"
)

// HandlePointer feeds one device pointer event to the view. Coordinates
// are logical canvas pixels and may lie outside the canvas: a drag keeps
// following the pointer and a release anywhere ends it.
func (gv *GraphView) HandlePointer(ev scene.PointerEvent) {
	if gv.destroyed {
		return
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}

	gv.interaction.Dispatch(ev)

	switch ev.Type {
	case scene.PointerMove:
		gv.docMove.Emit(ev)
	case scene.PointerUp, scene.PointerUpOutside, scene.PointerCancel:
		gv.docUp.Emit(ev)
	}

	if gv.viewport.HandlePointer(ev) {
		gv.requestRender()
	}
}

func (gv *GraphView) onNodePointer(nv *view.NodeView, ev view.PointerEvent) {
	switch ev.Type {
	case scene.PointerOver:
		if gv.mousedownNode == "" {
			gv.hoverNode(nv)
		}
	case scene.PointerOut:
		if gv.mousedownNode == "" {
			gv.unhoverNode(nv)
		}
	case scene.PointerDown:
		gv.beginPress(ev.Pointer.ID)
		gv.mousedownNode = nv.Key
		gv.beginDrag()
	}

	gv.emitPointer(ev, 0)
	if ev.Type == scene.PointerUp && gv.mousedownNode == nv.Key {
		gv.events.emit(Event{Type: NodeClick, Key: nv.Key, Pointer: ev.Pointer})
	}
}

func (gv *GraphView) onEdgePointer(e *view.EdgeView, ev view.PointerEvent) {
	switch ev.Type {
	case scene.PointerOver:
		if gv.mousedownNode == "" {
			gv.hoverEdge(e)
		}
	case scene.PointerOut:
		if gv.mousedownNode == "" {
			gv.unhoverEdge(e)
		}
	case scene.PointerDown:
		gv.beginPress(ev.Pointer.ID)
		gv.mousedownEdge = e.Key
	}

	gv.emitPointer(ev, 1)
	if ev.Type == scene.PointerUp && gv.mousedownEdge == e.Key {
		gv.events.emit(Event{Type: EdgeClick, Key: e.Key, Pointer: ev.Pointer})
	}
}

// emitPointer re-emits a view event; kind 0 is node, 1 is edge.
func (gv *GraphView) emitPointer(ev view.PointerEvent, kind int) {
	types, ok := pointerEvents[ev.Type]
	if !ok {
		return
	}
	gv.events.emit(Event{Type: types[kind], Key: ev.Key, Pointer: ev.Pointer})
}

// beginPress attaches the document-level release listener. Any earlier
// press is ended first.
func (gv *GraphView) beginPress(id int) {
	gv.endPress(id)
	gv.pressOff = append(gv.pressOff, gv.docUp.On(func(ev scene.PointerEvent) {
		gv.endPress(ev.ID)
	}))
}

// beginDrag pauses viewport panning and follows the pointer with the
// pressed node.
func (gv *GraphView) beginDrag() {
	gv.viewport.Pause()
	gv.pressOff = append(gv.pressOff, gv.docMove.On(gv.onDocumentMove))
	gv.log.Debug("graphview: drag started", "key", gv.mousedownNode)
}

func (gv *GraphView) onDocumentMove(ev scene.PointerEvent) {
	key := gv.mousedownNode
	if key == "" {
		return
	}
	x, y := gv.viewport.ToWorld(ev.X, ev.Y)
	if err := gv.graph.MergeNodeAttributes(key, graph.Attributes{"x": x, "y": y}); err != nil {
		gv.report("graphview: drag", fmt.Errorf("node %q: %w", key, err))
	}
}

// endPress detaches the document listeners and resumes the viewport. id
// is the pointer that was released, or -1 when the press is aborted.
func (gv *GraphView) endPress(id int) {
	for _, off := range gv.pressOff {
		off()
	}
	gv.pressOff = nil
	gv.mousedownEdge = ""

	key := gv.mousedownNode
	if key == "" {
		return
	}
	gv.mousedownNode = ""
	gv.viewport.Resume()
	gv.log.Debug("graphview: drag ended", "key", key)

	// Hover changes were suppressed during the drag; catch up with
	// where the pointer ended.
	if id < 0 {
		return
	}
	under := gv.interaction.Hovered(id)
	if nv, ok := gv.nodes[key]; ok && nv.Hovered && under != nv.Graphics.Element {
		gv.unhoverNode(nv)
	}
	if under == nil {
		return
	}
	for _, nv := range gv.nodes {
		if nv.Graphics.Element == under {
			gv.hoverNode(nv)
			return
		}
	}
	for _, e := range gv.edges {
		if e.Graphics.Element == under {
			gv.hoverEdge(e)
			return
		}
	}
}

func (gv *GraphView) hoverNode(nv *view.NodeView) {
	if nv.Hovered {
		return
	}
	nv.Hovered = true
	gv.restyleNode(nv)
	nv.Graphics.Promote(gv.nodeLayer, gv.frontNodeLayer)
	nv.Label.Promote(gv.nodeLabelLayer, gv.frontNodeLabelLayer)
	gv.requestRender()
}

func (gv *GraphView) unhoverNode(nv *view.NodeView) {
	if !nv.Hovered {
		return
	}
	nv.Hovered = false
	gv.restyleNode(nv)
	nv.Graphics.Demote(gv.nodeLayer)
	nv.Label.Demote(gv.nodeLabelLayer)
	gv.requestRender()
}

func (gv *GraphView) restyleNode(nv *view.NodeView) {
	attrs, ok := gv.graph.NodeAttributes(nv.Key)
	if !ok {
		return
	}
	gv.report("graphview: hover", gv.styleNode(nv, attrs))
	// New textures may be bound to leaves culled while empty.
	gv.visibilityDue = true
}

func (gv *GraphView) hoverEdge(e *view.EdgeView) {
	if e.Hovered {
		return
	}
	e.Hovered = true
	gv.restyleEdge(e)
	e.Graphics.Promote(gv.edgeLayer, gv.frontEdgeLayer)
	gv.requestRender()
}

func (gv *GraphView) unhoverEdge(e *view.EdgeView) {
	if !e.Hovered {
		return
	}
	e.Hovered = false
	gv.restyleEdge(e)
	e.Graphics.Demote(gv.edgeLayer)
	gv.requestRender()
}

func (gv *GraphView) restyleEdge(e *view.EdgeView) {
	attrs, ok := gv.graph.EdgeAttributes(e.Key)
	if !ok {
		return
	}
	gv.report("graphview: hover", gv.updateEdgeByKey(e.Key, attrs))
	gv.visibilityDue = true
}

// HoverNode puts node key in the hovered state as if the pointer had
// entered it. It reports false for unknown keys.
func (gv *GraphView) HoverNode(key string) bool {
	nv, ok := gv.nodes[key]
	if !ok || gv.destroyed {
		return false
	}
	gv.hoverNode(nv)
	return true
}

// UnhoverNode reverses HoverNode.
func (gv *GraphView) UnhoverNode(key string) bool {
	nv, ok := gv.nodes[key]
	if !ok || gv.destroyed {
		return false
	}
	gv.unhoverNode(nv)
	return true
}

// HoverEdge puts edge key in the hovered state.
func (gv *GraphView) HoverEdge(key string) bool {
	e, ok := gv.edges[key]
	if !ok || gv.destroyed {
		return false
	}
	gv.hoverEdge(e)
	return true
}

// UnhoverEdge reverses HoverEdge.
func (gv *GraphView) UnhoverEdge(key string) bool {
	e, ok := gv.edges[key]
	if !ok || gv.destroyed {
		return false
	}
	gv.unhoverEdge(e)
	return true
}
