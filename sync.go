package graphview

import (
	"errors"
	"fmt"

	"github.com/gogpu/graphview/graph"
	"github.com/gogpu/graphview/internal/view"
	"github.com/gogpu/graphview/style"
)

func (gv *GraphView) onGraphEvent(ev graph.Event) {
	if gv.destroyed {
		return
	}
	switch ev.Type {
	case graph.NodeAdded:
		gv.report("graphview: node added", gv.createNode(ev.Key, ev.Attributes))
	case graph.EdgeAdded:
		gv.report("graphview: edge added", gv.createEdge(ev.Key, ev.Attributes, ev.Source, ev.Target))
	case graph.NodeDropped:
		gv.dropNode(ev.Key)
	case graph.EdgeDropped:
		gv.dropEdge(ev.Key)
	case graph.Cleared:
		gv.dropEdges()
		gv.dropNodes()
	case graph.EdgesCleared:
		gv.dropEdges()
	case graph.NodeAttributesUpdated:
		gv.report("graphview: node updated", gv.updateNode(ev.Key, ev.Attributes))
	case graph.EdgeAttributesUpdated:
		gv.report("graphview: edge updated", gv.updateEdgeByKey(ev.Key, ev.Attributes))
	case graph.EachNodeAttributesUpdated:
		gv.graph.ForEachNode(func(key string, attrs graph.Attributes) {
			gv.report("graphview: node updated", gv.updateNodeOnly(key, attrs))
		})
		gv.updateAllEdges()
	case graph.EachEdgeAttributesUpdated:
		gv.updateAllEdges()
	default:
		return
	}
	gv.visibilityDue = true
	gv.requestRender()
}

func (gv *GraphView) definitions(hovered bool) []style.Definition {
	if hovered {
		return []style.Definition{gv.defaults, gv.opts.style, gv.opts.hoverStyle}
	}
	return []style.Definition{gv.defaults, gv.opts.style}
}

// createNode adds the view for a new node. The view exists even when
// positioning or styling fails.
func (gv *GraphView) createNode(key string, attrs graph.Attributes) error {
	if _, ok := gv.nodes[key]; ok {
		return gv.updateNode(key, attrs)
	}
	nv := view.NewNodeView(key, gv.rasterizer)
	nv.Events.On(func(ev view.PointerEvent) { gv.onNodePointer(nv, ev) })
	gv.nodeLayer.AddChild(nv.Graphics.Element)
	gv.nodeLabelLayer.AddChild(nv.Label.Element)
	gv.nodes[key] = nv
	gv.log.Debug("graphview: node view created", "key", key)
	return gv.applyNode(nv, attrs)
}

func (gv *GraphView) applyNode(nv *view.NodeView, attrs graph.Attributes) error {
	var errs []error
	if x, y, err := graph.PositionOf(nv.Key, attrs); err != nil {
		errs = append(errs, fmt.Errorf("graphview: %w", err))
	} else {
		nv.UpdatePosition(x, y)
	}
	if err := gv.styleNode(nv, attrs); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (gv *GraphView) styleNode(nv *view.NodeView, attrs graph.Attributes) error {
	st, err := style.Resolve(gv.definitions(nv.Hovered), attrs)
	if err != nil {
		return fmt.Errorf("graphview: node %q: %w", nv.Key, err)
	}
	if err := nv.UpdateStyle(st.Node, gv.cache); err != nil {
		return fmt.Errorf("graphview: node %q: %w", nv.Key, err)
	}
	return nil
}

// updateNode restyles and moves a node and every edge touching it.
func (gv *GraphView) updateNode(key string, attrs graph.Attributes) error {
	errs := []error{gv.updateNodeOnly(key, attrs)}
	for _, ek := range gv.graph.EdgesOf(key) {
		attrs, ok := gv.graph.EdgeAttributes(ek)
		if !ok {
			continue
		}
		errs = append(errs, gv.updateEdgeByKey(ek, attrs))
	}
	return errors.Join(errs...)
}

func (gv *GraphView) updateNodeOnly(key string, attrs graph.Attributes) error {
	nv, ok := gv.nodes[key]
	if !ok {
		return gv.createNode(key, attrs)
	}
	return gv.applyNode(nv, attrs)
}

func (gv *GraphView) createEdge(key string, attrs graph.Attributes, source, target string) error {
	if _, ok := gv.edges[key]; ok {
		return gv.updateEdgeByKey(key, attrs)
	}
	ev := view.NewEdgeView(key)
	ev.Events.On(func(pe view.PointerEvent) { gv.onEdgePointer(ev, pe) })
	gv.edgeLayer.AddChild(ev.Graphics.Element)
	gv.edges[key] = ev
	gv.log.Debug("graphview: edge view created", "key", key, "source", source, "target", target)
	return gv.applyEdge(ev, attrs, source, target)
}

func (gv *GraphView) updateEdgeByKey(key string, attrs graph.Attributes) error {
	source, target, ok := gv.graph.EdgeExtremities(key)
	if !ok {
		return fmt.Errorf("graphview: %w: edge %q", graph.ErrNotFound, key)
	}
	ev, ok := gv.edges[key]
	if !ok {
		return gv.createEdge(key, attrs, source, target)
	}
	return gv.applyEdge(ev, attrs, source, target)
}

func (gv *GraphView) updateAllEdges() {
	gv.graph.ForEachEdge(func(key string, attrs graph.Attributes, source, target string) {
		ev, ok := gv.edges[key]
		if !ok {
			gv.report("graphview: edge updated", gv.createEdge(key, attrs, source, target))
			return
		}
		gv.report("graphview: edge updated", gv.applyEdge(ev, attrs, source, target))
	})
}

// applyEdge places an edge between the current positions of its
// endpoints and restyles it.
func (gv *GraphView) applyEdge(ev *view.EdgeView, attrs graph.Attributes, source, target string) error {
	var errs []error
	sx, sy, err1 := gv.nodePosition(source)
	tx, ty, err2 := gv.nodePosition(target)
	if err := errors.Join(err1, err2); err != nil {
		errs = append(errs, fmt.Errorf("graphview: edge %q: %w", ev.Key, err))
	} else {
		ev.UpdatePosition(sx, sy, tx, ty)
	}

	st, err := style.Resolve(gv.definitions(ev.Hovered), attrs)
	if err != nil {
		errs = append(errs, fmt.Errorf("graphview: edge %q: %w", ev.Key, err))
	} else if err := ev.UpdateStyle(st.Edge); err != nil {
		errs = append(errs, fmt.Errorf("graphview: edge %q: %w", ev.Key, err))
	}
	return errors.Join(errs...)
}

func (gv *GraphView) nodePosition(key string) (x, y float64, err error) {
	attrs, ok := gv.graph.NodeAttributes(key)
	if !ok {
		return 0, 0, fmt.Errorf("%w: node %q", graph.ErrNotFound, key)
	}
	return graph.PositionOf(key, attrs)
}

func (gv *GraphView) dropNode(key string) {
	nv, ok := gv.nodes[key]
	if !ok {
		return
	}
	if gv.mousedownNode == key {
		gv.endPress(-1)
	}
	gv.interaction.Forget(nv.Graphics.Element)
	nv.Destroy()
	delete(gv.nodes, key)
	gv.log.Debug("graphview: node view dropped", "key", key)
}

func (gv *GraphView) dropEdge(key string) {
	ev, ok := gv.edges[key]
	if !ok {
		return
	}
	if gv.mousedownEdge == key {
		gv.mousedownEdge = ""
	}
	gv.interaction.Forget(ev.Graphics.Element)
	ev.Destroy()
	delete(gv.edges, key)
	gv.log.Debug("graphview: edge view dropped", "key", key)
}

func (gv *GraphView) dropNodes() {
	for key := range gv.nodes {
		gv.dropNode(key)
	}
}

func (gv *GraphView) dropEdges() {
	for key := range gv.edges {
		gv.dropEdge(key)
	}
}
