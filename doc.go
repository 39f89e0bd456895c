// Package graphview renders an interactive node-link view of an
// attributed graph onto a gg drawing context.
//
// A GraphView subscribes to a Graph and keeps one view object per node
// and edge in sync with it. Nodes are circles with a border, an icon and
// a label; edges are straight lines. Every visual property comes from a
// layered style definition (built-in defaults, the author style, and a
// hover style while the pointer is over an entity) that may read entity
// attributes. Rasterized shapes and text are white textures shared
// through a texture cache and colored by tint, so restyling never
// re-rasterizes for a color change.
//
// # Event loop
//
// A GraphView is not safe for concurrent use. The host feeds device input
// through HandlePointer, calls Frame once per display refresh and draws
// the canvas when Frame reports a new frame:
//
//	c := canvas.NewOffscreen(800, 600)
//	gv, err := graphview.New(c, g, graphview.WithHoverStyle(hover))
//	if err != nil {
//	    return err
//	}
//	defer gv.Destroy()
//
//	for ev := range input {
//	    gv.HandlePointer(ev)
//	    gv.Frame(time.Since(last))
//	}
//
// Graph mutations, hover changes and viewport movement only request a
// render; Frame draws at most once however many changes happened.
//
// # Layers
//
// The scene has six layers under the viewport, back to front: edges,
// front edges, nodes, node labels, front nodes and front node labels.
// Hovered or dragged entities move to the front pair and leave a
// placeholder behind, so they return to their original draw order.
//
// # Level of detail
//
// When the viewport comes to rest, elements outside the screen are
// culled and node details are gated by zoom: borders from scale 0.1,
// icons from 0.2 and labels from 0.4.
package graphview
