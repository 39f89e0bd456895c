package view

import (
	"math"

	"github.com/gogpu/graphview/internal/emitter"
	"github.com/gogpu/graphview/scene"
	"github.com/gogpu/graphview/style"
)

// EdgeLine is the name of an edge's line sprite.
const EdgeLine = "edge-line"

// minHitWidth keeps hairline edges hoverable.
const minHitWidth = 4

// Geometry places an edge line: centered at (X, Y), rotated by Rotation
// radians, Length long.
type Geometry struct {
	X, Y     float64
	Rotation float64
	Length   float64
}

// EdgeGeometry computes the line placement between two node centers.
func EdgeGeometry(sx, sy, tx, ty float64) Geometry {
	dx, dy := tx-sx, ty-sy
	return Geometry{
		X:        (sx + tx) / 2,
		Y:        (sy + ty) / 2,
		Rotation: math.Atan2(dy, dx),
		Length:   math.Hypot(dx, dy),
	}
}

// EdgeView is the scene representation of one graph edge.
type EdgeView struct {
	Key     string
	Hovered bool

	// Graphics is the edge container; it is the hit area.
	Graphics Slot

	Events emitter.Emitter[PointerEvent]

	line  *scene.Node
	geom  Geometry
	width float64
}

// NewEdgeView builds the scene elements for edge key.
func NewEdgeView(key string) *EdgeView {
	v := &EdgeView{Key: key}

	gfx := scene.NewContainer("edge-graphics")
	gfx.Interactive = true
	v.line = scene.NewSprite(EdgeLine, scene.White)
	v.line.SetAnchor(0.5, 0.5)
	v.line.ScaleX, v.line.ScaleY = 0, 0
	gfx.AddChild(v.line)
	v.Graphics = newSlot(gfx)

	for _, t := range forwarded {
		gfx.On(t, func(ev scene.PointerEvent) {
			v.Events.Emit(PointerEvent{Type: t, Key: v.Key, Pointer: ev})
		})
	}
	return v
}

// UpdatePosition places the line between source and target centers.
func (v *EdgeView) UpdatePosition(sx, sy, tx, ty float64) {
	v.geom = EdgeGeometry(sx, sy, tx, ty)
	v.Graphics.Element.SetPosition(v.geom.X, v.geom.Y)
	v.line.Rotation = v.geom.Rotation
	v.line.ScaleX = v.geom.Length
	v.updateHitArea()
}

// Geometry returns the last placement.
func (v *EdgeView) Geometry() Geometry { return v.geom }

// UpdateStyle applies width and color. Color errors are returned before
// anything changes.
func (v *EdgeView) UpdateStyle(st style.EdgeStyle) error {
	t, err := parseTint("edge.color", st.Color)
	if err != nil {
		return err
	}
	v.width = st.Width
	v.line.ScaleY = st.Width
	t.apply(v.line)
	v.updateHitArea()
	return nil
}

func (v *EdgeView) updateHitArea() {
	half := v.geom.Length / 2
	cos, sin := math.Cos(v.geom.Rotation), math.Sin(v.geom.Rotation)
	v.Graphics.Element.HitArea = scene.HitSegment{
		X1:    -half * cos,
		Y1:    -half * sin,
		X2:    half * cos,
		Y2:    half * sin,
		Width: math.Max(v.width, minHitWidth),
	}
}

// UpdateVisibility leaves the line to culling; edges have no LOD-gated
// parts.
func (v *EdgeView) UpdateVisibility(lod int) {}

// Elements returns the leaf sprites.
func (v *EdgeView) Elements() []*scene.Node { return []*scene.Node{v.line} }

// Line returns the line sprite.
func (v *EdgeView) Line() *scene.Node { return v.line }

// Destroy removes the view's elements from the scene.
func (v *EdgeView) Destroy() {
	v.Events.Clear()
	v.Graphics.destroy()
}
