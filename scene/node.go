package scene

import (
	"fmt"
	"slices"

	"github.com/gogpu/gg"
	"github.com/gogpu/graphview/internal/emitter"
)

// Kind is the kind of content a Node draws.
type Kind uint8

// Node kinds.
const (
	// KindContainer draws nothing itself.
	KindContainer Kind = iota
	// KindSprite draws a Texture.
	KindSprite
	// KindGraphics draws through a DrawFunc.
	KindGraphics
)

// DrawFunc draws a graphics fragment in the node's local coordinates.
// The context transform is already set up when it is called.
type DrawFunc func(dc *gg.Context)

// Node is an element of the scene tree.
//
// Transform fields are plain values and take effect on the next render or
// bounds query; there is no dirty tracking to maintain.
type Node struct {
	Name string

	X, Y           float64
	Rotation       float64 // radians, clockwise on screen
	ScaleX, ScaleY float64

	// AnchorX and AnchorY position a sprite's texture relative to the node
	// origin, as a fraction of the texture size (0.5, 0.5 = centered).
	AnchorX, AnchorY float64

	Visible bool
	Alpha   float64

	// Tint multiplies the texture color of a sprite (0xRRGGBB).
	Tint uint32

	// Interactive nodes receive pointer events when HitArea is set.
	Interactive bool
	HitArea     HitShape

	kind      Kind
	texture   *Texture
	draw      DrawFunc
	bounds    Rect
	parent    *Node
	children  []*Node
	destroyed bool
	listeners [numPointerTypes]emitter.Emitter[PointerEvent]
}

func newNode(name string, kind Kind) *Node {
	return &Node{
		Name:    name,
		ScaleX:  1,
		ScaleY:  1,
		Visible: true,
		Alpha:   1,
		Tint:    0xffffff,
		kind:    kind,
	}
}

// NewContainer creates a group node with no visual output.
func NewContainer(name string) *Node {
	return newNode(name, KindContainer)
}

// NewSprite creates a node drawing tex. A nil texture draws nothing.
func NewSprite(name string, tex *Texture) *Node {
	n := newNode(name, KindSprite)
	n.texture = tex
	return n
}

// NewGraphics creates a node drawing through draw. bounds are the local
// bounds of everything draw paints; they drive culling and texture
// generation.
func NewGraphics(name string, bounds Rect, draw DrawFunc) *Node {
	n := newNode(name, KindGraphics)
	n.bounds = bounds
	n.draw = draw
	return n
}

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Texture returns the sprite texture.
func (n *Node) Texture() *Texture { return n.texture }

// SetTexture replaces the sprite texture. The previous texture is not
// destroyed; textures are owned by whoever created them.
func (n *Node) SetTexture(t *Texture) { n.texture = t }

// SetPosition sets X and Y.
func (n *Node) SetPosition(x, y float64) { n.X, n.Y = x, y }

// SetScale sets a uniform scale.
func (n *Node) SetScale(s float64) { n.ScaleX, n.ScaleY = s, s }

// SetAnchor sets AnchorX and AnchorY.
func (n *Node) SetAnchor(x, y float64) { n.AnchorX, n.AnchorY = x, y }

// Parent returns the parent node or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child list. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return len(n.children) }

// ChildAt returns the child at index i.
func (n *Node) ChildAt(i int) *Node { return n.children[i] }

// Destroyed reports whether Destroy was called.
func (n *Node) Destroyed() bool { return n.destroyed }

// AddChild appends children, detaching each from its previous parent.
func (n *Node) AddChild(children ...*Node) {
	for _, c := range children {
		c.RemoveFromParent()
		c.parent = n
		n.children = append(n.children, c)
	}
}

// AddChildAt inserts child at index, which must be in [0, NumChildren()].
func (n *Node) AddChildAt(child *Node, index int) {
	if child.parent == n {
		n.RemoveChild(child)
	} else {
		child.RemoveFromParent()
	}
	if index < 0 || index > len(n.children) {
		panic(fmt.Sprintf("scene: child index %d out of range [0,%d]", index, len(n.children)))
	}
	child.parent = n
	n.children = slices.Insert(n.children, index, child)
}

// ChildIndex returns the index of child, or -1.
func (n *Node) ChildIndex(child *Node) int {
	return slices.Index(n.children, child)
}

// RemoveChild removes child and reports whether it was present.
func (n *Node) RemoveChild(child *Node) bool {
	i := n.ChildIndex(child)
	if i < 0 {
		return false
	}
	n.RemoveChildAt(i)
	return true
}

// RemoveChildAt removes and returns the child at index i.
func (n *Node) RemoveChildAt(i int) *Node {
	c := n.children[i]
	n.children = slices.Delete(n.children, i, i+1)
	c.parent = nil
	return c
}

// RemoveFromParent detaches n from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// ChildByName returns the first direct child with the given name.
func (n *Node) ChildByName(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Walk visits n and its descendants depth-first in draw order.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Destroy detaches n, destroys its subtree and drops all listeners.
// Textures are left alone.
func (n *Node) Destroy() {
	if n.destroyed {
		return
	}
	n.RemoveFromParent()
	for _, c := range slices.Clone(n.children) {
		c.Destroy()
	}
	n.children = nil
	for i := range n.listeners {
		n.listeners[i].Clear()
	}
	n.texture = nil
	n.draw = nil
	n.destroyed = true
}

// On registers a pointer listener and returns a function removing it.
func (n *Node) On(t PointerType, fn func(PointerEvent)) (off func()) {
	return n.listeners[t].On(fn)
}

// Emit dispatches ev to the node's listeners for ev.Type.
func (n *Node) Emit(ev PointerEvent) {
	if int(ev.Type) >= len(n.listeners) {
		return
	}
	n.listeners[ev.Type].Emit(ev)
}

// LocalTransform returns translate * rotate * scale.
func (n *Node) LocalTransform() gg.Matrix {
	m := gg.Translate(n.X, n.Y)
	if n.Rotation != 0 {
		m = m.Multiply(gg.Rotate(n.Rotation))
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		m = m.Multiply(gg.Scale(n.ScaleX, n.ScaleY))
	}
	return m
}

// WorldTransform returns the transform from n's local space to the root's
// space.
func (n *Node) WorldTransform() gg.Matrix {
	m := n.LocalTransform()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalTransform().Multiply(m)
	}
	return m
}

// WorldVisible reports whether n and all its ancestors are visible.
func (n *Node) WorldVisible() bool {
	for p := n; p != nil; p = p.parent {
		if !p.Visible {
			return false
		}
	}
	return true
}

// WorldAlpha returns the product of the alpha of n and its ancestors.
func (n *Node) WorldAlpha() float64 {
	a := 1.0
	for p := n; p != nil; p = p.parent {
		a *= p.Alpha
	}
	return a
}

// ContentBounds returns the bounds of what n itself draws, in local space.
func (n *Node) ContentBounds() Rect {
	switch n.kind {
	case KindSprite:
		if n.texture == nil || n.texture.IsEmpty() {
			return EmptyRect()
		}
		w, h := n.texture.Width(), n.texture.Height()
		return RectXYWH(-n.AnchorX*w, -n.AnchorY*h, w, h)
	case KindGraphics:
		return n.bounds
	default:
		return EmptyRect()
	}
}

// LocalBounds returns the bounds of n's subtree in n's local space.
// Invisible descendants are ignored; n's own visibility is not.
func (n *Node) LocalBounds() Rect {
	r := n.ContentBounds()
	for _, c := range n.children {
		if !c.Visible {
			continue
		}
		r = r.Union(c.LocalBounds().Transform(c.LocalTransform()))
	}
	return r
}

// Bounds returns the bounds of n's subtree in root space.
func (n *Node) Bounds() Rect {
	return n.LocalBounds().Transform(n.WorldTransform())
}

// HitTestLocal reports whether the root-space point hits n's hit area.
func (n *Node) HitTestLocal(x, y float64) bool {
	if n.HitArea == nil {
		return false
	}
	p := n.WorldTransform().Invert().TransformPoint(gg.Pt(x, y))
	return n.HitArea.Contains(p.X, p.Y)
}
