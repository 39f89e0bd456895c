package view

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"

	"github.com/gogpu/graphview/csscolor"
	"github.com/gogpu/graphview/internal/emitter"
	"github.com/gogpu/graphview/scene"
	"github.com/gogpu/graphview/style"
	"github.com/gogpu/graphview/text"
	"github.com/gogpu/graphview/texture"
)

// Minimum LOD index at which node sub-elements are shown.
const (
	BorderLOD = 1
	IconLOD   = 2
	LabelLOD  = 3
)

// Element names.
const (
	NodeCircle          = "node-circle"
	NodeBorder          = "node-border"
	NodeIcon            = "node-icon"
	NodeLabelBackground = "node-label-background"
	NodeLabelText       = "node-label-text"
)

// NodeView is the scene representation of one graph node.
type NodeView struct {
	Key     string
	Hovered bool

	// Graphics holds circle, border and icon; it is the hit area.
	Graphics Slot
	// Label holds the label background and text.
	Label Slot

	Events emitter.Emitter[PointerEvent]

	circle, border, icon *scene.Node
	labelBg, labelText   *scene.Node
	rasterizer           *text.Rasterizer
}

// NewNodeView builds the scene elements for node key. Nothing is drawn
// until UpdateStyle binds textures.
func NewNodeView(key string, r *text.Rasterizer) *NodeView {
	v := &NodeView{Key: key, rasterizer: r}

	gfx := scene.NewContainer("node-graphics")
	gfx.Interactive = true
	gfx.HitArea = scene.HitCircle{}
	v.circle = centered(NodeCircle)
	v.border = centered(NodeBorder)
	v.icon = centered(NodeIcon)
	gfx.AddChild(v.circle, v.border, v.icon)

	lbl := scene.NewContainer("node-label")
	v.labelBg = scene.NewSprite(NodeLabelBackground, scene.White)
	v.labelBg.SetAnchor(0.5, 0)
	v.labelText = scene.NewSprite(NodeLabelText, nil)
	v.labelText.SetAnchor(0.5, 0)
	lbl.AddChild(v.labelBg, v.labelText)

	v.Graphics = newSlot(gfx)
	v.Label = newSlot(lbl)

	for _, t := range forwarded {
		gfx.On(t, func(ev scene.PointerEvent) {
			v.Events.Emit(PointerEvent{Type: t, Key: v.Key, Pointer: ev})
		})
	}
	return v
}

func centered(name string) *scene.Node {
	s := scene.NewSprite(name, nil)
	s.SetAnchor(0.5, 0.5)
	return s
}

// UpdatePosition moves the node to world (x, y).
func (v *NodeView) UpdatePosition(x, y float64) {
	v.Graphics.Element.SetPosition(x, y)
	v.Label.Element.SetPosition(x, y)
}

type tint struct {
	rgb   uint32
	alpha float64
}

func parseTint(field, s string) (tint, error) {
	rgb, a, err := csscolor.Parse(s)
	if err != nil {
		return tint{}, fmt.Errorf("%s: %w", field, err)
	}
	return tint{rgb: rgb, alpha: a}, nil
}

func (t tint) apply(n *scene.Node) {
	n.Tint = t.rgb
	n.Alpha = t.alpha
}

// UpdateStyle binds textures for st through cache and applies its
// colors. Texture keys depend on geometry and text only, so a color
// change reuses cached textures.
//
// Color and font errors are returned before anything changes. An
// unsupported text mode is a programming error and panics.
func (v *NodeView) UpdateStyle(st style.NodeStyle, cache *texture.Cache) error {
	colors := [...]struct {
		field string
		value string
	}{
		{"node.color", st.Color},
		{"node.border.color", st.Border.Color},
		{"node.icon.color", st.Icon.Color},
		{"node.label.color", st.Label.Color},
		{"node.label.backgroundColor", st.Label.BackgroundColor},
	}
	var tints [len(colors)]tint
	for i, c := range colors {
		t, err := parseTint(c.field, c.value)
		if err != nil {
			return err
		}
		tints[i] = t
	}

	circleTex, err := cache.Get(CircleKey(st.Size), circleBuilder(st.Size))
	if err != nil {
		return err
	}
	borderTex, err := cache.Get(BorderKey(st.Size, st.Border.Width), borderBuilder(st.Size, st.Border.Width))
	if err != nil {
		return err
	}
	iconSpec := st.IconSpec()
	iconTex, err := cache.Get(TextKey(NodeIcon, iconSpec), v.textBuilder(iconSpec))
	if err != nil {
		return checkText(err)
	}
	labelSpec := st.LabelSpec()
	labelTex, err := cache.Get(TextKey(NodeLabelText, labelSpec), v.textBuilder(labelSpec))
	if err != nil {
		return checkText(err)
	}

	outer := st.Size + st.Border.Width
	v.Graphics.Element.HitArea = scene.HitCircle{Radius: outer}

	v.circle.SetTexture(circleTex)
	tints[0].apply(v.circle)
	v.border.SetTexture(borderTex)
	tints[1].apply(v.border)
	v.icon.SetTexture(iconTex)
	tints[2].apply(v.icon)

	pad := st.Label.Padding
	v.labelText.SetTexture(labelTex)
	v.labelText.SetPosition(0, outer+pad)
	tints[3].apply(v.labelText)

	v.labelBg.SetPosition(0, outer)
	v.labelBg.ScaleX = labelTex.Width() + 2*pad
	v.labelBg.ScaleY = labelTex.Height() + 2*pad
	tints[4].apply(v.labelBg)
	return nil
}

// checkText panics on ErrUnsupportedTextMode and returns other errors.
func checkText(err error) error {
	if errors.Is(err, text.ErrUnsupportedTextMode) {
		panic(err)
	}
	return err
}

func (v *NodeView) textBuilder(spec text.Spec) texture.Builder {
	return func() (*scene.Node, error) {
		return v.rasterizer.Rasterize(spec)
	}
}

// CircleKey is the texture key of a node circle.
func CircleKey(size float64) string {
	return fmt.Sprintf("%s-%v", NodeCircle, size)
}

// BorderKey is the texture key of a node border ring.
func BorderKey(size, width float64) string {
	return fmt.Sprintf("%s-%v-%v", NodeBorder, size, width)
}

// TextKey is the texture key of an icon or label.
func TextKey(prefix string, spec text.Spec) string {
	return fmt.Sprintf("%s-%v-%s-%v-%s", prefix, spec.Mode, spec.FontFamily, spec.FontSize, text.Normalize(spec.Content))
}

func circleBuilder(radius float64) texture.Builder {
	return func() (*scene.Node, error) {
		if radius <= 0 {
			return scene.NewContainer(NodeCircle), nil
		}
		return scene.NewGraphics(NodeCircle, scene.RectXYWH(-radius, -radius, 2*radius, 2*radius), func(dc *gg.Context) {
			dc.SetRGBA(1, 1, 1, 1)
			dc.DrawCircle(0, 0, radius)
			_ = dc.Fill()
		}), nil
	}
}

// borderBuilder draws a ring of the given width centered on radius.
func borderBuilder(radius, width float64) texture.Builder {
	return func() (*scene.Node, error) {
		if width <= 0 || radius <= 0 {
			return scene.NewContainer(NodeBorder), nil
		}
		outer := radius + width/2
		return scene.NewGraphics(NodeBorder, scene.RectXYWH(-outer, -outer, 2*outer, 2*outer), func(dc *gg.Context) {
			dc.SetRGBA(1, 1, 1, 1)
			dc.SetLineWidth(width)
			dc.DrawCircle(0, 0, radius)
			_ = dc.Stroke()
		}), nil
	}
}

// UpdateVisibility gates sub-elements by LOD on top of the culling
// result already stored in each element's Visible flag.
func (v *NodeView) UpdateVisibility(lod int) {
	v.border.Visible = v.border.Visible && lod >= BorderLOD
	v.icon.Visible = v.icon.Visible && lod >= IconLOD
	v.labelBg.Visible = v.labelBg.Visible && lod >= LabelLOD
	v.labelText.Visible = v.labelText.Visible && lod >= LabelLOD
}

// Elements returns the leaf sprites in draw order.
func (v *NodeView) Elements() []*scene.Node {
	return []*scene.Node{v.circle, v.border, v.icon, v.labelBg, v.labelText}
}

// Element returns a leaf sprite by name.
func (v *NodeView) Element(name string) *scene.Node {
	if n := v.Graphics.Element.ChildByName(name); n != nil {
		return n
	}
	return v.Label.Element.ChildByName(name)
}

// Destroy removes the view's elements from the scene. Cached textures
// stay in the cache.
func (v *NodeView) Destroy() {
	v.Events.Clear()
	v.Graphics.destroy()
	v.Label.destroy()
}
