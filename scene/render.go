package scene

import (
	"github.com/gogpu/gg"
)

// Render draws root and its visible descendants onto dc. resolution maps
// logical units to device pixels. The context is not cleared.
func Render(dc *gg.Context, root *Node, resolution float64) {
	if resolution <= 0 {
		resolution = 1
	}
	dc.Push()
	dc.Identity()
	renderNode(dc, root, gg.Scale(resolution, resolution), 1)
	dc.Pop()
}

func renderNode(dc *gg.Context, n *Node, parent gg.Matrix, parentAlpha float64) {
	if !n.Visible || n.destroyed {
		return
	}
	alpha := parentAlpha * n.Alpha
	if alpha <= 0 {
		return
	}
	m := parent.Multiply(n.LocalTransform())
	drawContent(dc, n, m, alpha)
	for _, c := range n.children {
		renderNode(dc, c, m, alpha)
	}
}

func drawContent(dc *gg.Context, n *Node, m gg.Matrix, alpha float64) {
	switch n.kind {
	case KindSprite:
		drawSprite(dc, n, m, alpha)
	case KindGraphics:
		if n.draw == nil {
			return
		}
		dc.Push()
		dc.SetTransform(m)
		if alpha < 1 {
			dc.PushLayer(gg.BlendNormal, alpha)
		}
		n.draw(dc)
		if alpha < 1 {
			dc.PopLayer()
		}
		dc.Pop()
	}
}

func drawSprite(dc *gg.Context, n *Node, m gg.Matrix, alpha float64) {
	t := n.texture
	if t == nil || t.IsEmpty() {
		return
	}
	local := n.ContentBounds()

	if t.solid {
		r, g, b := tintRGB(n.Tint)
		dc.SetRGBA(r, g, b, alpha)
		corners := [4]gg.Point{
			{X: local.MinX, Y: local.MinY},
			{X: local.MaxX, Y: local.MinY},
			{X: local.MaxX, Y: local.MaxY},
			{X: local.MinX, Y: local.MaxY},
		}
		for i, c := range corners {
			p := m.TransformPoint(c)
			if i == 0 {
				dc.MoveTo(p.X, p.Y)
			} else {
				dc.LineTo(p.X, p.Y)
			}
		}
		dc.ClosePath()
		_ = dc.Fill()
		return
	}

	// gg draws images axis-aligned; rotated textured sprites use their
	// transformed bounding box.
	dst := local.Transform(m)
	if dst.Width() <= 0 || dst.Height() <= 0 {
		return
	}
	dc.DrawImageEx(t.buf(n.Tint), gg.DrawImageOptions{
		X:             dst.MinX,
		Y:             dst.MinY,
		DstWidth:      dst.Width(),
		DstHeight:     dst.Height(),
		Interpolation: gg.InterpBilinear,
		Opacity:       alpha,
		BlendMode:     gg.BlendNormal,
	})
}

func tintRGB(tint uint32) (r, g, b float64) {
	return float64(tint>>16&0xff) / 255, float64(tint>>8&0xff) / 255, float64(tint&0xff) / 255
}
