package scene

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// GenerateTexture rasterizes the part of n's subtree inside region (in n's
// local space, ignoring n's own transform) into a new texture with
// resolution device pixels per unit.
//
// The region is used as given; callers wanting a tight, unclipped texture
// pass n.LocalBounds().Snap().
func GenerateTexture(n *Node, region Rect, resolution float64) *Texture {
	if resolution <= 0 {
		resolution = 1
	}
	w := int(math.Ceil(region.Width() * resolution))
	h := int(math.Ceil(region.Height() * resolution))
	if w <= 0 || h <= 0 {
		return NewTexture(image.NewRGBA(image.Rectangle{}), resolution)
	}

	dc := gg.NewContext(w, h)
	defer func() {
		_ = dc.Close()
	}()

	base := gg.Scale(resolution, resolution).Multiply(gg.Translate(-region.MinX, -region.MinY))
	drawContent(dc, n, base, n.Alpha)
	for _, c := range n.children {
		renderNode(dc, c, base, n.Alpha)
	}

	_ = dc.FlushGPU()
	return NewTexture(toRGBA(dc.Image()), resolution)
}

// toRGBA returns img as *image.RGBA, converting when needed.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
