package scene

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
)

// Texture is a rasterized image at a device pixel ratio.
//
// Textures generated for the graph view are drawn in white so a sprite
// tint can color them at draw time. Tinted copies are built lazily and
// kept until Destroy.
//
// Textures hold pixel memory that is released explicitly by Destroy; the
// texture cache is responsible for calling it.
type Texture struct {
	img        *image.RGBA
	resolution float64
	solid      bool
	tinted     map[uint32]*gg.ImageBuf
	destroyed  bool
}

// White is a shared 1x1 opaque white texture. Sprites using it are drawn
// as filled quads, which makes it suitable for lines and backgrounds of
// any size and rotation. Destroy is a no-op on White.
var White = newSolidTexture()

func newSolidTexture() *Texture {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	return &Texture{img: img, resolution: 1, solid: true}
}

// NewTexture wraps premultiplied pixels rasterized at resolution device
// pixels per logical unit.
func NewTexture(img *image.RGBA, resolution float64) *Texture {
	if resolution <= 0 {
		resolution = 1
	}
	return &Texture{img: img, resolution: resolution}
}

// Image returns the pixels, or nil after Destroy.
func (t *Texture) Image() *image.RGBA { return t.img }

// Resolution returns the device pixel ratio the texture was rasterized at.
func (t *Texture) Resolution() float64 { return t.resolution }

// Width returns the logical width.
func (t *Texture) Width() float64 {
	if t.img == nil {
		return 0
	}
	return float64(t.img.Bounds().Dx()) / t.resolution
}

// Height returns the logical height.
func (t *Texture) Height() float64 {
	if t.img == nil {
		return 0
	}
	return float64(t.img.Bounds().Dy()) / t.resolution
}

// IsEmpty reports whether the texture has no pixels.
func (t *Texture) IsEmpty() bool {
	return t.img == nil || t.img.Bounds().Empty()
}

// IsSolid reports whether the texture is White.
func (t *Texture) IsSolid() bool { return t.solid }

// Destroyed reports whether Destroy was called.
func (t *Texture) Destroyed() bool { return t.destroyed }

// Destroy releases the pixels and every tinted copy.
func (t *Texture) Destroy() {
	if t.solid || t.destroyed {
		return
	}
	t.destroyed = true
	t.img = nil
	t.tinted = nil
}

// buf returns the texture multiplied by tint, ready for gg.DrawImageEx.
func (t *Texture) buf(tint uint32) *gg.ImageBuf {
	tint &= 0xffffff
	if b, ok := t.tinted[tint]; ok {
		return b
	}
	src := t.img
	if tint != 0xffffff {
		src = tintImage(t.img, tint)
	}
	b := gg.ImageBufFromImage(src)
	if t.tinted == nil {
		t.tinted = make(map[uint32]*gg.ImageBuf)
	}
	t.tinted[tint] = b
	return b
}

// tintImage multiplies every premultiplied channel by the tint channel.
func tintImage(src *image.RGBA, tint uint32) *image.RGBA {
	tr, tg, tb := uint32(tint>>16&0xff), uint32(tint>>8&0xff), uint32(tint&0xff)
	dst := image.NewRGBA(src.Bounds())
	for i := 0; i+3 < len(src.Pix); i += 4 {
		dst.Pix[i+0] = uint8(uint32(src.Pix[i+0]) * tr / 255)
		dst.Pix[i+1] = uint8(uint32(src.Pix[i+1]) * tg / 255)
		dst.Pix[i+2] = uint8(uint32(src.Pix[i+2]) * tb / 255)
		dst.Pix[i+3] = src.Pix[i+3]
	}
	return dst
}
