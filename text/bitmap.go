package text

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	ggtext "github.com/gogpu/gg/text"

	"github.com/gogpu/graphview/scene"
)

const (
	atlasWidth   = 512
	atlasPadding = 1
)

// BitmapFont is a glyph atlas rasterized once at a fixed size.
type BitmapFont struct {
	Family string
	Size   float64

	height float64
	margin int
	atlas  *image.RGBA
	buf    *gg.ImageBuf
	glyphs map[rune]bitmapGlyph
}

type bitmapGlyph struct {
	rect    image.Rectangle
	advance float64
}

func newBitmapFont(family string, src *ggtext.FontSource, size float64, charset string) (*BitmapFont, error) {
	face := src.Face(size)
	m := face.Metrics()
	cellH := int(math.Ceil(m.Ascent + m.Descent))
	margin := 1 + int(size/10)

	type placed struct {
		r    rune
		x, y int
	}
	alloc := newShelfAllocator(atlasWidth, atlasPadding)
	bf := &BitmapFont{
		Family: family,
		Size:   size,
		height: m.Ascent + m.Descent,
		margin: margin,
		glyphs: make(map[rune]bitmapGlyph),
	}
	var todo []placed
	for _, r := range Normalize(charset) {
		if _, dup := bf.glyphs[r]; dup || !face.HasGlyph(r) {
			continue
		}
		adv := face.Advance(string(r))
		w := int(math.Ceil(adv)) + 2*margin
		x, y, ok := alloc.allocate(w, cellH)
		if !ok {
			return nil, fmt.Errorf("text: bitmap font %q: glyph %q wider than atlas", family, r)
		}
		bf.glyphs[r] = bitmapGlyph{rect: image.Rect(x, y, x+w, y+cellH), advance: adv}
		todo = append(todo, placed{r: r, x: x, y: y})
	}
	if len(todo) == 0 {
		return nil, fmt.Errorf("%w: family %q", ErrEmptyCharset, family)
	}

	bf.atlas = image.NewRGBA(image.Rect(0, 0, atlasWidth, alloc.height()))
	for _, p := range todo {
		g := bf.glyphs[p.r]
		// Clip each glyph to its cell so overhangs don't bleed into
		// neighbours.
		cell := bf.atlas.SubImage(g.rect).(*image.RGBA)
		ggtext.Draw(cell, string(p.r), face, float64(p.x+margin), float64(p.y)+m.Ascent, color.White)
	}
	bf.buf = gg.ImageBufFromImage(bf.atlas)
	return bf, nil
}

// Atlas returns the glyph atlas pixels.
func (bf *BitmapFont) Atlas() *image.RGBA { return bf.atlas }

// HasGlyph reports whether r is in the atlas.
func (bf *BitmapFont) HasGlyph(r rune) bool {
	_, ok := bf.glyphs[r]
	return ok
}

// Advance returns the width of s at size. Runes missing from the atlas
// are skipped.
func (bf *BitmapFont) Advance(s string, size float64) float64 {
	scale := size / bf.Size
	w := 0.0
	for _, r := range s {
		if g, ok := bf.glyphs[r]; ok {
			w += g.advance * scale
		}
	}
	return w
}

func (bf *BitmapFont) fragment(content string, size float64) *scene.Node {
	scale := size / bf.Size
	w := math.Ceil(bf.Advance(content, size))
	h := math.Ceil(bf.height * scale)
	margin := float64(bf.margin) * scale

	return scene.NewGraphics("bitmap-text", scene.RectXYWH(0, 0, w, h), func(dc *gg.Context) {
		pen := 0.0
		for _, r := range content {
			g, ok := bf.glyphs[r]
			if !ok {
				continue
			}
			src := g.rect
			dc.DrawImageEx(bf.buf, gg.DrawImageOptions{
				X:         pen - margin,
				Y:         0,
				DstWidth:  float64(src.Dx()) * scale,
				DstHeight: float64(src.Dy()) * scale,
				SrcRect:   &src,
			})
			pen += g.advance * scale
		}
	})
}
