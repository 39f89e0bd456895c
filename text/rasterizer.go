package text

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/gogpu/gg"
	ggtext "github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/graphview/scene"
)

// DefaultFamily is the family every Rasterizer starts with and the
// fallback for unregistered plain font families.
const DefaultFamily = "Go"

// Spec describes one piece of text to rasterize.
type Spec struct {
	Mode       Mode
	Content    string
	FontFamily string
	FontSize   float64
}

// Rasterizer builds text fragments from registered fonts.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	fonts   map[string]*ggtext.FontSource
	names   map[string]string
	bitmaps map[string]*BitmapFont
}

// NewRasterizer returns a rasterizer with Go Regular registered as
// DefaultFamily.
func NewRasterizer() *Rasterizer {
	r := &Rasterizer{
		fonts:   make(map[string]*ggtext.FontSource),
		names:   make(map[string]string),
		bitmaps: make(map[string]*BitmapFont),
	}
	if err := r.RegisterFont(DefaultFamily, goregular.TTF); err != nil {
		panic(fmt.Sprintf("text: embedded Go Regular: %v", err))
	}
	return r
}

func familyKey(family string) string {
	return strings.ToLower(strings.TrimSpace(family))
}

// RegisterFont registers TTF or OTF data under family, replacing any
// previous font of that family.
func (r *Rasterizer) RegisterFont(family string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: family %q", ErrEmptyFontData, family)
	}
	src, err := ggtext.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("text: register font %q: %w", family, err)
	}
	k := familyKey(family)
	if old := r.fonts[k]; old != nil {
		_ = old.Close()
	}
	r.fonts[k] = src
	r.names[k] = family
	return nil
}

// RegisterBitmapFont rasterizes charset from the plain font of family (or
// the default font) at size into a glyph atlas usable with BitmapText.
func (r *Rasterizer) RegisterBitmapFont(family string, size float64, charset string) error {
	if size <= 0 {
		return fmt.Errorf("text: bitmap font %q: invalid size %v", family, size)
	}
	bf, err := newBitmapFont(family, r.source(family), size, charset)
	if err != nil {
		return err
	}
	k := familyKey(family)
	r.bitmaps[k] = bf
	if _, ok := r.names[k]; !ok {
		r.names[k] = family
	}
	return nil
}

// BitmapFont returns the bitmap font registered for family.
func (r *Rasterizer) BitmapFont(family string) (*BitmapFont, bool) {
	bf, ok := r.bitmaps[familyKey(family)]
	return bf, ok
}

// Families returns the registered plain and bitmap families, sorted.
func (r *Rasterizer) Families() []string {
	out := make([]string, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func (r *Rasterizer) source(family string) *ggtext.FontSource {
	if src, ok := r.fonts[familyKey(family)]; ok {
		return src
	}
	return r.fonts[familyKey(DefaultFamily)]
}

// Normalize returns s in Unicode NFC.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// Rasterize builds a white fragment for spec. The fragment's local bounds
// start at the origin and have integer size. Empty content (or a
// non-positive size) yields a fragment with empty bounds.
func (r *Rasterizer) Rasterize(spec Spec) (*scene.Node, error) {
	content := Normalize(spec.Content)
	switch spec.Mode {
	case PlainText:
		if content == "" || spec.FontSize <= 0 {
			return scene.NewContainer("text"), nil
		}
		return r.plain(content, spec), nil
	case BitmapText:
		bf, ok := r.bitmaps[familyKey(spec.FontFamily)]
		if !ok {
			return nil, fmt.Errorf("%w: bitmap family %q", ErrFontNotRegistered, spec.FontFamily)
		}
		if content == "" || spec.FontSize <= 0 {
			return scene.NewContainer("bitmap-text"), nil
		}
		return bf.fragment(content, spec.FontSize), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedTextMode, spec.Mode)
	}
}

// Measure returns the size of the fragment Rasterize would build.
func (r *Rasterizer) Measure(spec Spec) (width, height float64, err error) {
	frag, err := r.Rasterize(spec)
	if err != nil {
		return 0, 0, err
	}
	b := frag.LocalBounds()
	return b.Width(), b.Height(), nil
}

func (r *Rasterizer) plain(content string, spec Spec) *scene.Node {
	src := r.source(spec.FontFamily)
	size := spec.FontSize
	face := src.Face(size)
	m := face.Metrics()
	w := math.Ceil(face.Advance(content))
	h := math.Ceil(m.Ascent + m.Descent)
	ascent := m.Ascent

	// gg draws strings in device space, so the glyphs are re-shaped at the
	// scale of the current transform.
	return scene.NewGraphics("text", scene.RectXYWH(0, 0, w, h), func(dc *gg.Context) {
		t := dc.GetTransform()
		scale := math.Sqrt(math.Abs(t.A*t.E - t.B*t.D))
		if scale == 0 {
			return
		}
		p := t.TransformPoint(gg.Pt(0, ascent))
		dc.SetFont(src.Face(size * scale))
		dc.SetRGBA(1, 1, 1, 1)
		dc.DrawString(content, p.X, p.Y)
	})
}
