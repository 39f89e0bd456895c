package graphview

import (
	"image"
	"log/slog"

	"github.com/gogpu/graphview/style"
)

// Option configures a GraphView during creation.
//
// Example:
//
//	gv, err := graphview.New(c, g,
//	    graphview.WithStyle(style.Partial{"node": style.Partial{"color": style.Value("#2f80ed")}}),
//	    graphview.WithResolution(2),
//	)
type Option func(*options)

// BitmapFont describes a bitmap font to rasterize at construction.
type BitmapFont struct {
	Family  string
	Size    float64
	Charset string
}

type options struct {
	style       style.Definition
	hoverStyle  style.Definition
	resolution  float64
	background  string
	fonts       map[string][]byte
	bitmapFonts []BitmapFont
	textures    map[string]image.Image
	logger      *slog.Logger
}

func defaultOptions() options {
	return options{
		style:      style.Nil,
		hoverStyle: style.Nil,
		resolution: 1,
		background: "transparent",
	}
}

// WithStyle sets the author style layered over the built-in defaults.
func WithStyle(def style.Definition) Option {
	return func(o *options) {
		if def != nil {
			o.style = def
		}
	}
}

// WithHoverStyle sets the style layered on top while an entity is hovered.
func WithHoverStyle(def style.Definition) Option {
	return func(o *options) {
		if def != nil {
			o.hoverStyle = def
		}
	}
}

// WithResolution sets the device pixel ratio. The canvas size is in device
// pixels; pointer events and the viewport use logical pixels.
func WithResolution(r float64) Option {
	return func(o *options) {
		if r > 0 {
			o.resolution = r
		}
	}
}

// WithBackground sets the color the canvas is cleared to before each
// frame. The default is transparent.
func WithBackground(color string) Option {
	return func(o *options) {
		o.background = color
	}
}

// WithFonts registers plain font families (TTF or OTF data by family).
func WithFonts(fonts map[string][]byte) Option {
	return func(o *options) {
		if o.fonts == nil {
			o.fonts = make(map[string][]byte, len(fonts))
		}
		for family, data := range fonts {
			o.fonts[family] = data
		}
	}
}

// WithBitmapFonts registers bitmap fonts, rasterized once at construction.
// Glyphs come from the plain font of the same family when registered.
func WithBitmapFonts(fonts ...BitmapFont) Option {
	return func(o *options) {
		o.bitmapFonts = append(o.bitmapFonts, fonts...)
	}
}

// WithTextures preloads images into the texture cache by name. See
// GraphView.Texture.
func WithTextures(images map[string]image.Image) Option {
	return func(o *options) {
		if o.textures == nil {
			o.textures = make(map[string]image.Image, len(images))
		}
		for name, img := range images {
			o.textures[name] = img
		}
	}
}

// WithLogger sets the logger for this view instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
