// Package text turns label and icon specifications into scene fragments.
//
// A [Rasterizer] owns two font registries:
//
//   - Plain fonts, registered from TTF/OTF data with [Rasterizer.RegisterFont]
//     and rasterized on demand through github.com/gogpu/gg/text. Unknown
//     families fall back to Go Regular.
//   - Bitmap fonts, registered with [Rasterizer.RegisterBitmapFont]. Their
//     glyphs are rasterized once into an atlas and text is composed from
//     atlas blits scaled to the requested size.
//
// Fragments are drawn in white so a sprite tint can color the texture
// generated from them.
//
// # Example
//
//	r := text.NewRasterizer()
//	frag, err := r.Rasterize(text.Spec{
//	    Mode:       text.PlainText,
//	    Content:    "hello",
//	    FontFamily: "Arial",
//	    FontSize:   12,
//	})
//
// Content is normalized to Unicode NFC before measuring and drawing, so
// canonically equivalent strings produce identical fragments.
package text
