package text

import "errors"

// Sentinel errors for the text package.
var (
	// ErrFontNotRegistered is returned for bitmap text in a family that has
	// no registered bitmap font.
	ErrFontNotRegistered = errors.New("text: font not registered")

	// ErrUnsupportedTextMode is returned for an unknown Mode.
	ErrUnsupportedTextMode = errors.New("text: unsupported text mode")

	// ErrEmptyFontData is returned by RegisterFont for empty font data.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrEmptyCharset is returned by RegisterBitmapFont when no glyph of
	// the charset could be rasterized.
	ErrEmptyCharset = errors.New("text: empty bitmap font charset")
)
