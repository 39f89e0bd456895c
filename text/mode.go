package text

import (
	"fmt"
	"strings"
)

// Mode selects how text is rasterized.
type Mode uint8

// Text modes.
const (
	// PlainText draws glyphs from a registered font on demand.
	PlainText Mode = iota + 1
	// BitmapText composes text from a pre-rasterized glyph atlas.
	BitmapText
)

// String returns the style-definition name of the mode.
func (m Mode) String() string {
	switch m {
	case PlainText:
		return "TEXT"
	case BitmapText:
		return "BITMAP_TEXT"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses "TEXT" or "BITMAP_TEXT", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TEXT":
		return PlainText, nil
	case "BITMAP_TEXT":
		return BitmapText, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedTextMode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m != PlainText && m != BitmapText {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedTextMode, uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
