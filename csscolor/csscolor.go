// Package csscolor parses CSS color strings into a packed 24-bit RGB value
// and a separate alpha.
//
// Supported forms:
//
//	red, rebeccapurple, transparent      named colors
//	#f00, #f00c, #ff0000, #ff0000cc      hex
//	rgb(255, 0, 0), rgba(255 0 0 / 50%)  functional RGB
//	hsl(120deg, 100%, 50%), hsla(...)    functional HSL
//
// The split into (rgb, alpha) matches how the scene renderer applies
// colors: rgb becomes a sprite tint, alpha becomes the sprite alpha.
package csscolor

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// ErrInvalidColor is matched by every error returned from Parse.
var ErrInvalidColor = errors.New("csscolor: invalid color")

// extraNames holds CSS Color Level 4 names missing from the SVG 1.1 table.
var extraNames = map[string]uint32{
	"rebeccapurple": 0x663399,
}

// ParseError describes why a color string was rejected.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("csscolor: invalid color %q: %s", e.Input, e.Reason)
}

// Is reports whether target is ErrInvalidColor.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidColor
}

// Parse converts a CSS color string to a packed 0xRRGGBB value and an
// alpha in [0, 1].
func Parse(s string) (rgb uint32, alpha float64, err error) {
	in := strings.ToLower(strings.TrimSpace(s))
	if in == "" {
		return 0, 0, &ParseError{Input: s, Reason: "empty string"}
	}

	switch {
	case in == "transparent":
		return 0, 0, nil
	case in[0] == '#':
		rgb, alpha, reason := parseHex(in[1:])
		if reason != "" {
			return 0, 0, &ParseError{Input: s, Reason: reason}
		}
		return rgb, alpha, nil
	case strings.HasSuffix(in, ")"):
		rgb, alpha, reason := parseFunc(in)
		if reason != "" {
			return 0, 0, &ParseError{Input: s, Reason: reason}
		}
		return rgb, alpha, nil
	}

	if c, ok := colornames.Map[in]; ok {
		return Pack(c.R, c.G, c.B), 1, nil
	}
	if rgb, ok := extraNames[in]; ok {
		return rgb, 1, nil
	}
	return 0, 0, &ParseError{Input: s, Reason: "unknown color name"}
}

// MustParse is like Parse but panics on error.
// Use only for colors that are compile-time constants.
func MustParse(s string) (rgb uint32, alpha float64) {
	rgb, alpha, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return rgb, alpha
}

// Pack combines 8-bit channels into 0xRRGGBB.
func Pack(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Unpack splits 0xRRGGBB into 8-bit channels.
func Unpack(rgb uint32) (r, g, b uint8) {
	return uint8(rgb >> 16), uint8(rgb >> 8), uint8(rgb)
}

// ToRGBA converts a packed color and alpha to a gg color.
func ToRGBA(rgb uint32, alpha float64) gg.RGBA {
	r, g, b := Unpack(rgb)
	return gg.RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: alpha,
	}
}

func parseHex(hex string) (uint32, float64, string) {
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return 0, 0, "non-hex digit"
		}
	}

	v, _ := strconv.ParseUint(hex, 16, 32)
	switch len(hex) {
	case 3: // rgb
		r, g, b := uint8(v>>8&0xf), uint8(v>>4&0xf), uint8(v&0xf)
		return Pack(r*17, g*17, b*17), 1, ""
	case 4: // rgba
		r, g, b, a := uint8(v>>12&0xf), uint8(v>>8&0xf), uint8(v>>4&0xf), uint8(v&0xf)
		return Pack(r*17, g*17, b*17), float64(a*17) / 255, ""
	case 6: // rrggbb
		return uint32(v), 1, ""
	case 8: // rrggbbaa
		return uint32(v >> 8), float64(v&0xff) / 255, ""
	default:
		return 0, 0, "hex color must have 3, 4, 6 or 8 digits"
	}
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f')
}

func parseFunc(in string) (uint32, float64, string) {
	open := strings.IndexByte(in, '(')
	if open < 0 {
		return 0, 0, "missing '('"
	}
	name := strings.TrimSpace(in[:open])
	args, reason := splitArgs(in[open+1 : len(in)-1])
	if reason != "" {
		return 0, 0, reason
	}

	switch name {
	case "rgb", "rgba":
		return parseRGBArgs(args)
	case "hsl", "hsla":
		return parseHSLArgs(args)
	default:
		return 0, 0, "unknown color function " + strconv.Quote(name)
	}
}

// splitArgs accepts both the legacy comma syntax and the space syntax with
// an optional "/ alpha" suffix.
func splitArgs(body string) ([]string, string) {
	body = strings.TrimSpace(body)
	var parts []string
	if strings.Contains(body, ",") {
		if strings.Contains(body, "/") {
			return nil, "mixed ',' and '/' separators"
		}
		for _, p := range strings.Split(body, ",") {
			parts = append(parts, strings.TrimSpace(p))
		}
	} else {
		main, alpha, hasAlpha := strings.Cut(body, "/")
		parts = strings.Fields(main)
		if hasAlpha {
			parts = append(parts, strings.TrimSpace(alpha))
		}
	}
	if len(parts) != 3 && len(parts) != 4 {
		return nil, fmt.Sprintf("expected 3 or 4 arguments, got %d", len(parts))
	}
	for _, p := range parts {
		if p == "" {
			return nil, "empty argument"
		}
	}
	return parts, ""
}

func parseRGBArgs(args []string) (uint32, float64, string) {
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, pct, err := parseNumber(args[i])
		if err != nil {
			return 0, 0, "bad channel " + strconv.Quote(args[i])
		}
		if pct {
			v = v * 255 / 100
		}
		ch[i] = uint8(math.Round(clamp(v, 0, 255)))
	}
	alpha, reason := parseAlpha(args)
	if reason != "" {
		return 0, 0, reason
	}
	return Pack(ch[0], ch[1], ch[2]), alpha, ""
}

func parseHSLArgs(args []string) (uint32, float64, string) {
	hue := strings.TrimSuffix(args[0], "deg")
	h, pct, err := parseNumber(hue)
	if err != nil || pct {
		return 0, 0, "bad hue " + strconv.Quote(args[0])
	}
	s, pct, err := parseNumber(args[1])
	if err != nil || !pct {
		return 0, 0, "saturation must be a percentage"
	}
	l, pct, err := parseNumber(args[2])
	if err != nil || !pct {
		return 0, 0, "lightness must be a percentage"
	}
	alpha, reason := parseAlpha(args)
	if reason != "" {
		return 0, 0, reason
	}

	c := gg.HSL(h, clamp(s/100, 0, 1), clamp(l/100, 0, 1))
	return Pack(to8(c.R), to8(c.G), to8(c.B)), alpha, ""
}

func parseAlpha(args []string) (float64, string) {
	if len(args) < 4 {
		return 1, ""
	}
	a, pct, err := parseNumber(args[3])
	if err != nil {
		return 0, "bad alpha " + strconv.Quote(args[3])
	}
	if pct {
		a /= 100
	}
	return clamp(a, 0, 1), ""
}

// parseNumber parses "12", "12.5" or "50%".
func parseNumber(s string) (v float64, percent bool, err error) {
	if strings.HasSuffix(s, "%") {
		percent = true
		s = strings.TrimSuffix(s, "%")
	}
	v, err = strconv.ParseFloat(s, 64)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = strconv.ErrSyntax
	}
	return v, percent, err
}

func to8(x float64) uint8 {
	return uint8(math.Round(clamp(x, 0, 1) * 255))
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
