package style

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// ErrInvalidTheme is returned for a theme file that does not describe
// style definitions.
var ErrInvalidTheme = errors.New("style: invalid theme")

// Theme holds the definitions loaded from a theme file.
type Theme struct {
	Style Definition
	Hover Definition
}

// LoadTheme reads a TOML theme.
//
// The [node] and [edge] tables form the style definition, [hover.node] and
// [hover.edge] the hover definition. Any table of the form
//
//	color = { attribute = "group_color", default = "#888888" }
//
// reads the named entity attribute, falling back to default when set.
// Every other value is a literal.
func LoadTheme(r io.Reader) (Theme, error) {
	var raw map[string]any
	if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return Theme{}, fmt.Errorf("%w: %w", ErrInvalidTheme, err)
	}

	th := Theme{Style: Nil, Hover: Nil}
	style := Partial{}
	for k, v := range raw {
		switch k {
		case "node", "edge":
			def, err := tableDefinition(k, v)
			if err != nil {
				return Theme{}, err
			}
			style[k] = def
		case "hover":
			tbl, ok := v.(map[string]any)
			if !ok {
				return Theme{}, fmt.Errorf("%w: hover is not a table", ErrInvalidTheme)
			}
			hover := Partial{}
			for hk, hv := range tbl {
				if hk != "node" && hk != "edge" {
					return Theme{}, fmt.Errorf("%w: unknown table hover.%s", ErrInvalidTheme, hk)
				}
				def, err := tableDefinition("hover."+hk, hv)
				if err != nil {
					return Theme{}, err
				}
				hover[hk] = def
			}
			th.Hover = hover
		default:
			return Theme{}, fmt.Errorf("%w: unknown table %s", ErrInvalidTheme, k)
		}
	}
	if len(style) > 0 {
		th.Style = style
	}
	return th, nil
}

// LoadThemeFile reads a TOML theme from path.
func LoadThemeFile(path string) (Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return Theme{}, fmt.Errorf("style: open theme: %w", err)
	}
	defer f.Close()
	return LoadTheme(f)
}

func tableDefinition(path string, v any) (Definition, error) {
	tbl, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a table", ErrInvalidTheme, path)
	}
	return toDefinition(tbl), nil
}

func toDefinition(v any) Definition {
	tbl, ok := v.(map[string]any)
	if !ok {
		return Literal{Value: v}
	}
	if name, ok := tbl["attribute"].(string); ok && isAttributeRef(tbl) {
		return Attribute(name, tbl["default"])
	}
	p := make(Partial, len(tbl))
	for k, sub := range tbl {
		p[k] = toDefinition(sub)
	}
	return p
}

func isAttributeRef(tbl map[string]any) bool {
	for k := range tbl {
		if k != "attribute" && k != "default" {
			return false
		}
	}
	return true
}
