package style

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Sentinel errors for the style package.
var (
	// ErrIncompleteStyle is returned when no layer sets some field.
	ErrIncompleteStyle = errors.New("style: incomplete style")

	// ErrInvalidStyle is returned when a resolved value has the wrong type.
	ErrInvalidStyle = errors.New("style: invalid style")
)

// Resolve resolves defs against attrs, merges them and decodes the result
// into a Style. Numbers are decoded weakly (an int attribute may feed a
// float field) and text modes are parsed from their names.
func Resolve(defs []Definition, attrs Attributes) (Style, error) {
	return Decode(ResolveMany(defs, attrs))
}

// Decode decodes a merged style tree into a Style.
func Decode(tree map[string]any) (Style, error) {
	var (
		st Style
		md mapstructure.Metadata
	)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
		WeaklyTypedInput: true,
		Metadata:         &md,
		Result:           &st,
		TagName:          "mapstructure",
	})
	if err != nil {
		return Style{}, fmt.Errorf("style: decoder: %w", err)
	}
	if err := dec.Decode(tree); err != nil {
		return Style{}, fmt.Errorf("%w: %w", ErrInvalidStyle, err)
	}
	if len(md.Unset) > 0 {
		unset := slices.Clone(md.Unset)
		slices.Sort(unset)
		return Style{}, fmt.Errorf("%w: unset %s", ErrIncompleteStyle, strings.Join(unset, ", "))
	}
	return st, nil
}
