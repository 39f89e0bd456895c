package style

import (
	"maps"

	"github.com/gogpu/graphview/text"
)

// Attributes are an entity's graph attributes.
type Attributes = map[string]any

// Definition is a style definition: Literal, Partial, Func or Nil.
type Definition interface {
	isDefinition()
}

// Literal is a fixed value. A map[string]any value is merged like a
// resolved Partial.
type Literal struct {
	Value any
}

// Partial maps field names to nested definitions. Fields it leaves out
// are inherited from earlier layers.
type Partial map[string]Definition

// Func computes a definition from an entity's attributes.
type Func func(attrs Attributes) Definition

type nilDefinition struct{}

// Nil is the empty definition. It resolves to nothing and is skipped
// when merging.
var Nil Definition = nilDefinition{}

func (Literal) isDefinition() {}
func (Partial) isDefinition() {}
func (Func) isDefinition() {}
func (nilDefinition) isDefinition() {}

// Value is shorthand for Literal{Value: v}.
func Value(v any) Definition { return Literal{Value: v} }

// Attribute returns a Func reading attribute name, falling back to def
// (which may be nil for "no value") when the entity lacks it.
func Attribute(name string, def any) Func {
	return func(attrs Attributes) Definition {
		if v, ok := attrs[name]; ok && v != nil {
			return Literal{Value: v}
		}
		if def == nil {
			return Nil
		}
		return Literal{Value: def}
	}
}

// ResolveOne evaluates def against attrs. Funcs are invoked and their
// result resolved, Partials become map[string]any with unresolved
// (nil) fields omitted, Literals yield their value.
func ResolveOne(def Definition, attrs Attributes) any {
	switch d := def.(type) {
	case nil, nilDefinition:
		return nil
	case Func:
		if d == nil {
			return nil
		}
		return ResolveOne(d(attrs), attrs)
	case Partial:
		out := make(map[string]any, len(d))
		for k, sub := range d {
			if v := ResolveOne(sub, attrs); v != nil {
				out[k] = v
			}
		}
		return out
	case Literal:
		return d.Value
	default:
		return nil
	}
}

// ResolveMany resolves each definition and deep-merges the results left
// to right: nested maps merge, any other value replaces. Definitions that
// do not resolve to a map are ignored.
func ResolveMany(defs []Definition, attrs Attributes) map[string]any {
	out := make(map[string]any)
	for _, def := range defs {
		if m, ok := ResolveOne(def, attrs).(map[string]any); ok {
			merge(out, m)
		}
	}
	return out
}

func merge(dst, src map[string]any) {
	for k, v := range src {
		sm, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		dm, ok := dst[k].(map[string]any)
		if !ok {
			dm = make(map[string]any, len(sm))
		} else {
			dm = maps.Clone(dm)
		}
		merge(dm, sm)
		dst[k] = dm
	}
}

// Defaults returns the built-in style every view starts from.
func Defaults() Definition {
	return Partial{
		"node": Partial{
			"size":  Value(15.0),
			"color": Value("#000000"),
			"border": Partial{
				"width": Value(2.0),
				"color": Value("#ffffff"),
			},
			"icon": Partial{
				"type":       Value(text.PlainText),
				"fontFamily": Value("Arial"),
				"fontSize":   Value(20.0),
				"color":      Value("#ffffff"),
				"content":    Value(""),
			},
			"label": Partial{
				"type":            Value(text.PlainText),
				"fontFamily":      Value("Arial"),
				"fontSize":        Value(12.0),
				"content":         Value(""),
				"color":           Value("#333333"),
				"backgroundColor": Value("rgba(0, 0, 0, 0)"),
				"padding":         Value(4.0),
			},
		},
		"edge": Partial{
			"width": Value(1.0),
			"color": Value("#cccccc"),
		},
	}
}

// FromStyle converts a resolved Style back into a literal definition.
// Resolving it alone yields s again.
func FromStyle(s Style) Definition {
	n := s.Node
	return Partial{
		"node": Partial{
			"size":  Value(n.Size),
			"color": Value(n.Color),
			"border": Partial{
				"width": Value(n.Border.Width),
				"color": Value(n.Border.Color),
			},
			"icon": Partial{
				"type":       Value(n.Icon.Type),
				"fontFamily": Value(n.Icon.FontFamily),
				"fontSize":   Value(n.Icon.FontSize),
				"content":    Value(n.Icon.Content),
				"color":      Value(n.Icon.Color),
			},
			"label": Partial{
				"type":            Value(n.Label.Type),
				"fontFamily":      Value(n.Label.FontFamily),
				"fontSize":        Value(n.Label.FontSize),
				"content":         Value(n.Label.Content),
				"color":           Value(n.Label.Color),
				"backgroundColor": Value(n.Label.BackgroundColor),
				"padding":         Value(n.Label.Padding),
			},
		},
		"edge": Partial{
			"width": Value(s.Edge.Width),
			"color": Value(s.Edge.Color),
		},
	}
}
