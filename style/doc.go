// Package style resolves layered, attribute-dependent style definitions
// into fully populated [Style] records.
//
// A [Definition] is one of:
//
//   - [Literal]: a fixed value (a number, a color string, a text mode).
//   - [Partial]: a map of field names to nested definitions.
//   - [Func]: a function of the entity's attributes returning a definition.
//   - [Nil]: no definition.
//
// Resolution evaluates a list of definitions against one entity's
// attributes and deep-merges the results left to right, so later layers
// win at every leaf:
//
//	st, err := style.Resolve([]style.Definition{
//	    style.Defaults(),
//	    user,
//	    hover,
//	}, attrs)
//
// The merged tree is decoded into [Style] with mapstructure. A field left
// unset by every layer is an error, so a resolved Style never has holes.
//
// Functions are invoked on every resolution; results are not memoized.
package style
