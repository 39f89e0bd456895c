package graphview

import "errors"

// ErrInvalidContainer is returned by New when the canvas cannot be drawn
// into: nil, without a context, or with a non-positive size.
var ErrInvalidContainer = errors.New("graphview: invalid container")

// ErrDestroyed is returned by operations on a destroyed view.
var ErrDestroyed = errors.New("graphview: view destroyed")

// ErrNilGraph is returned by New when no graph is given.
var ErrNilGraph = errors.New("graphview: nil graph")
