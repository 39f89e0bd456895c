// Package layout positions graphs with Graphviz.
//
// Graphs are converted to DOT with [ToDOT] and laid out by the
// WebAssembly build of Graphviz shipped with go-graphviz. [Render] asks
// Graphviz for its "dot" output, the input graph annotated with pos and
// bb, and [Parse] reads the node positions and the exact edge endpoints
// back from it. The same pass serves laying out graph.Graph values
// ([Apply]) and importing DOT files ([LoadDOT]).
//
// Coordinates are Graphviz points with y flipped to grow downwards, which
// matches the world coordinates of a graph view.
package layout
