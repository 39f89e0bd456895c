// Package graph is an in-memory attributed multigraph with string keys
// and change notifications.
//
// Nodes and edges carry attribute maps. Every mutation emits an [Event]
// to subscribers, which is how the graph view keeps its scene in sync.
// Topology (incidence and adjacency) is indexed with
// gonum.org/v1/gonum/graph/multi, so parallel edges and self loops are
// allowed.
//
// Attribute maps handed out by accessors are copies; mutate through the
// Set/Merge/Replace/Remove methods so subscribers are notified.
//
// The JSON import and export format is graphology's serialization format:
//
//	{
//	  "attributes": {},
//	  "nodes": [{"key": "a", "attributes": {"x": 0, "y": 0}}],
//	  "edges": [{"key": "e", "source": "a", "target": "b", "attributes": {}}]
//	}
//
// Graph is not safe for concurrent use.
package graph
