package layout

import (
	"bytes"
	"fmt"

	"github.com/gogpu/graphview/graph"
)

// ToDOT converts g to a DOT digraph. Nodes are drawn as
// fixed-size unlabeled circles so only the topology drives the layout.
//
// Node i is named "n<i>" in the output and keys[i] holds its graph key, so
// arbitrary keys never need DOT escaping.
func ToDOT(g *graph.Graph) (dot string, keys []string) {
	ids := make(map[string]string, g.Order())

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, fixedsize=true, width=0.4, label=\"\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	g.ForEachNode(func(key string, _ graph.Attributes) {
		id := fmt.Sprintf("n%d", len(keys))
		ids[key] = id
		keys = append(keys, key)
		fmt.Fprintf(&buf, "  %s;\n", id)
	})

	buf.WriteString("\n")
	g.ForEachEdge(func(_ string, _ graph.Attributes, source, target string) {
		fmt.Fprintf(&buf, "  %s -> %s;\n", ids[source], ids[target])
	})

	buf.WriteString("}\n")
	return buf.String(), keys
}
