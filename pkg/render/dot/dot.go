package dot

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yashsidana/code-clarified/pkg/flowgraph"
)

// ToDOT converts a flowchart graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Each function cluster becomes a subgraph labeled with the function
// signature. An empty graph renders a single placeholder node so the output
// image is never blank.
func ToDOT(g flowgraph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph CodeFlow {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  splines=ortho;\n")
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  label=\"Code Logic Flowchart\";\n")
	buf.WriteString("  fontname=\"Helvetica\";\n")
	buf.WriteString("  node [style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\"];\n")

	if len(g.Nodes) == 0 {
		buf.WriteString("\n  \"main\" [label=\"No functions found to map.\", shape=plaintext];\n")
		buf.WriteString("}\n")
		return buf.String()
	}

	for _, cluster := range g.Clusters() {
		writeCluster(&buf, g, cluster)
	}

	// Nodes without a cluster id sit at the top level of the digraph.
	wroteTopLevel := false
	for _, n := range g.Nodes {
		if n.Cluster != "" {
			continue
		}
		if !wroteTopLevel {
			buf.WriteString("\n")
			wroteTopLevel = true
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// writeCluster emits one function subgraph with its node declarations.
func writeCluster(buf *bytes.Buffer, g flowgraph.Graph, cluster string) {
	nodes := g.ClusterNodes(cluster)

	fmt.Fprintf(buf, "\n  subgraph %q {\n", cluster)
	fmt.Fprintf(buf, "    label=%q;\n", clusterLabel(nodes))
	buf.WriteString("    style=rounded;\n")

	for _, n := range nodes {
		fmt.Fprintf(buf, "    %q [%s];\n", n.ID, strings.Join(nodeAttrs(n), ", "))
	}

	buf.WriteString("  }\n")
}

// clusterLabel formats "Function: name(a, b)" from the cluster's Start node.
func clusterLabel(nodes []flowgraph.Node) string {
	for _, n := range nodes {
		if n.ClusterMeta != nil {
			return fmt.Sprintf("Function: %s(%s)", n.ClusterMeta.Name, strings.Join(n.ClusterMeta.Params, ", "))
		}
	}
	return "Function"
}

func nodeAttrs(n flowgraph.Node) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", n.Label),
		fmt.Sprintf("shape=%s", n.Shape),
	}
	if n.FillColor != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%s", n.FillColor))
	}
	return attrs
}
