package flowgraph

import "encoding/json"

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Node shapes.
const (
	ShapeEllipse   = "ellipse"
	ShapeBox       = "box"
	ShapeDiamond   = "diamond"
	ShapePlaintext = "plaintext"
)

// Node fill colors.
const (
	ColorStart    = "palegreen"
	ColorEnd      = "lightcoral"
	ColorDecision = "khaki"
	ColorDefault  = "white"
)

// Terminator and placeholder labels.
const (
	LabelStart        = "Start"
	LabelEnd          = "End"
	LabelNoOperations = "No operations"
)

// =============================================================================
// Graph - Flowchart Serialization
// =============================================================================

// Graph is the canonical serialization format for function flowcharts.
// Used for JSON export, API responses, caching, and DOT rendering input.
//
// The format is designed for round-trip fidelity: build → export →
// re-import produces identical results.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// =============================================================================
// Node
// =============================================================================

// Node is a single flowchart element. Cluster groups nodes into their
// function subgraph; ClusterMeta is set only on a cluster's Start node and
// carries the data needed to label the subgraph.
type Node struct {
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	Shape       string       `json:"shape"`
	FillColor   string       `json:"fill_color,omitempty"`
	Cluster     string       `json:"cluster,omitempty"`
	ClusterMeta *ClusterMeta `json:"cluster_meta,omitempty"`
}

// ClusterMeta describes the function a cluster represents.
type ClusterMeta struct {
	Name   string   `json:"name"`
	Params []string `json:"params,omitempty"`
}

// =============================================================================
// Edge - Directed Flow
// =============================================================================

// Edge represents a directed edge in the flowchart.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// =============================================================================
// Lookup Helpers
// =============================================================================

// FindNode returns the node with the given ID, or nil if absent.
func (g *Graph) FindNode(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Clusters returns cluster IDs in first-seen node order.
func (g *Graph) Clusters() []string {
	seen := make(map[string]bool)
	var out []string
	for i := range g.Nodes {
		c := g.Nodes[i].Cluster
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// ClusterNodes returns the nodes belonging to a cluster, in insertion order.
func (g *Graph) ClusterNodes(cluster string) []Node {
	var out []Node
	for i := range g.Nodes {
		if g.Nodes[i].Cluster == cluster {
			out = append(out, g.Nodes[i])
		}
	}
	return out
}

// Unmarshal deserializes JSON bytes to a Graph.
func Unmarshal(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}
