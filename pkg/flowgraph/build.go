package flowgraph

import (
	"fmt"

	"github.com/yashsidana/code-clarified/pkg/flow"
)

// =============================================================================
// Structure → Graph Conversion
// =============================================================================

// Build converts an extracted flow structure into its graph model.
// Functions become clusters in extraction order, each holding one linear
// chain Start → steps → End. Output is deterministic: the same structure
// always produces the same node and edge sequences.
func Build(s *flow.Structure) Graph {
	var g Graph

	for _, fn := range s.Functions() {
		buildFunction(&g, fn)
	}

	return g
}

// buildFunction appends one function cluster to the graph.
func buildFunction(g *Graph, fn flow.FunctionFlow) {
	cluster := "cluster_func_" + fn.Name
	startID := nodeID(fn.Name, "start")
	endID := nodeID(fn.Name, "end")

	g.Nodes = append(g.Nodes, Node{
		ID:        startID,
		Label:     LabelStart,
		Shape:     ShapeEllipse,
		FillColor: ColorStart,
		Cluster:   cluster,
		ClusterMeta: &ClusterMeta{
			Name:   fn.Name,
			Params: fn.Params,
		},
	})

	prev := startID
	if len(fn.Steps) == 0 {
		// Placeholder keeps the Start → End chain visible for empty bodies.
		emptyID := nodeID(fn.Name, "empty")
		g.Nodes = append(g.Nodes, Node{
			ID:      emptyID,
			Label:   LabelNoOperations,
			Shape:   ShapePlaintext,
			Cluster: cluster,
		})
		g.Edges = append(g.Edges, Edge{From: prev, To: emptyID})
		prev = emptyID
	}

	for i, step := range fn.Steps {
		stepID := nodeID(fn.Name, fmt.Sprintf("step_%d", i))
		g.Nodes = append(g.Nodes, Node{
			ID:        stepID,
			Label:     step.Label(),
			Shape:     stepShape(step.Kind),
			FillColor: stepColor(step.Kind),
			Cluster:   cluster,
		})
		g.Edges = append(g.Edges, Edge{From: prev, To: stepID})
		prev = stepID
	}

	g.Nodes = append(g.Nodes, Node{
		ID:        endID,
		Label:     LabelEnd,
		Shape:     ShapeEllipse,
		FillColor: ColorEnd,
		Cluster:   cluster,
	})
	g.Edges = append(g.Edges, Edge{From: prev, To: endID})
}

func nodeID(fnName, suffix string) string {
	return "func_" + fnName + "_" + suffix
}

func stepShape(k flow.StepKind) string {
	if k == flow.KindDecision {
		return ShapeDiamond
	}
	return ShapeBox
}

func stepColor(k flow.StepKind) string {
	if k == flow.KindDecision {
		return ColorDecision
	}
	return ""
}
