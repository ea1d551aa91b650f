// Package flowgraph provides the directed-graph model for function flowcharts.
//
// This package defines the canonical format for Code Clarified's graph data,
// used for JSON export, API responses, caching, and as the input to the DOT
// renderer.
//
// # Architecture
//
// The package sits between structural extraction and rendering:
//
//   - pkg/flow.Structure: Extracted per-function steps (input)
//   - [Graph], [Node], [Edge]: Graph model (this package)
//   - pkg/render/dot: DOT and image output (consumer)
//
// Use [Build] to convert a flow structure into a graph.
//
// # Graph Shape
//
// Each function becomes one cluster containing a single linear chain:
//
//	Start → step 1 → step 2 → ... → End
//
// A function with no recorded steps gets a single placeholder node between
// Start and End. Node identifiers are derived from the function name and
// step position, so building the same structure twice yields byte-identical
// output.
//
// # Serialization
//
// Graphs use a node-link JSON format:
//
//	{
//	  "nodes": [{"id": "func_f_start", "label": "Start", ...}],
//	  "edges": [{"from": "func_f_start", "to": "func_f_step_0"}]
//	}
//
// Common operations:
//
//	data, _ := flowgraph.Marshal(g)          // Graph → []byte
//	g, _ := flowgraph.Unmarshal(data)        // []byte → Graph
//	flowgraph.WriteFile(g, "graph.json")     // Graph → file
//
// # Constants
//
// This package is the single source of truth for node shapes and colors:
//
//	flowgraph.ShapeEllipse    // terminators
//	flowgraph.ShapeDiamond    // decisions
//	flowgraph.ShapeBox        // loops, returns
//	flowgraph.ShapePlaintext  // empty-body placeholder
//
// # Concurrency
//
// Graph values are safe for concurrent reads but not concurrent writes.
package flowgraph
