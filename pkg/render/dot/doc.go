// Package dot renders flowchart graphs as Graphviz DOT, SVG, and PNG.
//
// [ToDOT] produces the diagram description: one subgraph cluster per
// function, labeled with the function signature, holding that function's
// node chain. [RenderSVG] and [RenderPNG] rasterize the DOT text in-process
// using the embedded Graphviz engine, so no external binaries are required.
//
// # Output Stability
//
// ToDOT writes clusters in graph order, nodes in cluster order, and edges
// in graph order. The same graph always produces byte-identical DOT text,
// which makes the output safe to cache and diff.
package dot
