// Package render groups the visualization backends for flow graphs.
//
// # Overview
//
// Rendering is a two-step process: the graph model is first serialized to
// the Graphviz DOT language, then rasterized to SVG or PNG. Both steps live
// in the [dot] subpackage:
//
//	out := dot.ToDOT(g)
//	svg, err := dot.RenderSVG(ctx, out)
//	png, err := dot.RenderPNG(ctx, out)
//
// Rasterization runs in-process via the embedded Graphviz engine, so no
// external binaries are required.
//
// [dot]: https://pkg.go.dev/github.com/yashsidana/code-clarified/pkg/render/dot
package render
