// Package pkg provides the core libraries for Code Clarified flowchart generation.
//
// # Overview
//
// Code Clarified turns Python source code into control-flow diagrams with an
// optional plain-English explanation. The pkg directory is organized around
// the stages of that pipeline:
//
//  1. [pysrc] - Python parsing (tree-sitter)
//  2. [flow] - Structural extraction (per-function decisions, loops, returns)
//  3. [flowgraph] - Directed graph model with per-function clusters
//  4. [render/dot] - Graphviz DOT generation and SVG/PNG rasterization
//  5. [summarize] - AI code explanations via the Gemini API
//  6. [pipeline] - Orchestration used by the CLI and HTTP server
//
// # Architecture
//
// The typical data flow:
//
//	Python source
//	         ↓
//	    [pysrc] package (parse to a syntax tree)
//	         ↓
//	    [flow] package (extract function structures)
//	         ↓
//	    [flowgraph] package (build the node/edge model)
//	         ↓
//	    [render/dot] package (DOT → SVG/PNG)
//	         ↓
//	    PNG/SVG/DOT/JSON output
//
// # Quick Start
//
// Analyze a snippet and render it to DOT:
//
//	import (
//	    "github.com/yashsidana/code-clarified/pkg/flow"
//	    "github.com/yashsidana/code-clarified/pkg/flowgraph"
//	    "github.com/yashsidana/code-clarified/pkg/pysrc"
//	    "github.com/yashsidana/code-clarified/pkg/render/dot"
//	)
//
//	tree, _ := pysrc.Parse(ctx, source)
//	structure := flow.Extract(tree)
//	g := flowgraph.Build(structure)
//	out := dot.ToDOT(g)
//
// Or run the whole pipeline, caching included:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, _ := runner.Execute(ctx, pipeline.Options{Source: source})
//
// # Supporting Packages
//
// [cache] - Result caching with file, Redis, and no-op backends.
//
// [errors] - Structured errors with stable codes and user-facing messages.
//
// [httputil] - HTTP response caching and retry helpers for external APIs.
//
// [observability] - Hook registries for instrumenting the pipeline, cache,
// and outbound HTTP without coupling the libraries to a metrics stack.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/flow/...     # Specific package
//
// [pysrc]: https://pkg.go.dev/github.com/yashsidana/code-clarified/pkg/pysrc
// [flow]: https://pkg.go.dev/github.com/yashsidana/code-clarified/pkg/flow
// [flowgraph]: https://pkg.go.dev/github.com/yashsidana/code-clarified/pkg/flowgraph
// [render/dot]: https://pkg.go.dev/github.com/yashsidana/code-clarified/pkg/render/dot
// [summarize]: https://pkg.go.dev/github.com/yashsidana/code-clarified/pkg/summarize
// [pipeline]: https://pkg.go.dev/github.com/yashsidana/code-clarified/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/yashsidana/code-clarified/pkg/cache
// [errors]: https://pkg.go.dev/github.com/yashsidana/code-clarified/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/yashsidana/code-clarified/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/yashsidana/code-clarified/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/yashsidana/code-clarified/pkg/buildinfo
package pkg
