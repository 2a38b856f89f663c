// Package pkg provides the core libraries for ArchScope dependency analysis.
//
// # Overview
//
// ArchScope scans a JavaScript/TypeScript codebase, builds a file-level
// dependency graph from its import statements, and analyzes the graph for
// structural problems: import cycles, coupling hotspots, low-cohesion
// modules, and candidate service boundaries. The pkg directory is organized
// into four main areas:
//
//  1. [scan] + [depgraph] - Source discovery and graph construction
//  2. [analysis] - Graph analyses (circular, coupling, cohesion, boundary)
//  3. [pipeline] - Orchestration (scan → build → analyze → boundaries)
//  4. [report] + [render] - Result aggregation and output formats
//
// # Architecture
//
// The typical data flow through ArchScope:
//
//	Source tree
//	         ↓
//	    [scan] package (enumerate candidate files)
//	         ↓
//	    [depgraph] package (extract + resolve imports, build graph)
//	         ↓
//	    [analysis] packages (cycles, coupling, cohesion, boundaries)
//	         ↓
//	    [report] package (aggregate, render text/JSON/markdown)
//
// # Quick Start
//
// Run the full pipeline and print a report:
//
//	import (
//	    "context"
//	    "github.com/archscope/archscope/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	rep, cached, err := runner.Execute(context.Background(), pipeline.Options{
//	    Root: "./src",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(rep.RenderText())
//
// # Main Packages
//
// [scan] - Walks the root directory collecting source files by extension,
// honoring .gitignore plus configured ignore directories and patterns.
//
// [depgraph] - Import extraction (ES imports, re-exports, require, dynamic
// import), relative-path resolution with the extension and index-file
// probing order, and concurrent graph construction.
//
// [analysis/circular] - DFS cycle detection with canonical rotation and
// break suggestions.
//
// [analysis/coupling] - Afferent/efferent coupling and instability per file,
// hub and highly-coupled listings.
//
// [analysis/cohesion] - Directory-module cohesion ratios and low-cohesion
// flagging.
//
// [analysis/boundary] - Service boundary clustering: seed by directory,
// merge entangled clusters, extract shared kernels, score quality.
//
// [pipeline] - The shared Runner used by CLI and API, with report caching.
//
// [report] - The aggregate Report type and its text, JSON, and markdown
// renderers.
//
// [render/dot] - Graphviz DOT generation and SVG/PNG rendering for diagrams.
//
// ## Infrastructure
//
// [cache] - Cache interface with file, Redis, and null backends plus
// deterministic key derivation.
//
// [store] - Report archival for the API server (memory and MongoDB).
//
// [config] - TOML configuration for scan settings and analysis thresholds.
//
// [errors] - Structured errors with stable codes and user-facing messages.
//
// [observability] - Pluggable hooks for analysis and cache instrumentation.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/depgraph/...     # Specific package
//
// [scan]: https://pkg.go.dev/github.com/archscope/archscope/pkg/scan
// [depgraph]: https://pkg.go.dev/github.com/archscope/archscope/pkg/depgraph
// [analysis]: https://pkg.go.dev/github.com/archscope/archscope/pkg/analysis
// [analysis/circular]: https://pkg.go.dev/github.com/archscope/archscope/pkg/analysis/circular
// [analysis/coupling]: https://pkg.go.dev/github.com/archscope/archscope/pkg/analysis/coupling
// [analysis/cohesion]: https://pkg.go.dev/github.com/archscope/archscope/pkg/analysis/cohesion
// [analysis/boundary]: https://pkg.go.dev/github.com/archscope/archscope/pkg/analysis/boundary
// [pipeline]: https://pkg.go.dev/github.com/archscope/archscope/pkg/pipeline
// [report]: https://pkg.go.dev/github.com/archscope/archscope/pkg/report
// [render]: https://pkg.go.dev/github.com/archscope/archscope/pkg/render
// [render/dot]: https://pkg.go.dev/github.com/archscope/archscope/pkg/render/dot
// [cache]: https://pkg.go.dev/github.com/archscope/archscope/pkg/cache
// [store]: https://pkg.go.dev/github.com/archscope/archscope/pkg/store
// [config]: https://pkg.go.dev/github.com/archscope/archscope/pkg/config
// [errors]: https://pkg.go.dev/github.com/archscope/archscope/pkg/errors
// [observability]: https://pkg.go.dev/github.com/archscope/archscope/pkg/observability
package pkg
