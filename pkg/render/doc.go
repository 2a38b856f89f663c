// Package render provides diagram rendering for dependency graphs.
//
// # Overview
//
// This package contains the rendering pipeline that turns an analyzed
// dependency graph into visual outputs:
//
//   - Graphviz DOT generation (in [dot] subpackage)
//   - SVG and PNG rasterization via go-graphviz
//
// # Node-Link Diagrams
//
// The [dot] subpackage renders the file graph as a directed diagram.
// Cycle edges are highlighted in red, detected service boundaries become
// clustered subgraphs, and external packages can be shown as distinct
// nodes.
//
//	src := dot.ToDOT(rep.Graph, dot.Options{Cycles: rep.Circular.Cycles})
//	svg, err := dot.RenderSVG(ctx, src)
//	png, err := dot.RenderPNG(ctx, src)
//
// [dot]: github.com/archscope/archscope/pkg/render/dot
package render
