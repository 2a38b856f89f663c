// Package dot renders dependency graphs as Graphviz diagrams.
//
// The renderer consumes the serializable graph shape from pkg/report,
// so it never touches the live Graph: node ids, display labels, edges,
// plus optional cycle and boundary data. Cycle edges are drawn in red;
// boundary clusters become Graphviz subgraphs.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/archscope/archscope/pkg/analysis/boundary"
	"github.com/archscope/archscope/pkg/analysis/circular"
	"github.com/archscope/archscope/pkg/report"
)

// Options configures diagram generation.
type Options struct {
	// Cycles highlights the edges participating in the given cycles.
	Cycles []circular.Cycle
	// Boundaries draws each service cluster as a subgraph.
	Boundaries *boundary.Result
	// ShowExternal adds a node per external package plus dashed links
	// from the files importing it.
	ShowExternal bool
}

// ToDOT converts graph data to Graphviz DOT format.
func ToDOT(g report.GraphData, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.15,0.08\"];\n")
	buf.WriteString("\n")

	labels := make(map[string]string, len(g.Nodes))
	clusterOf := clusterIndex(opts.Boundaries)
	emitted := make(map[string]struct{})

	if opts.Boundaries != nil {
		for i, svc := range opts.Boundaries.Services {
			fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
			fmt.Fprintf(&buf, "    label=%q;\n", svc.Name)
			buf.WriteString("    style=dashed;\n")
			for _, n := range g.Nodes {
				labels[n.ID] = n.Label
				if clusterOf[n.Label] == svc.Name {
					fmt.Fprintf(&buf, "    %q [label=%q];\n", n.ID, n.Label)
					emitted[n.ID] = struct{}{}
				}
			}
			buf.WriteString("  }\n")
		}
	}

	for _, n := range g.Nodes {
		labels[n.ID] = n.Label
		if _, done := emitted[n.ID]; done {
			continue
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, n.Label)
	}

	buf.WriteString("\n")
	cycleEdges := cycleEdgeSet(opts.Cycles)
	for _, e := range g.Edges {
		if _, hot := cycleEdges[[2]string{e.From, e.To}]; hot {
			fmt.Fprintf(&buf, "  %q -> %q [color=red, penwidth=2];\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	if opts.ShowExternal {
		buf.WriteString("\n")
		ext := append([]string(nil), g.External...)
		sort.Strings(ext)
		for _, pkg := range ext {
			fmt.Fprintf(&buf, "  %q [style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n", "ext:"+pkg)
		}
		for _, n := range g.Nodes {
			for _, pkg := range n.External {
				fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=grey];\n", n.ID, "ext:"+pkg)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// cycleEdgeSet collects the directed edges that close each cycle,
// including the wrap-around edge.
func cycleEdgeSet(cycles []circular.Cycle) map[[2]string]struct{} {
	set := make(map[[2]string]struct{})
	for _, c := range cycles {
		for i, from := range c.Paths {
			to := c.Paths[(i+1)%len(c.Paths)]
			set[[2]string{from, to}] = struct{}{}
		}
	}
	return set
}

// clusterIndex maps a file's display label to its service name.
// Boundary results carry relative paths, which match node labels.
func clusterIndex(res *boundary.Result) map[string]string {
	idx := make(map[string]string)
	if res == nil {
		return idx
	}
	for _, svc := range res.Services {
		for _, f := range svc.Files {
			idx[f] = svc.Name
		}
	}
	return idx
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer func() { _ = g.Close() }()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatNames lists the diagram output formats accepted by the CLI.
func FormatNames() string { return strings.Join([]string{"dot", "svg", "png"}, ", ") }
