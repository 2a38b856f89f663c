// Package report defines the aggregate analysis report and its output
// formats.
//
// A Report is the stable shape handed to renderers, the HTTP API, and
// the report store: the graph data in serializable form plus the four
// analysis results. Rendering never reaches back into the analysis
// packages; everything a formatter needs is on the Report.
package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/archscope/archscope/pkg/analysis/boundary"
	"github.com/archscope/archscope/pkg/analysis/circular"
	"github.com/archscope/archscope/pkg/analysis/cohesion"
	"github.com/archscope/archscope/pkg/analysis/coupling"
	"github.com/archscope/archscope/pkg/depgraph"
)

// Format names for rendered reports.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// ValidFormats is the set of supported report formats.
var ValidFormats = map[string]bool{
	FormatText:     true,
	FormatJSON:     true,
	FormatMarkdown: true,
}

// GraphNode is the serializable form of one file node.
type GraphNode struct {
	ID    string `json:"id" bson:"id"`
	Label string `json:"label" bson:"label"`
	// External lists the external packages this file imports, so
	// diagram renderers can draw the file-to-package links.
	External []string `json:"external,omitempty" bson:"external,omitempty"`
}

// GraphData is the serializable dependency graph consumed by diagram
// renderers and API clients: node ids, display names, edges, and the
// external package set.
type GraphData struct {
	Nodes    []GraphNode     `json:"nodes" bson:"nodes"`
	Edges    []depgraph.Edge `json:"edges" bson:"edges"`
	External []string        `json:"external,omitempty" bson:"external,omitempty"`
}

// Timings records per-stage durations for one run.
type Timings struct {
	Scan     time.Duration `json:"scan" bson:"scan"`
	Build    time.Duration `json:"build" bson:"build"`
	Analyze  time.Duration `json:"analyze" bson:"analyze"`
	Boundary time.Duration `json:"boundary" bson:"boundary"`
}

// Report is the complete result of one analysis run.
type Report struct {
	ID        string    `json:"id" bson:"_id"`
	Root      string    `json:"root" bson:"root"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	Stats    depgraph.Stats     `json:"stats" bson:"stats"`
	Warnings []depgraph.Warning `json:"warnings,omitempty" bson:"warnings,omitempty"`
	Graph    GraphData          `json:"graph" bson:"graph"`

	Circular   circular.Result `json:"circular" bson:"circular"`
	Coupling   coupling.Result `json:"coupling" bson:"coupling"`
	Cohesion   cohesion.Result `json:"cohesion" bson:"cohesion"`
	Boundaries boundary.Result `json:"boundaries" bson:"boundaries"`

	Timings Timings `json:"timings" bson:"timings"`
}

// New assembles a report from a built graph and the analysis results.
// The report gets a fresh UUID and timestamp.
func New(g *depgraph.Graph, circ circular.Result, coup coupling.Result, coh cohesion.Result, bound boundary.Result) *Report {
	return &Report{
		ID:         uuid.NewString(),
		Root:       g.Root(),
		CreatedAt:  time.Now().UTC(),
		Stats:      g.Stats(),
		Warnings:   g.Warnings(),
		Graph:      GraphFrom(g),
		Circular:   circ,
		Coupling:   coup,
		Cohesion:   coh,
		Boundaries: bound,
	}
}

// GraphFrom converts a built graph to its serializable form.
// Nodes are emitted in sorted path order for deterministic output.
func GraphFrom(g *depgraph.Graph) GraphData {
	data := GraphData{
		Edges:    g.Edges(),
		External: g.ExternalDeps(),
	}
	for _, path := range g.Files() {
		node := GraphNode{ID: path, Label: path}
		if n, ok := g.Node(path); ok {
			if n.RelPath != "" {
				node.Label = n.RelPath
			}
			node.External = n.External
		}
		data.Nodes = append(data.Nodes, node)
	}
	return data
}

// RenderJSON renders the report as indented JSON.
func (r *Report) RenderJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
