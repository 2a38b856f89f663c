// Package cohesion groups files into directory modules and measures how
// self-contained each module is.
//
// A module's cohesion is the share of its edges that stay inside it:
// internal/(internal+external). A module whose every coupling is
// internal scores 1.0; a module with no edges at all scores 0 and is
// flagged separately rather than being treated as perfectly cohesive.
package cohesion

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/archscope/archscope/pkg/depgraph"
)

// DefaultLowThreshold is the cohesion score below which a module lands
// in the low-cohesion list.
const DefaultLowThreshold = 0.5

// Options tunes module grouping and the low-cohesion cutoff.
type Options struct {
	// Depth is how many leading path segments of the relative path form
	// the module name. Default 1: one module per top-level directory.
	Depth int
	// LowThreshold overrides DefaultLowThreshold when > 0.
	LowThreshold float64
}

func (o Options) withDefaults() Options {
	if o.Depth <= 0 {
		o.Depth = 1
	}
	if o.LowThreshold <= 0 {
		o.LowThreshold = DefaultLowThreshold
	}
	return o
}

// Module is a directory-scoped grouping of files with its edge counts.
type Module struct {
	Name         string   `json:"name" bson:"name"`
	Files        []string `json:"files" bson:"files"`
	InternalDeps int      `json:"internal_deps" bson:"internal_deps"`
	ExternalDeps int      `json:"external_deps" bson:"external_deps"`
	Cohesion     float64  `json:"cohesion" bson:"cohesion"`
	// NoEdges marks modules that neither import nor are imported.
	// Their cohesion is reported as 0, not 1.0.
	NoEdges bool `json:"no_edges,omitempty" bson:"no_edges,omitempty"`
}

// Summary carries the headline metric used by the orchestrator.
type Summary struct {
	AverageCohesion float64 `json:"average_cohesion" bson:"average_cohesion"`
}

// Result is the cohesion analysis for one graph.
type Result struct {
	Modules     []Module `json:"modules" bson:"modules"`
	LowCohesion []Module `json:"low_cohesion,omitempty" bson:"low_cohesion,omitempty"`
	Summary     Summary  `json:"summary" bson:"summary"`
}

// ModuleOf returns the module name for a file's relative path at the
// given depth. Files directly in the root map to ".".
func ModuleOf(relPath string, depth int) string {
	dir := filepath.Dir(relPath)
	if dir == "." || dir == string(filepath.Separator) {
		return "."
	}
	parts := strings.Split(dir, string(filepath.Separator))
	if len(parts) > depth {
		parts = parts[:depth]
	}
	return filepath.Join(parts...)
}

// Analyze partitions the graph's files into directory modules and
// scores each one. An empty graph yields an empty result.
func Analyze(g *depgraph.Graph, opts Options) Result {
	opts = opts.withDefaults()

	moduleOf := make(map[string]string, g.NodeCount()) // abs path -> module
	filesByModule := make(map[string][]string)
	for _, path := range g.Files() {
		rel := path
		if n, ok := g.Node(path); ok {
			rel = n.RelPath
		}
		name := ModuleOf(rel, opts.Depth)
		moduleOf[path] = name
		filesByModule[name] = append(filesByModule[name], rel)
	}

	internal := make(map[string]int)
	external := make(map[string]int)
	for _, e := range g.Edges() {
		from, to := moduleOf[e.From], moduleOf[e.To]
		if from == to {
			internal[from]++
			continue
		}
		// Crossing edges count against both endpoint modules.
		external[from]++
		external[to]++
	}

	names := make([]string, 0, len(filesByModule))
	for name := range filesByModule {
		names = append(names, name)
	}
	sort.Strings(names)

	res := Result{Modules: make([]Module, 0, len(names))}
	var total float64
	for _, name := range names {
		m := Module{
			Name:         name,
			Files:        filesByModule[name],
			InternalDeps: internal[name],
			ExternalDeps: external[name],
		}
		sort.Strings(m.Files)

		switch {
		case m.InternalDeps == 0 && m.ExternalDeps == 0:
			m.NoEdges = true
		case m.ExternalDeps == 0:
			m.Cohesion = 1.0
		default:
			m.Cohesion = float64(m.InternalDeps) / float64(m.InternalDeps+m.ExternalDeps)
		}

		total += m.Cohesion
		res.Modules = append(res.Modules, m)
		if !m.NoEdges && m.Cohesion < opts.LowThreshold {
			res.LowCohesion = append(res.LowCohesion, m)
		}
	}

	sort.SliceStable(res.LowCohesion, func(i, j int) bool {
		return res.LowCohesion[i].Cohesion < res.LowCohesion[j].Cohesion
	})

	if len(res.Modules) > 0 {
		res.Summary.AverageCohesion = total / float64(len(res.Modules))
	}
	return res
}
