// Package coupling computes afferent/efferent coupling and instability
// metrics over a dependency graph.
//
// All functions are pure reads of the graph's query API, so they can
// run concurrently with the other analyses.
package coupling

import (
	"sort"

	"github.com/archscope/archscope/pkg/depgraph"
)

// Default thresholds for the derived file lists.
const (
	// DefaultHubThreshold is the afferent coupling at which a file
	// counts as a hub.
	DefaultHubThreshold = 3
	// DefaultCoupledThreshold is the total coupling (Ca+Ce) at which a
	// file counts as highly coupled.
	DefaultCoupledThreshold = 4
)

// Options tunes the derived lists. Zero values fall back to defaults.
type Options struct {
	HubThreshold     int
	CoupledThreshold int
}

func (o Options) withDefaults() Options {
	if o.HubThreshold <= 0 {
		o.HubThreshold = DefaultHubThreshold
	}
	if o.CoupledThreshold <= 0 {
		o.CoupledThreshold = DefaultCoupledThreshold
	}
	return o
}

// FileMetrics holds the coupling numbers for one file.
type FileMetrics struct {
	Path     string `json:"path" bson:"path"`
	RelPath  string `json:"rel_path" bson:"rel_path"`
	Afferent int    `json:"afferent" bson:"afferent"` // Ca: files that import this one
	Efferent int    `json:"efferent" bson:"efferent"` // Ce: files this one imports
	// Instability is Ce/(Ca+Ce), 0 for isolated files (never NaN).
	Instability float64 `json:"instability" bson:"instability"`
}

// Total returns Ca+Ce.
func (m FileMetrics) Total() int { return m.Afferent + m.Efferent }

// Result holds the full coupling analysis for one graph.
type Result struct {
	Files         []FileMetrics `json:"files" bson:"files"`
	Hubs          []FileMetrics `json:"hubs,omitempty" bson:"hubs,omitempty"`
	Dependents    []FileMetrics `json:"dependents,omitempty" bson:"dependents,omitempty"`
	Isolated      []FileMetrics `json:"isolated,omitempty" bson:"isolated,omitempty"`
	HighlyCoupled []FileMetrics `json:"highly_coupled,omitempty" bson:"highly_coupled,omitempty"`
}

// AfferentCoupling returns the number of files importing path.
func AfferentCoupling(g *depgraph.Graph, path string) int {
	return len(g.ImportersOf(path))
}

// EfferentCoupling returns the number of files path imports.
func EfferentCoupling(g *depgraph.Graph, path string) int {
	return len(g.ImportsOf(path))
}

// Instability returns Ce/(Ca+Ce) for path, defined as 0 when the file
// has no couplings at all.
func Instability(g *depgraph.Graph, path string) float64 {
	ca := AfferentCoupling(g, path)
	ce := EfferentCoupling(g, path)
	if ca+ce == 0 {
		return 0
	}
	return float64(ce) / float64(ca+ce)
}

// Calculate computes per-file metrics and the derived lists for every
// file in the graph. An empty graph yields empty collections.
func Calculate(g *depgraph.Graph, opts Options) Result {
	opts = opts.withDefaults()

	files := g.Files()
	res := Result{Files: make([]FileMetrics, 0, len(files))}

	for _, path := range files {
		m := FileMetrics{
			Path:        path,
			Afferent:    AfferentCoupling(g, path),
			Efferent:    EfferentCoupling(g, path),
			Instability: Instability(g, path),
		}
		if n, ok := g.Node(path); ok {
			m.RelPath = n.RelPath
		}
		res.Files = append(res.Files, m)

		switch {
		case m.Afferent == 0 && m.Efferent == 0:
			res.Isolated = append(res.Isolated, m)
		}
		if m.Afferent >= opts.HubThreshold {
			res.Hubs = append(res.Hubs, m)
		}
		if m.Efferent >= opts.HubThreshold {
			res.Dependents = append(res.Dependents, m)
		}
		if m.Total() >= opts.CoupledThreshold {
			res.HighlyCoupled = append(res.HighlyCoupled, m)
		}
	}

	sort.SliceStable(res.Hubs, func(i, j int) bool {
		return res.Hubs[i].Afferent > res.Hubs[j].Afferent
	})
	sort.SliceStable(res.Dependents, func(i, j int) bool {
		return res.Dependents[i].Efferent > res.Dependents[j].Efferent
	})
	sort.SliceStable(res.HighlyCoupled, func(i, j int) bool {
		return res.HighlyCoupled[i].Total() > res.HighlyCoupled[j].Total()
	})

	return res
}

// Matrix is a dense adjacency matrix over an explicit file-index map.
// Cell [i][j] is true iff Files[i] imports Files[j]. The index map
// makes membership checks O(1) instead of a linear scan per lookup.
//
// The matrix grows quadratically with the file count, so it is never
// embedded in serialized reports; consumers that need many pairwise
// membership checks build it on demand from a graph.
type Matrix struct {
	Files []string
	Index map[string]int
	Cells [][]bool
}

// BuildMatrix constructs the coupling matrix for the graph.
func BuildMatrix(g *depgraph.Graph) Matrix {
	files := g.Files()
	idx := make(map[string]int, len(files))
	for i, f := range files {
		idx[f] = i
	}

	cells := make([][]bool, len(files))
	for i, from := range files {
		cells[i] = make([]bool, len(files))
		for _, to := range g.ImportsOf(from) {
			if j, ok := idx[to]; ok {
				cells[i][j] = true
			}
		}
	}

	return Matrix{Files: files, Index: idx, Cells: cells}
}

// Imports reports whether from imports to. Unknown paths report false.
func (m Matrix) Imports(from, to string) bool {
	i, okI := m.Index[from]
	j, okJ := m.Index[to]
	return okI && okJ && m.Cells[i][j]
}
