// Package boundary proposes service decompositions for a dependency
// graph.
//
// The clustering is a heuristic, not an exact optimization: directory
// modules seed the clusters, clusters that are too entangled to
// separate get merged, and files pulled in by several clusters are
// flagged as shared-kernel candidates instead of being assigned to any
// single service. Thresholds and weights are tunable configuration;
// only the algorithm shape is fixed.
package boundary

import (
	"fmt"
	"sort"

	"github.com/archscope/archscope/pkg/analysis/cohesion"
	"github.com/archscope/archscope/pkg/analysis/coupling"
	"github.com/archscope/archscope/pkg/depgraph"
)

// Defaults for the clustering heuristics.
const (
	// DefaultMergeRatio is the bidirectional-edge ratio above which two
	// clusters are considered too entangled to separate.
	DefaultMergeRatio = 0.3
	// DefaultKeepCohesion is the cohesion above which a seed cluster is
	// left as-is and never merged away.
	DefaultKeepCohesion = 0.7
	// DefaultMaxShare is the share of all files above which a cluster
	// is penalized as too large.
	DefaultMaxShare = 0.4
	// DefaultMinFiles is the size below which a cluster is penalized as
	// too small to deploy on its own.
	DefaultMinFiles = 2
)

// Options tunes the clustering heuristics. Zero values use defaults.
type Options struct {
	MergeRatio   float64
	KeepCohesion float64
	MaxShare     float64
	MinFiles     int
	// CohesionWeight and CouplingWeight control the quality score mix.
	// They default to 60/40.
	CohesionWeight float64
	CouplingWeight float64
	// Depth is the directory depth used for seeding; it should match
	// the cohesion analysis depth. Default 1.
	Depth int
}

func (o Options) withDefaults() Options {
	if o.MergeRatio <= 0 {
		o.MergeRatio = DefaultMergeRatio
	}
	if o.KeepCohesion <= 0 {
		o.KeepCohesion = DefaultKeepCohesion
	}
	if o.MaxShare <= 0 {
		o.MaxShare = DefaultMaxShare
	}
	if o.MinFiles <= 0 {
		o.MinFiles = DefaultMinFiles
	}
	if o.CohesionWeight <= 0 && o.CouplingWeight <= 0 {
		o.CohesionWeight, o.CouplingWeight = 0.6, 0.4
	}
	if o.Depth <= 0 {
		o.Depth = 1
	}
	return o
}

// ServiceCluster is one proposed independently deployable service.
type ServiceCluster struct {
	Name      string   `json:"name" bson:"name"`
	Files     []string `json:"files" bson:"files"`
	FileCount int      `json:"file_count" bson:"file_count"`
	// Dependencies are the names of other clusters this one has
	// outgoing edges into.
	Dependencies []string `json:"dependencies,omitempty" bson:"dependencies,omitempty"`
	// Quality is a weighted score in [0,100]: higher cohesion raises
	// it, external-coupling density and unreasonable size lower it.
	Quality float64 `json:"quality" bson:"quality"`
}

// Suggestion is a derived fact about the proposed decomposition, not a
// prescription.
type Suggestion struct {
	Clusters []string `json:"clusters" bson:"clusters"`
	Message  string   `json:"message" bson:"message"`
}

// Result is the boundary analysis output. Every file in the graph is
// either in exactly one service's Files or in Shared, never both and
// never neither.
type Result struct {
	Services    []ServiceCluster `json:"services" bson:"services"`
	Shared      []string         `json:"shared,omitempty" bson:"shared,omitempty"`
	Suggestions []Suggestion     `json:"suggestions,omitempty" bson:"suggestions,omitempty"`
}

// cluster is the mutable working state during merging.
type cluster struct {
	name  string
	files map[string]struct{}
}

// Detect proposes service clusters for the graph, using the coupling
// and cohesion results plus the raw graph. The coupling result's
// afferent counts screen shared-kernel candidates: a file fewer than
// two files import can never span two clusters.
//
// The merge loop is bounded by the number of seed clusters: each merge
// strictly reduces the cluster count, so it always converges without an
// iteration cap.
func Detect(g *depgraph.Graph, coup coupling.Result, coh cohesion.Result, opts Options) Result {
	opts = opts.withDefaults()

	if g.NodeCount() == 0 {
		return Result{}
	}

	afferent := make(map[string]int, g.NodeCount())
	for _, m := range coup.Files {
		afferent[m.Path] = m.Afferent
	}
	for _, path := range g.Files() {
		if _, ok := afferent[path]; !ok {
			afferent[path] = len(g.ImportersOf(path))
		}
	}

	seedCohesion := make(map[string]float64, len(coh.Modules))
	depth := opts.Depth
	for _, m := range coh.Modules {
		seedCohesion[m.Name] = m.Cohesion
	}

	// Seed clusters from the directory modules.
	clusters := make(map[string]*cluster)
	clusterOf := make(map[string]string, g.NodeCount())
	for _, path := range g.Files() {
		rel := path
		if n, ok := g.Node(path); ok {
			rel = n.RelPath
		}
		name := cohesion.ModuleOf(rel, depth)
		c, ok := clusters[name]
		if !ok {
			c = &cluster{name: name, files: make(map[string]struct{})}
			clusters[name] = c
		}
		c.files[path] = struct{}{}
		clusterOf[path] = name
	}

	// Files pulled in by several seed clusters would otherwise drag
	// their importers together; their edges are excluded from the
	// entanglement ratio so the shared kernel never forces a merge.
	sharedSeed := make(map[string]struct{})
	for _, path := range g.Files() {
		if afferent[path] < 2 {
			continue
		}
		importers := make(map[string]struct{})
		for _, imp := range g.ImportersOf(path) {
			importers[clusterOf[imp]] = struct{}{}
		}
		if len(importers) >= 2 {
			sharedSeed[path] = struct{}{}
		}
	}

	mergeEntangled(g, clusters, clusterOf, seedCohesion, sharedSeed, opts)
	return finalize(g, clusters, clusterOf, afferent, opts)
}

// mergeEntangled repeatedly merges the most entangled cluster pair
// until no pair crosses the merge ratio.
func mergeEntangled(g *depgraph.Graph, clusters map[string]*cluster, clusterOf map[string]string, seedCohesion map[string]float64, sharedSeed map[string]struct{}, opts Options) {
	for {
		from, to, ok := findMerge(g, clusters, clusterOf, seedCohesion, sharedSeed, opts)
		if !ok {
			return
		}
		src, dst := clusters[from], clusters[to]
		for f := range src.files {
			dst.files[f] = struct{}{}
			clusterOf[f] = to
		}
		delete(clusters, from)
	}
}

// findMerge returns the next cluster pair to merge, preferring the
// highest entanglement ratio. Pairs where both sides are cohesive
// enough to stand alone are skipped, as are edges touching shared-seed
// files. Ties break on the lexicographically smallest pair, keeping the
// merge order deterministic.
func findMerge(g *depgraph.Graph, clusters map[string]*cluster, clusterOf map[string]string, seedCohesion map[string]float64, sharedSeed map[string]struct{}, opts Options) (from, to string, ok bool) {
	internal := make(map[string]int, len(clusters))
	between := make(map[[2]string]int)

	for _, e := range g.Edges() {
		if _, s := sharedSeed[e.From]; s {
			continue
		}
		if _, s := sharedSeed[e.To]; s {
			continue
		}
		a, b := clusterOf[e.From], clusterOf[e.To]
		if a == b {
			internal[a]++
			continue
		}
		key := [2]string{min(a, b), max(a, b)}
		between[key]++
	}

	pairs := make([][2]string, 0, len(between))
	for p := range between {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	bestRatio := 0.0
	var bestPair [2]string
	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		if seedCohesion[a] >= opts.KeepCohesion && seedCohesion[b] >= opts.KeepCohesion {
			continue
		}
		inside := internal[a] + internal[b]
		if inside == 0 {
			inside = 1
		}
		ratio := float64(between[pair]) / float64(inside)
		if ratio > opts.MergeRatio && ratio > bestRatio {
			bestRatio = ratio
			bestPair = pair
		}
	}
	if bestRatio == 0 {
		return "", "", false
	}

	// Merge the smaller cluster into the larger to keep names stable.
	a, b := bestPair[0], bestPair[1]
	if len(clusters[a].files) > len(clusters[b].files) {
		return b, a, true
	}
	return a, b, true
}

// finalize extracts shared-kernel files, computes per-cluster scores
// and dependencies, and derives suggestions.
func finalize(g *depgraph.Graph, clusters map[string]*cluster, clusterOf map[string]string, afferent map[string]int, opts Options) Result {
	// A file imported from two or more final clusters belongs to the
	// shared kernel, not to any single service. The afferent counts from
	// the coupling analysis rule out single-importer files up front.
	shared := make(map[string]struct{})
	for _, path := range g.Files() {
		if afferent[path] < 2 {
			continue
		}
		importers := make(map[string]struct{})
		for _, imp := range g.ImportersOf(path) {
			importers[clusterOf[imp]] = struct{}{}
		}
		if len(importers) >= 2 {
			shared[path] = struct{}{}
		}
	}

	for path := range shared {
		delete(clusters[clusterOf[path]].files, path)
	}

	names := make([]string, 0, len(clusters))
	for name, c := range clusters {
		if len(c.files) == 0 {
			delete(clusters, name)
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	totalFiles := g.NodeCount()
	res := Result{}

	// Cluster-to-cluster edges over the final service sets.
	deps := make(map[string]map[string]struct{})
	crossing := make(map[string]int)
	internal := make(map[string]int)
	for _, e := range g.Edges() {
		if _, s := shared[e.From]; s {
			continue
		}
		if _, s := shared[e.To]; s {
			continue
		}
		a, b := clusterOf[e.From], clusterOf[e.To]
		if a == b {
			internal[a]++
			continue
		}
		if deps[a] == nil {
			deps[a] = make(map[string]struct{})
		}
		deps[a][b] = struct{}{}
		crossing[a]++
		crossing[b]++
	}

	for _, name := range names {
		c := clusters[name]
		files := make([]string, 0, len(c.files))
		for f := range c.files {
			files = append(files, displayPath(g, f))
		}
		sort.Strings(files)

		var depNames []string
		for d := range deps[name] {
			depNames = append(depNames, d)
		}
		sort.Strings(depNames)

		res.Services = append(res.Services, ServiceCluster{
			Name:         serviceName(name),
			Files:        files,
			FileCount:    len(files),
			Dependencies: serviceNames(depNames),
			Quality:      quality(len(c.files), totalFiles, internal[name], crossing[name], opts),
		})
	}

	for path := range shared {
		res.Shared = append(res.Shared, displayPath(g, path))
	}
	sort.Strings(res.Shared)

	res.Suggestions = suggest(deps)
	return res
}

// quality scores a cluster in [0,100] from its cohesion, its external
// coupling density, and a size-reasonableness penalty.
func quality(size, totalFiles, internal, crossing int, opts Options) float64 {
	cohesionScore := 1.0
	if internal+crossing > 0 {
		cohesionScore = float64(internal) / float64(internal+crossing)
	}
	couplingScore := 1.0
	if size > 0 {
		density := float64(crossing) / float64(size)
		couplingScore = 1.0 / (1.0 + density)
	}

	score := 100 * (opts.CohesionWeight*cohesionScore + opts.CouplingWeight*couplingScore)

	if size < opts.MinFiles {
		score *= 0.5
	}
	if totalFiles > 0 && float64(size) > opts.MaxShare*float64(totalFiles) {
		score *= 0.7
	}

	if score > 100 {
		score = 100
	}
	return score
}

// suggest reports cluster pairs that depend on each other in both
// directions: a cycle at the service level and a merge candidate.
func suggest(deps map[string]map[string]struct{}) []Suggestion {
	var out []Suggestion
	seen := make(map[[2]string]struct{})
	names := make([]string, 0, len(deps))
	for n := range deps {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, a := range names {
		for b := range deps[a] {
			if _, back := deps[b][a]; !back {
				continue
			}
			key := [2]string{min(a, b), max(a, b)}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, Suggestion{
				Clusters: []string{serviceName(key[0]), serviceName(key[1])},
				Message: fmt.Sprintf("services %q and %q depend on each other in both directions; consider merging them or extracting the shared parts",
					serviceName(key[0]), serviceName(key[1])),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Clusters[0] < out[j].Clusters[0]
	})
	return out
}

func displayPath(g *depgraph.Graph, path string) string {
	if n, ok := g.Node(path); ok && n.RelPath != "" {
		return n.RelPath
	}
	return path
}

// serviceName turns a module directory name into a service label.
// The root module "." becomes "root".
func serviceName(module string) string {
	if module == "." {
		return "root"
	}
	return module
}

func serviceNames(modules []string) []string {
	if len(modules) == 0 {
		return nil
	}
	out := make([]string, len(modules))
	for i, m := range modules {
		out[i] = serviceName(m)
	}
	return out
}
