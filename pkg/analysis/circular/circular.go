// Package circular detects import cycles in a dependency graph.
//
// The detector is a DFS back-edge finder, not an exhaustive
// elementary-cycle enumerator: it reports one representative cycle per
// cyclic region, which avoids exponential blowup on densely cyclic
// graphs while still pointing at every region that needs untangling.
package circular

import (
	"fmt"
	"slices"

	"github.com/archscope/archscope/pkg/depgraph"
)

// Cycle is an ordered sequence of file paths where consecutive entries
// are connected by an edge and the last connects back to the first.
// Cycles are canonicalized to start at the lexicographically smallest
// path so the same cycle discovered from different entry points
// compares equal.
type Cycle struct {
	Paths []string `json:"paths" bson:"paths"`
}

// Suggestion proposes one edge to break in a detected cycle.
// The candidate is the outgoing cycle edge of the member with the
// fewest importers outside the cycle, i.e. the node cheapest to
// refactor.
type Suggestion struct {
	From   string `json:"from" bson:"from"`
	To     string `json:"to" bson:"to"`
	Reason string `json:"reason" bson:"reason"`
}

// Result is the outcome of cycle detection on one graph.
type Result struct {
	HasCycles   bool         `json:"has_cycles" bson:"has_cycles"`
	CycleCount  int          `json:"cycle_count" bson:"cycle_count"`
	Cycles      []Cycle      `json:"cycles,omitempty" bson:"cycles,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty" bson:"suggestions,omitempty"`
}

// Detect finds cycles in g using depth-first traversal from every
// unvisited node, keeping an explicit stack of the current path. A
// back-edge to a node already on the stack identifies a cycle: the
// stack slice from that node to the top.
//
// Detection is deterministic and idempotent: nodes are visited in
// sorted order and cycles are deduplicated by canonical form, so two
// runs over the same graph yield the same result.
func Detect(g *depgraph.Graph) Result {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	onStack := make(map[string]int) // path -> stack position
	var stack []string
	var cycles []Cycle
	seen := make(map[string]struct{})

	var dfs func(path string)
	dfs = func(path string) {
		color[path] = gray
		onStack[path] = len(stack)
		stack = append(stack, path)

		for _, next := range g.ImportsOf(path) {
			switch color[next] {
			case white:
				dfs(next)
			case gray:
				cyc := canonicalize(slices.Clone(stack[onStack[next]:]))
				key := cycleKey(cyc)
				if _, dup := seen[key]; !dup {
					seen[key] = struct{}{}
					cycles = append(cycles, cyc)
				}
			}
		}

		stack = stack[:len(stack)-1]
		delete(onStack, path)
		color[path] = black
	}

	for _, path := range g.Files() {
		if color[path] == white {
			dfs(path)
		}
	}

	return Result{
		HasCycles:   len(cycles) > 0,
		CycleCount:  len(cycles),
		Cycles:      cycles,
		Suggestions: suggest(g, cycles),
	}
}

// canonicalize rotates the cycle so the lexicographically smallest path
// comes first.
func canonicalize(paths []string) Cycle {
	min := 0
	for i, p := range paths {
		if p < paths[min] {
			min = i
		}
	}
	rotated := append(slices.Clone(paths[min:]), paths[:min]...)
	return Cycle{Paths: rotated}
}

func cycleKey(c Cycle) string {
	key := ""
	for _, p := range c.Paths {
		key += p + "\x00"
	}
	return key
}

// suggest picks, for each cycle, the member with the fewest importers
// outside the cycle and proposes breaking its outgoing cycle edge.
func suggest(g *depgraph.Graph, cycles []Cycle) []Suggestion {
	var out []Suggestion
	for _, cyc := range cycles {
		member := make(map[string]struct{}, len(cyc.Paths))
		for _, p := range cyc.Paths {
			member[p] = struct{}{}
		}

		best, bestOutside := 0, -1
		for i, p := range cyc.Paths {
			outside := 0
			for _, imp := range g.ImportersOf(p) {
				if _, in := member[imp]; !in {
					outside++
				}
			}
			if bestOutside < 0 || outside < bestOutside {
				best, bestOutside = i, outside
			}
		}

		from := cyc.Paths[best]
		to := cyc.Paths[(best+1)%len(cyc.Paths)]
		out = append(out, Suggestion{
			From: from,
			To:   to,
			Reason: fmt.Sprintf("%s has the fewest dependents outside the cycle (%d); removing its import of %s is the cheapest break",
				display(g, from), bestOutside, display(g, to)),
		})
	}
	return out
}

func display(g *depgraph.Graph, path string) string {
	if n, ok := g.Node(path); ok && n.RelPath != "" {
		return n.RelPath
	}
	return path
}
