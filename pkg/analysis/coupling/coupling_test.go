package coupling

import (
	"testing"

	"github.com/archscope/archscope/pkg/depgraph"
)

// hubGraph has five files importing util.js, which imports nothing.
func hubGraph() *depgraph.Graph {
	return depgraph.FromImports("", map[string][]string{
		"a.js": {"util.js"},
		"b.js": {"util.js"},
		"c.js": {"util.js"},
		"d.js": {"util.js"},
		"e.js": {"util.js"},
	})
}

func TestAfferentCoupling_Hub(t *testing.T) {
	g := hubGraph()

	if ca := AfferentCoupling(g, "util.js"); ca != 5 {
		t.Errorf("AfferentCoupling(util.js) = %d, want 5", ca)
	}
	if ca := AfferentCoupling(g, "a.js"); ca != 0 {
		t.Errorf("AfferentCoupling(a.js) = %d, want 0", ca)
	}
}

func TestEfferentCoupling(t *testing.T) {
	g := depgraph.FromImports("", map[string][]string{
		"app.js": {"a.js", "b.js", "c.js"},
	})

	if ce := EfferentCoupling(g, "app.js"); ce != 3 {
		t.Errorf("EfferentCoupling(app.js) = %d, want 3", ce)
	}
	if ce := EfferentCoupling(g, "a.js"); ce != 0 {
		t.Errorf("EfferentCoupling(a.js) = %d, want 0", ce)
	}
}

func TestInstability_Extremes(t *testing.T) {
	g := hubGraph()

	// util.js is imported by everyone and imports nothing: maximally stable.
	if in := Instability(g, "util.js"); in != 0 {
		t.Errorf("Instability(util.js) = %v, want 0", in)
	}
	// a.js imports one file and nothing imports it: maximally unstable.
	if in := Instability(g, "a.js"); in != 1 {
		t.Errorf("Instability(a.js) = %v, want 1", in)
	}
}

func TestInstability_IsolatedFileIsZero(t *testing.T) {
	g := depgraph.FromImports("", map[string][]string{
		"lone.js": nil,
	})

	if in := Instability(g, "lone.js"); in != 0 {
		t.Errorf("Instability(lone.js) = %v, want 0 for isolated file", in)
	}
}

func TestCalculate_DerivedLists(t *testing.T) {
	g := depgraph.FromImports("", map[string][]string{
		"a.js":    {"util.js"},
		"b.js":    {"util.js"},
		"c.js":    {"util.js"},
		"lone.js": nil,
	})

	res := Calculate(g, Options{})

	if len(res.Files) != 5 {
		t.Fatalf("len(Files) = %d, want 5", len(res.Files))
	}
	if len(res.Hubs) != 1 || res.Hubs[0].Path != "util.js" {
		t.Errorf("Hubs = %v, want [util.js]", res.Hubs)
	}
	if len(res.Isolated) != 1 || res.Isolated[0].Path != "lone.js" {
		t.Errorf("Isolated = %v, want [lone.js]", res.Isolated)
	}
}

func TestCalculate_HighlyCoupledSortedDescending(t *testing.T) {
	// hot.js: Ca=3, Ce=2 (total 5). warm.js: Ca=3, Ce=1 (total 4).
	g := depgraph.FromImports("", map[string][]string{
		"a.js":    {"hot.js", "warm.js"},
		"b.js":    {"hot.js", "warm.js"},
		"c.js":    {"hot.js", "warm.js"},
		"hot.js":  {"x.js", "y.js"},
		"warm.js": {"x.js"},
	})

	res := Calculate(g, Options{})

	if len(res.HighlyCoupled) != 2 {
		t.Fatalf("len(HighlyCoupled) = %d, want 2", len(res.HighlyCoupled))
	}
	if res.HighlyCoupled[0].Path != "hot.js" {
		t.Errorf("HighlyCoupled[0] = %s, want hot.js", res.HighlyCoupled[0].Path)
	}
	if res.HighlyCoupled[0].Total() < res.HighlyCoupled[1].Total() {
		t.Error("HighlyCoupled not sorted by total descending")
	}
}

func TestCalculate_CustomThresholds(t *testing.T) {
	g := hubGraph()

	res := Calculate(g, Options{HubThreshold: 6})

	if len(res.Hubs) != 0 {
		t.Errorf("Hubs = %v, want none with threshold 6", res.Hubs)
	}
}

func TestCalculate_EmptyGraph(t *testing.T) {
	g := depgraph.FromImports("", nil)

	res := Calculate(g, Options{})

	if len(res.Files) != 0 {
		t.Errorf("len(Files) = %d, want 0", len(res.Files))
	}
}

func TestBuildMatrix(t *testing.T) {
	g := depgraph.FromImports("", map[string][]string{
		"a.js": {"b.js"},
		"b.js": nil,
	})

	m := BuildMatrix(g)

	if !m.Imports("a.js", "b.js") {
		t.Error(`Imports("a.js", "b.js") = false, want true`)
	}
	if m.Imports("b.js", "a.js") {
		t.Error(`Imports("b.js", "a.js") = true, want false`)
	}
	if m.Imports("a.js", "missing.js") {
		t.Error("Imports with unknown path = true, want false")
	}
}
