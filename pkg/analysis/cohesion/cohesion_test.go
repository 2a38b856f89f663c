package cohesion

import (
	"math"
	"testing"

	"github.com/archscope/archscope/pkg/depgraph"
)

func TestModuleOf(t *testing.T) {
	tests := []struct {
		relPath string
		depth   int
		want    string
	}{
		{"auth/login.js", 1, "auth"},
		{"auth/session/token.js", 1, "auth"},
		{"auth/session/token.js", 2, "auth/session"},
		{"index.js", 1, "."},
		{"a/b/c/d.js", 3, "a/b/c"},
	}

	for _, tt := range tests {
		if got := ModuleOf(tt.relPath, tt.depth); got != tt.want {
			t.Errorf("ModuleOf(%q, %d) = %q, want %q", tt.relPath, tt.depth, got, tt.want)
		}
	}
}

func TestAnalyze_PerfectCohesion(t *testing.T) {
	// All edges stay inside auth/.
	g := depgraph.FromImports("/r", map[string][]string{
		"/r/auth/login.js":   {"/r/auth/session.js"},
		"/r/auth/session.js": {"/r/auth/token.js"},
		"/r/auth/token.js":   nil,
	})

	res := Analyze(g, Options{})

	if len(res.Modules) != 1 {
		t.Fatalf("len(Modules) = %d, want 1", len(res.Modules))
	}
	m := res.Modules[0]
	if m.Name != "auth" {
		t.Errorf("Name = %q, want %q", m.Name, "auth")
	}
	if m.Cohesion != 1.0 {
		t.Errorf("Cohesion = %v, want 1.0", m.Cohesion)
	}
	if m.InternalDeps != 2 || m.ExternalDeps != 0 {
		t.Errorf("deps = %d internal / %d external, want 2/0", m.InternalDeps, m.ExternalDeps)
	}
}

func TestAnalyze_CrossingEdgeCountsAgainstBothModules(t *testing.T) {
	g := depgraph.FromImports("/r", map[string][]string{
		"/r/auth/login.js": {"/r/db/conn.js"},
		"/r/db/conn.js":    nil,
	})

	res := Analyze(g, Options{})

	if len(res.Modules) != 2 {
		t.Fatalf("len(Modules) = %d, want 2", len(res.Modules))
	}
	for _, m := range res.Modules {
		if m.ExternalDeps != 1 {
			t.Errorf("module %s ExternalDeps = %d, want 1", m.Name, m.ExternalDeps)
		}
		if m.Cohesion != 0 {
			t.Errorf("module %s Cohesion = %v, want 0", m.Name, m.Cohesion)
		}
	}
}

func TestAnalyze_NoEdgesModuleFlaggedNotPerfect(t *testing.T) {
	g := depgraph.FromImports("/r", map[string][]string{
		"/r/docs/readme.js": nil,
	})

	res := Analyze(g, Options{})

	if len(res.Modules) != 1 {
		t.Fatalf("len(Modules) = %d, want 1", len(res.Modules))
	}
	m := res.Modules[0]
	if !m.NoEdges {
		t.Error("NoEdges = false, want true")
	}
	if m.Cohesion != 0 {
		t.Errorf("Cohesion = %v, want 0 for edgeless module", m.Cohesion)
	}
	if len(res.LowCohesion) != 0 {
		t.Errorf("LowCohesion = %v, want empty (NoEdges modules excluded)", res.LowCohesion)
	}
}

func TestAnalyze_MixedCohesion(t *testing.T) {
	// auth: 2 internal, 1 crossing -> 2/3. db: 0 internal, 1 crossing -> 0.
	g := depgraph.FromImports("/r", map[string][]string{
		"/r/auth/login.js":   {"/r/auth/session.js", "/r/db/conn.js"},
		"/r/auth/session.js": {"/r/auth/token.js"},
		"/r/auth/token.js":   nil,
		"/r/db/conn.js":      nil,
	})

	res := Analyze(g, Options{})

	byName := make(map[string]Module)
	for _, m := range res.Modules {
		byName[m.Name] = m
	}

	auth := byName["auth"]
	if math.Abs(auth.Cohesion-2.0/3.0) > 1e-9 {
		t.Errorf("auth Cohesion = %v, want 2/3", auth.Cohesion)
	}
	db := byName["db"]
	if db.Cohesion != 0 {
		t.Errorf("db Cohesion = %v, want 0", db.Cohesion)
	}

	// db (0) sorts before any other low-cohesion module.
	if len(res.LowCohesion) == 0 || res.LowCohesion[0].Name != "db" {
		t.Errorf("LowCohesion = %v, want db first", res.LowCohesion)
	}

	wantAvg := (2.0/3.0 + 0) / 2
	if math.Abs(res.Summary.AverageCohesion-wantAvg) > 1e-9 {
		t.Errorf("AverageCohesion = %v, want %v", res.Summary.AverageCohesion, wantAvg)
	}
}

func TestAnalyze_DepthTwo(t *testing.T) {
	g := depgraph.FromImports("/r", map[string][]string{
		"/r/svc/auth/login.js": {"/r/svc/auth/token.js"},
		"/r/svc/auth/token.js": nil,
		"/r/svc/db/conn.js":    nil,
	})

	res := Analyze(g, Options{Depth: 2})

	names := make([]string, 0, len(res.Modules))
	for _, m := range res.Modules {
		names = append(names, m.Name)
	}
	if len(names) != 2 || names[0] != "svc/auth" || names[1] != "svc/db" {
		t.Errorf("module names = %v, want [svc/auth svc/db]", names)
	}
}

func TestAnalyze_EmptyGraph(t *testing.T) {
	res := Analyze(depgraph.FromImports("", nil), Options{})

	if len(res.Modules) != 0 {
		t.Errorf("len(Modules) = %d, want 0", len(res.Modules))
	}
	if res.Summary.AverageCohesion != 0 {
		t.Errorf("AverageCohesion = %v, want 0", res.Summary.AverageCohesion)
	}
}
