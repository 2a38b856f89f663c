package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/archscope/archscope/pkg/analysis/boundary"
	"github.com/archscope/archscope/pkg/analysis/circular"
	"github.com/archscope/archscope/pkg/analysis/cohesion"
	"github.com/archscope/archscope/pkg/analysis/coupling"
	"github.com/archscope/archscope/pkg/depgraph"
)

func sampleReport() *Report {
	g := depgraph.FromImports("/r", map[string][]string{
		"/r/auth/a.js": {"/r/auth/b.js"},
		"/r/auth/b.js": {"/r/auth/a.js"},
	})
	circ := circular.Detect(g)
	coup := coupling.Calculate(g, coupling.Options{})
	coh := cohesion.Analyze(g, cohesion.Options{})
	bound := boundary.Detect(g, coup, coh, boundary.Options{})
	return New(g, circ, coup, coh, bound)
}

func TestNew_AssignsIdentity(t *testing.T) {
	rep := sampleReport()

	if rep.ID == "" {
		t.Error("ID is empty, want a UUID")
	}
	if rep.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
	if rep.Root != "/r" {
		t.Errorf("Root = %q, want %q", rep.Root, "/r")
	}

	other := sampleReport()
	if other.ID == rep.ID {
		t.Error("two reports share an ID")
	}
}

func TestGraphFrom_SortedNodes(t *testing.T) {
	g := depgraph.FromImports("/r", map[string][]string{
		"/r/z.js": {"/r/a.js"},
		"/r/m.js": nil,
	})

	data := GraphFrom(g)

	if len(data.Nodes) != 3 {
		t.Fatalf("len(Nodes) = %d, want 3", len(data.Nodes))
	}
	for i := 1; i < len(data.Nodes); i++ {
		if data.Nodes[i-1].ID >= data.Nodes[i].ID {
			t.Errorf("Nodes not sorted: %v", data.Nodes)
		}
	}
	if data.Nodes[0].Label != "a.js" {
		t.Errorf("Nodes[0].Label = %q, want relative path %q", data.Nodes[0].Label, "a.js")
	}
}

func TestRenderJSON_RoundTrips(t *testing.T) {
	rep := sampleReport()

	data, err := rep.RenderJSON()
	if err != nil {
		t.Fatal(err)
	}

	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.ID != rep.ID {
		t.Errorf("decoded ID = %q, want %q", decoded.ID, rep.ID)
	}
	if decoded.Circular.CycleCount != rep.Circular.CycleCount {
		t.Errorf("decoded CycleCount = %d, want %d", decoded.Circular.CycleCount, rep.Circular.CycleCount)
	}
}

func TestRenderText_MentionsCycles(t *testing.T) {
	out := sampleReport().RenderText()

	if !strings.Contains(out, "1 cycle(s) detected") {
		t.Errorf("RenderText() missing cycle count:\n%s", out)
	}
	if !strings.Contains(out, "ArchScope analysis") {
		t.Error("RenderText() missing header")
	}
}

func TestRenderMarkdown_Tables(t *testing.T) {
	out := sampleReport().RenderMarkdown()

	if !strings.Contains(out, "| Metric | Value |") {
		t.Error("RenderMarkdown() missing metric table")
	}
	if !strings.Contains(out, "## Import cycles") {
		t.Error("RenderMarkdown() missing cycles section")
	}
}

func TestRender_FormatDispatch(t *testing.T) {
	rep := sampleReport()

	jsonOut, err := rep.Render(FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(jsonOut) {
		t.Error("Render(json) produced invalid JSON")
	}

	mdOut, err := rep.Render(FormatMarkdown)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(mdOut), "# Dependency analysis") {
		t.Error("Render(markdown) missing heading")
	}
}

func TestGraphFrom_CarriesExternalLinks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	if err := os.WriteFile(path, []byte(`import _ from 'lodash';`), 0644); err != nil {
		t.Fatal(err)
	}

	b := depgraph.NewBuilder(depgraph.BuildOptions{Root: dir})
	g, err := b.Build(context.Background(), []string{path})
	if err != nil {
		t.Fatal(err)
	}

	data := GraphFrom(g)
	if len(data.Nodes) != 1 {
		t.Fatalf("len(Nodes) = %d, want 1", len(data.Nodes))
	}
	if want := []string{"lodash"}; !reflect.DeepEqual(data.Nodes[0].External, want) {
		t.Errorf("Nodes[0].External = %v, want %v", data.Nodes[0].External, want)
	}
}
