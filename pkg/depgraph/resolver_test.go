package depgraph

import "testing"

func TestResolve_ExactMatch(t *testing.T) {
	r := NewResolver([]string{"/src/a.js", "/src/b.js"}, nil)

	res := r.Resolve("./b.js", "/src/a.js")

	if res.Kind != ResolvedInternal {
		t.Fatalf("Kind = %v, want ResolvedInternal", res.Kind)
	}
	if res.Path != "/src/b.js" {
		t.Errorf("Path = %q, want %q", res.Path, "/src/b.js")
	}
}

func TestResolve_ExtensionAppended(t *testing.T) {
	r := NewResolver([]string{"/src/a.js", "/src/b.ts"}, nil)

	res := r.Resolve("./b", "/src/a.js")

	if res.Kind != ResolvedInternal {
		t.Fatalf("Kind = %v, want ResolvedInternal", res.Kind)
	}
	if res.Path != "/src/b.ts" {
		t.Errorf("Path = %q, want %q", res.Path, "/src/b.ts")
	}
}

func TestResolve_ExactBeatsExtension(t *testing.T) {
	// "./b" matches the extensionless file before any candidate with an
	// extension appended.
	r := NewResolver([]string{"/src/a.js", "/src/b", "/src/b.js"}, nil)

	res := r.Resolve("./b", "/src/a.js")

	if res.Path != "/src/b" {
		t.Errorf("Path = %q, want %q", res.Path, "/src/b")
	}
}

func TestResolve_IndexFile(t *testing.T) {
	r := NewResolver([]string{"/src/a.js", "/src/lib/index.js"}, nil)

	res := r.Resolve("./lib", "/src/a.js")

	if res.Kind != ResolvedInternal {
		t.Fatalf("Kind = %v, want ResolvedInternal", res.Kind)
	}
	if res.Path != "/src/lib/index.js" {
		t.Errorf("Path = %q, want %q", res.Path, "/src/lib/index.js")
	}
}

func TestResolve_ExtensionBeatsIndex(t *testing.T) {
	r := NewResolver([]string{"/src/a.js", "/src/lib.js", "/src/lib/index.js"}, nil)

	res := r.Resolve("./lib", "/src/a.js")

	if res.Path != "/src/lib.js" {
		t.Errorf("Path = %q, want %q", res.Path, "/src/lib.js")
	}
}

func TestResolve_ParentDirectory(t *testing.T) {
	r := NewResolver([]string{"/src/deep/nested/a.js", "/src/util.js"}, nil)

	res := r.Resolve("../../util", "/src/deep/nested/a.js")

	if res.Kind != ResolvedInternal {
		t.Fatalf("Kind = %v, want ResolvedInternal", res.Kind)
	}
	if res.Path != "/src/util.js" {
		t.Errorf("Path = %q, want %q", res.Path, "/src/util.js")
	}
}

func TestResolve_External(t *testing.T) {
	r := NewResolver([]string{"/src/a.js"}, nil)

	tests := []struct {
		spec string
		want string
	}{
		{"react", "react"},
		{"lodash/fp/map", "lodash"},
		{"@scope/pkg", "@scope/pkg"},
		{"@scope/pkg/util/deep", "@scope/pkg"},
	}
	for _, tt := range tests {
		res := r.Resolve(tt.spec, "/src/a.js")
		if res.Kind != External {
			t.Errorf("Resolve(%q).Kind = %v, want External", tt.spec, res.Kind)
			continue
		}
		if res.Package != tt.want {
			t.Errorf("Resolve(%q).Package = %q, want %q", tt.spec, res.Package, tt.want)
		}
	}
}

func TestResolve_BrokenRelativeImportDropped(t *testing.T) {
	r := NewResolver([]string{"/src/a.js"}, nil)

	res := r.Resolve("./missing", "/src/a.js")

	if res.Kind != Dropped {
		t.Errorf("Kind = %v, want Dropped", res.Kind)
	}
}

func TestResolve_CustomExtensions(t *testing.T) {
	r := NewResolver([]string{"/src/a.vue", "/src/b.vue"}, []string{".vue"})

	res := r.Resolve("./b", "/src/a.vue")

	if res.Kind != ResolvedInternal || res.Path != "/src/b.vue" {
		t.Errorf("Resolve(./b) = %+v, want internal /src/b.vue", res)
	}
}
