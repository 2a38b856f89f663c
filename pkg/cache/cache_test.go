package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileCache_SetGet(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatal(err)
	}

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Fatal("Get() hit = false, want true")
	}
	if string(data) != "value" {
		t.Errorf("Get() = %q, want %q", data, "value")
	}
}

func TestFileCache_MissingKey(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	_, hit, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("Get(absent) hit = true, want false")
	}
}

func TestFileCache_Expiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("Get(expired) hit = true, want false")
	}
}

func TestFileCache_Delete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get() after Delete() hit = true, want false")
	}

	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "absent"); err != nil {
		t.Errorf("Delete(absent) = %v, want nil", err)
	}
}

func TestNullCache_AlwaysMisses(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("NullCache Get() hit = true, want false")
	}
}

func TestDefaultKeyer_Deterministic(t *testing.T) {
	k := NewDefaultKeyer()
	opts := ReportKeyOpts{HubThreshold: 3, ModuleDepth: 1}

	first := k.ReportKey("hash", opts)
	if second := k.ReportKey("hash", opts); second != first {
		t.Errorf("ReportKey not deterministic: %q vs %q", first, second)
	}
}

func TestDefaultKeyer_OptionsChangeKey(t *testing.T) {
	k := NewDefaultKeyer()

	a := k.ReportKey("hash", ReportKeyOpts{HubThreshold: 3})
	b := k.ReportKey("hash", ReportKeyOpts{HubThreshold: 5})
	if a == b {
		t.Error("ReportKey identical for different options")
	}

	c := k.ReportKey("other", ReportKeyOpts{HubThreshold: 3})
	if a == c {
		t.Error("ReportKey identical for different scan hashes")
	}
}

func TestDefaultKeyer_ClassesDoNotCollide(t *testing.T) {
	k := NewDefaultKeyer()

	if k.ReportKey("h", ReportKeyOpts{}) == k.DiagramKey("h", DiagramKeyOpts{}) {
		t.Error("report and diagram keys collide for identical hash")
	}
}

func TestScopedKeyer_Prefixes(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant1:")

	got := scoped.ReportKey("hash", ReportKeyOpts{})
	want := "tenant1:" + inner.ReportKey("hash", ReportKeyOpts{})
	if got != want {
		t.Errorf("ScopedKeyer.ReportKey() = %q, want %q", got, want)
	}
}

func TestHashStrings_OrderSensitive(t *testing.T) {
	a := HashStrings([]string{"x", "y"})
	b := HashStrings([]string{"y", "x"})
	if a == b {
		t.Error("HashStrings identical for different orders")
	}
	if a != HashStrings([]string{"x", "y"}) {
		t.Error("HashStrings not deterministic")
	}
}

func TestFileCache_GroupsEntriesByClass(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "report:abc", []byte("r"), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "diagram:abc", []byte("d"), 0); err != nil {
		t.Fatal(err)
	}

	for _, class := range []string{"report", "diagram"} {
		entries, err := os.ReadDir(filepath.Join(dir, class))
		if err != nil || len(entries) == 0 {
			t.Errorf("no entries under %s directory: %v", class, err)
		}
	}
}

func TestDefaultKeyer_BoundaryOptionsChangeKey(t *testing.T) {
	k := NewDefaultKeyer()
	base := ReportKeyOpts{MergeRatio: 0.3}

	variants := []ReportKeyOpts{
		{MergeRatio: 0.3, MinFiles: 10},
		{MergeRatio: 0.3, KeepCohesion: 0.9},
		{MergeRatio: 0.3, MaxShare: 0.2},
		{MergeRatio: 0.3, CohesionWeight: 0.1, CouplingWeight: 0.9},
		{MergeRatio: 0.3, IgnorePatterns: []string{"*.test.js"}},
	}
	want := k.ReportKey("hash", base)
	for i, opts := range variants {
		if got := k.ReportKey("hash", opts); got == want {
			t.Errorf("variant %d produced the same key as the base options", i)
		}
	}
}

func TestFingerprintFiles_ContentSensitive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	if err := os.WriteFile(path, []byte("import './b';"), 0644); err != nil {
		t.Fatal(err)
	}

	first := FingerprintFiles([]string{path})
	if first != FingerprintFiles([]string{path}) {
		t.Error("FingerprintFiles not deterministic for unchanged content")
	}

	if err := os.WriteFile(path, []byte("export const a = 1;"), 0644); err != nil {
		t.Fatal(err)
	}
	if FingerprintFiles([]string{path}) == first {
		t.Error("FingerprintFiles identical after content change")
	}
}

func TestFingerprintFiles_UnreadableFileDiffers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	readable := FingerprintFiles([]string{path})
	missing := FingerprintFiles([]string{filepath.Join(dir, "absent.js")})
	if readable == missing {
		t.Error("FingerprintFiles identical for readable and missing files")
	}
}
