package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	archerrors "github.com/archscope/archscope/pkg/errors"
	"github.com/archscope/archscope/pkg/report"
)

func testReport(root string, createdAt time.Time) *report.Report {
	return &report.Report{
		ID:        uuid.NewString(),
		Root:      root,
		CreatedAt: createdAt,
	}
}

func TestMemoryStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	rep := testReport("/r", time.Now().UTC())

	if err := s.Save(ctx, rep); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, rep.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Root != "/r" {
		t.Errorf("Root = %q, want %q", got.Root, "/r")
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "no-such-id")
	if err == nil {
		t.Fatal("Get(missing) = nil error")
	}
	if code := archerrors.GetCode(err); code != archerrors.ErrCodeReportNotFound {
		t.Errorf("GetCode(err) = %v, want %v", code, archerrors.ErrCodeReportNotFound)
	}
}

func TestMemoryStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	rep := testReport("/old", time.Now().UTC())
	if err := s.Save(ctx, rep); err != nil {
		t.Fatal(err)
	}

	rep2 := *rep
	rep2.Root = "/new"
	if err := s.Save(ctx, &rep2); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, rep.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Root != "/new" {
		t.Errorf("Root after overwrite = %q, want %q", got.Root, "/new")
	}
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	old := testReport("/old", base)
	mid := testReport("/mid", base.Add(time.Hour))
	newest := testReport("/new", base.Add(2*time.Hour))
	for _, rep := range []*report.Report{mid, old, newest} {
		if err := s.Save(ctx, rep); err != nil {
			t.Fatal(err)
		}
	}

	summaries, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 3 {
		t.Fatalf("len(summaries) = %d, want 3", len(summaries))
	}
	wantOrder := []string{newest.ID, mid.ID, old.ID}
	for i, want := range wantOrder {
		if summaries[i].ID != want {
			t.Errorf("summaries[%d].ID = %q, want %q", i, summaries[i].ID, want)
		}
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	rep := testReport("/r", time.Now().UTC())
	if err := s.Save(ctx, rep); err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(ctx, rep.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, rep.ID); err == nil {
		t.Error("Get after Delete = nil error")
	}
}

func TestMemoryStore_DeleteMissingNotError(t *testing.T) {
	if err := NewMemoryStore().Delete(context.Background(), "no-such-id"); err != nil {
		t.Errorf("Delete(missing) = %v, want nil", err)
	}
}
