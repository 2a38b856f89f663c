// Package store persists analysis reports.
//
// The API server archives every report it produces so clients can
// retrieve past runs by id. Two backends are provided: an in-memory
// store for development and tests, and a MongoDB store for
// deployments. The CLI does not use a store; it prints and exits.
package store

import (
	"context"
	"sort"
	"sync"

	archerrors "github.com/archscope/archscope/pkg/errors"
	"github.com/archscope/archscope/pkg/report"
)

// Summary is the listing projection of a stored report.
type Summary struct {
	ID        string `json:"id" bson:"_id"`
	Root      string `json:"root" bson:"root"`
	CreatedAt string `json:"created_at" bson:"created_at"`
	Files     int    `json:"files" bson:"files"`
	Cycles    int    `json:"cycles" bson:"cycles"`
}

// Store archives analysis reports by id.
type Store interface {
	// Save stores a report. Saving an existing id overwrites it.
	Save(ctx context.Context, rep *report.Report) error
	// Get returns the report with the given id, or a REPORT_NOT_FOUND
	// error.
	Get(ctx context.Context, id string) (*report.Report, error)
	// List returns summaries of all stored reports, newest first.
	List(ctx context.Context) ([]Summary, error)
	// Delete removes a report. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore keeps reports in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]*report.Report
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]*report.Report)}
}

// Save stores a report in memory.
func (s *MemoryStore) Save(ctx context.Context, rep *report.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[rep.ID] = rep
	return nil
}

// Get returns a stored report by id.
func (s *MemoryStore) Get(ctx context.Context, id string) (*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rep, ok := s.reports[id]
	if !ok {
		return nil, archerrors.New(archerrors.ErrCodeReportNotFound, "report %q not found", id)
	}
	return rep, nil
}

// List returns summaries of all stored reports, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Summary, 0, len(s.reports))
	for _, rep := range s.reports {
		out = append(out, summarize(rep))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

// Delete removes a report from memory.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reports, id)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

func summarize(rep *report.Report) Summary {
	return Summary{
		ID:        rep.ID,
		Root:      rep.Root,
		CreatedAt: rep.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Files:     rep.Stats.TotalFiles,
		Cycles:    rep.Circular.CycleCount,
	}
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
