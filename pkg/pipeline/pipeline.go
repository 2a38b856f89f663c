// Package pipeline provides the core analysis pipeline for ArchScope.
//
// This package implements the complete scan → build → analyze →
// boundaries pipeline used by both the CLI and the API server. By
// centralizing this logic, we ensure consistent behavior across all
// entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Scan: enumerate candidate source files under the root
//  2. Build: assemble the file-level dependency graph
//  3. Analyze: cycle detection, coupling, and cohesion — these are
//     read-only over the immutable graph and run concurrently
//  4. Boundaries: service clustering over the analysis outputs
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	rep, err := runner.Execute(ctx, pipeline.Options{Root: "./src"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(rep.RenderText())
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/archscope/archscope/pkg/analysis/boundary"
	"github.com/archscope/archscope/pkg/analysis/cohesion"
	"github.com/archscope/archscope/pkg/analysis/coupling"
	"github.com/archscope/archscope/pkg/cache"
	"github.com/archscope/archscope/pkg/config"
	archerrors "github.com/archscope/archscope/pkg/errors"
)

// Options contains all configuration for one analysis run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Root is the directory to analyze. Required.
	Root string `json:"root"`

	// Config carries thresholds and scan settings; the zero value
	// defers to package defaults everywhere.
	Config config.Config `json:"config,omitempty"`

	// Refresh bypasses the report cache.
	Refresh bool `json:"refresh,omitempty"`

	// Workers overrides the builder's concurrency.
	Workers int `json:"workers,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether Validate has been called.
	validated bool `json:"-"`
}

// Validate checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) Validate() error {
	if o.validated {
		return nil
	}
	if o.Root == "" {
		return archerrors.New(archerrors.ErrCodeInvalidInput, "root is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// couplingOptions maps config onto the coupling analysis options.
func (o *Options) couplingOptions() coupling.Options {
	return coupling.Options{
		HubThreshold:     o.Config.Coupling.HubThreshold,
		CoupledThreshold: o.Config.Coupling.CoupledThreshold,
	}
}

// cohesionOptions maps config onto the cohesion analysis options.
func (o *Options) cohesionOptions() cohesion.Options {
	return cohesion.Options{
		Depth:        o.Config.Cohesion.ModuleDepth,
		LowThreshold: o.Config.Cohesion.LowThreshold,
	}
}

// boundaryOptions maps config onto the boundary detection options.
func (o *Options) boundaryOptions() boundary.Options {
	return boundary.Options{
		MergeRatio:     o.Config.Boundaries.MergeRatio,
		KeepCohesion:   o.Config.Boundaries.KeepCohesion,
		MaxShare:       o.Config.Boundaries.MaxShare,
		MinFiles:       o.Config.Boundaries.MinFiles,
		CohesionWeight: o.Config.Boundaries.CohesionWeight,
		CouplingWeight: o.Config.Boundaries.CouplingWeight,
		Depth:          o.Config.Cohesion.ModuleDepth,
	}
}

// reportKeyOpts returns the cache key options for this run.
func (o *Options) reportKeyOpts() cache.ReportKeyOpts {
	return cache.ReportKeyOpts{
		HubThreshold:     o.Config.Coupling.HubThreshold,
		CoupledThreshold: o.Config.Coupling.CoupledThreshold,
		ModuleDepth:      o.Config.Cohesion.ModuleDepth,
		LowCohesion:      o.Config.Cohesion.LowThreshold,
		MergeRatio:       o.Config.Boundaries.MergeRatio,
		KeepCohesion:     o.Config.Boundaries.KeepCohesion,
		MaxShare:         o.Config.Boundaries.MaxShare,
		MinFiles:         o.Config.Boundaries.MinFiles,
		CohesionWeight:   o.Config.Boundaries.CohesionWeight,
		CouplingWeight:   o.Config.Boundaries.CouplingWeight,
		IgnorePatterns:   o.Config.Scan.IgnorePatterns,
	}
}
