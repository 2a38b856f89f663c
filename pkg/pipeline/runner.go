package pipeline

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/archscope/archscope/pkg/analysis/boundary"
	"github.com/archscope/archscope/pkg/analysis/circular"
	"github.com/archscope/archscope/pkg/analysis/cohesion"
	"github.com/archscope/archscope/pkg/analysis/coupling"
	"github.com/archscope/archscope/pkg/cache"
	"github.com/archscope/archscope/pkg/depgraph"
	"github.com/archscope/archscope/pkg/observability"
	"github.com/archscope/archscope/pkg/report"
	"github.com/archscope/archscope/pkg/scan"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete analysis pipeline with caching.
// The second return reports whether the result came from cache.
func (r *Runner) Execute(ctx context.Context, opts Options) (*report.Report, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}
	hooks := observability.Analysis()

	// Stage 1: Scan
	scanStart := time.Now()
	hooks.OnScanStart(ctx, opts.Root)
	files, err := scan.List(opts.Root, scan.Options{
		Extensions:     opts.Config.Scan.Extensions,
		IgnoreDirs:     opts.Config.Scan.IgnoreDirs,
		IgnorePatterns: opts.Config.Scan.IgnorePatterns,
	})
	scanTime := time.Since(scanStart)
	hooks.OnScanComplete(ctx, opts.Root, len(files), scanTime, err)
	if err != nil {
		return nil, false, err
	}
	logger.Info("scanned source files", "root", opts.Root, "files", len(files), "duration", scanTime)

	// Cache lookup keyed on the file contents plus every setting that
	// changes the result; editing a file in place invalidates the entry.
	cacheKey := r.Keyer.ReportKey(cache.FingerprintFiles(files), opts.reportKeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached report.Report
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "report")
				logger.Debug("report cache hit", "key", cacheKey)
				return &cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "report")
	}

	// Stage 2: Build
	buildStart := time.Now()
	hooks.OnBuildStart(ctx, opts.Root, len(files))
	builder := depgraph.NewBuilder(depgraph.BuildOptions{
		Root:       opts.Root,
		Extensions: opts.Config.Scan.Extensions,
		Workers:    opts.Workers,
		Logger:     logger,
	})
	g, err := builder.Build(ctx, files)
	buildTime := time.Since(buildStart)
	if err != nil {
		hooks.OnBuildComplete(ctx, opts.Root, 0, 0, buildTime, err)
		return nil, false, err
	}
	hooks.OnBuildComplete(ctx, opts.Root, g.NodeCount(), g.EdgeCount(), buildTime, nil)
	logger.Info("built dependency graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"external", len(g.ExternalDeps()),
		"duration", buildTime)

	// Stage 3: the three graph analyses are pure reads of the immutable
	// graph, so they run concurrently.
	analyzeStart := time.Now()
	var (
		wg   sync.WaitGroup
		circ circular.Result
		coup coupling.Result
		coh  cohesion.Result
	)
	stage := func(name string, fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			hooks.OnAnalysisStart(ctx, name)
			fn()
			hooks.OnAnalysisComplete(ctx, name, time.Since(start))
		}()
	}
	stage("circular", func() { circ = circular.Detect(g) })
	stage("coupling", func() { coup = coupling.Calculate(g, opts.couplingOptions()) })
	stage("cohesion", func() { coh = cohesion.Analyze(g, opts.cohesionOptions()) })
	wg.Wait()
	analyzeTime := time.Since(analyzeStart)
	logger.Info("ran graph analyses",
		"cycles", circ.CycleCount,
		"avg_cohesion", coh.Summary.AverageCohesion,
		"duration", analyzeTime)

	// Stage 4: boundary detection needs coupling and cohesion results.
	boundaryStart := time.Now()
	hooks.OnAnalysisStart(ctx, "boundary")
	bound := boundary.Detect(g, coup, coh, opts.boundaryOptions())
	boundaryTime := time.Since(boundaryStart)
	hooks.OnAnalysisComplete(ctx, "boundary", boundaryTime)
	logger.Info("detected service boundaries",
		"services", len(bound.Services),
		"shared", len(bound.Shared),
		"duration", boundaryTime)

	rep := report.New(g, circ, coup, coh, bound)
	rep.Timings = report.Timings{
		Scan:     scanTime,
		Build:    buildTime,
		Analyze:  analyzeTime,
		Boundary: boundaryTime,
	}

	if data, err := json.Marshal(rep); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLReport); err == nil {
			observability.Cache().OnCacheSet(ctx, "report", len(data))
		}
	}

	return rep, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
