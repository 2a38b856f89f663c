package depgraph

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// BuildOptions configures graph construction.
type BuildOptions struct {
	// Root is the scan root; node display names are relative to it.
	Root string
	// Extensions overrides DefaultExtensions for import resolution.
	Extensions []string
	// Workers is the number of concurrent file readers.
	// Defaults to GOMAXPROCS.
	Workers int
	// Logger receives per-file debug output. Defaults to a discarding
	// logger so library callers stay quiet.
	Logger *log.Logger
}

func (o BuildOptions) withDefaults() BuildOptions {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o
}

// Builder assembles dependency graphs from candidate file lists.
// A Builder is stateless between Build calls; every call produces an
// independent Graph.
type Builder struct {
	opts BuildOptions
}

// NewBuilder creates a builder with the given options.
func NewBuilder(opts BuildOptions) *Builder {
	return &Builder{opts: opts.withDefaults()}
}

// parsed is the per-file result of the concurrent read phase.
type parsed struct {
	path  string
	specs []string
	err   error
}

// Build reads every candidate file, extracts its raw import specifiers,
// resolves them against the full candidate set, and assembles the
// immutable Graph.
//
// File reading and extraction run concurrently, one job per file;
// workers only return per-file specifier lists and a single reducer
// merges them, so the hot phase needs no locking. Resolution starts
// only after the candidate list is complete, which fixes node
// identities before any edge is added.
//
// Unreadable files are skipped with a recorded warning; a single bad
// file never aborts the build. Build returns an error only when ctx is
// cancelled.
func (b *Builder) Build(ctx context.Context, files []string) (*Graph, error) {
	opts := b.opts

	jobs := make(chan string)
	results := make(chan parsed)

	var wg sync.WaitGroup
	for range opts.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if ctx.Err() != nil {
					results <- parsed{path: path, err: ctx.Err()}
					continue
				}
				src, err := os.ReadFile(path)
				if err != nil {
					results <- parsed{path: path, err: err}
					continue
				}
				results <- parsed{path: path, specs: extractSpecifiers(src)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, f := range files {
			select {
			case jobs <- filepath.Clean(f):
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Reduce: collect per-file specifier lists and read failures.
	specsByFile := make(map[string][]string, len(files))
	var warnings []Warning
	for r := range results {
		if r.err != nil {
			if ctx.Err() != nil {
				continue
			}
			opts.Logger.Debug("skipping unreadable file", "path", r.path, "err", r.err)
			warnings = append(warnings, Warning{Path: r.path, Reason: r.err.Error()})
			continue
		}
		specsByFile[r.path] = r.specs
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return assemble(opts, specsByFile, warnings), nil
}

// assemble resolves specifiers against the now-fixed node set and
// builds the final graph, including the reverse index.
func assemble(opts BuildOptions, specsByFile map[string][]string, warnings []Warning) *Graph {
	paths := make([]string, 0, len(specsByFile))
	for p := range specsByFile {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	resolver := NewResolver(paths, opts.Extensions)

	g := &Graph{
		root:     opts.Root,
		nodes:    make(map[string]*FileNode, len(paths)),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		external: make(map[string]struct{}),
		warnings: warnings,
	}

	for _, path := range paths {
		rel := path
		if opts.Root != "" {
			if r, err := filepath.Rel(opts.Root, path); err == nil {
				rel = r
			}
		}
		node := &FileNode{Path: path, RelPath: rel}

		targets := make(map[string]struct{})
		externals := make(map[string]struct{})
		for _, spec := range specsByFile[path] {
			res := resolver.Resolve(spec, path)
			switch res.Kind {
			case ResolvedInternal:
				// Self-imports carry no structural information.
				if res.Path == path {
					continue
				}
				targets[res.Path] = struct{}{}
			case External:
				externals[res.Package] = struct{}{}
				g.external[res.Package] = struct{}{}
			case Dropped:
				opts.Logger.Debug("unresolvable import", "from", rel, "spec", spec)
			}
		}

		node.Imports = sortedKeys(targets)
		node.External = sortedKeys(externals)
		g.nodes[path] = node
	}

	// Edges and reverse index, deduplicated by construction above.
	for _, path := range paths {
		for _, to := range g.nodes[path].Imports {
			g.edges = append(g.edges, Edge{From: path, To: to})
			g.outgoing[path] = append(g.outgoing[path], to)
			g.incoming[to] = append(g.incoming[to], path)
		}
	}
	for _, importers := range g.incoming {
		sort.Strings(importers)
	}

	return g
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
