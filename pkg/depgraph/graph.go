// Package depgraph builds and queries file-level dependency graphs.
//
// A Graph is assembled once per analysis run from a list of candidate
// source files: each file becomes a node, each resolved internal import
// becomes a directed edge, and unresolved package-style imports are
// accumulated into the external-dependency set. After Build returns the
// graph is immutable and safe for concurrent readers, which is what the
// analysis packages (circular, coupling, cohesion, boundary) rely on.
//
// # Usage
//
//	b := depgraph.NewBuilder(depgraph.BuildOptions{Root: root})
//	g, err := b.Build(ctx, files)
//	if err != nil {
//	    return err
//	}
//	for _, f := range g.Files() {
//	    fmt.Println(f, g.ImportsOf(f))
//	}
package depgraph

import (
	"maps"
	"path/filepath"
	"slices"
	"sort"
)

// FileNode is one scanned source file in the graph.
// The absolute path is the node's identity and never changes after build.
type FileNode struct {
	Path    string   // canonical absolute path (unique key)
	RelPath string   // path relative to the scan root (display name)
	Imports []string // resolved internal targets, sorted, deduplicated
	// External holds the raw specifiers this file imports that resolved
	// to packages outside the scan root, normalized to their top-level
	// package segment.
	External []string
}

// Edge is a directed dependency between two files in the graph.
// Both endpoints are guaranteed to exist in the node set; self-loops
// and duplicate edges are dropped during build.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// Warning records a file that could not be read during build.
// The file is skipped and omitted from the node set; a warning never
// aborts the build.
type Warning struct {
	Path   string `json:"path" bson:"path"`
	Reason string `json:"reason" bson:"reason"`
}

// Stats summarizes a built graph.
type Stats struct {
	TotalFiles   int `json:"total_files" bson:"total_files"`
	TotalEdges   int `json:"total_edges" bson:"total_edges"`
	ExternalDeps int `json:"external_deps" bson:"external_deps"`
}

// Graph is the immutable dependency graph over scanned source files.
//
// The zero value is an empty graph and is valid for all queries. Graphs
// are constructed by Builder.Build and shared by reference across the
// analysis packages; none of them mutate it.
type Graph struct {
	root     string
	nodes    map[string]*FileNode
	edges    []Edge
	outgoing map[string][]string // path -> imported paths
	incoming map[string][]string // path -> importer paths (reverse index)
	external map[string]struct{}
	warnings []Warning
}

// FromImports constructs a graph directly from an adjacency map of file
// paths to the paths they import. Import targets missing from the map
// become nodes with no imports of their own. Self-loops and duplicate
// targets are dropped, matching Build's semantics.
//
// Builder.Build is the normal construction path; FromImports serves
// callers that already hold resolved adjacency data, typically a
// stored report's graph section being rebuilt into a queryable Graph
// so the analyses can rerun without rescanning the source tree.
func FromImports(root string, imports map[string][]string) *Graph {
	g := &Graph{
		root:     root,
		nodes:    make(map[string]*FileNode, len(imports)),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		external: make(map[string]struct{}),
	}

	add := func(path string) *FileNode {
		if n, ok := g.nodes[path]; ok {
			return n
		}
		rel := path
		if root != "" {
			if r, err := filepath.Rel(root, path); err == nil {
				rel = r
			}
		}
		n := &FileNode{Path: path, RelPath: rel}
		g.nodes[path] = n
		return n
	}

	for path, targets := range imports {
		node := add(path)
		set := make(map[string]struct{}, len(targets))
		for _, to := range targets {
			if to == path {
				continue
			}
			set[to] = struct{}{}
			add(to)
		}
		node.Imports = sortedKeys(set)
	}

	for _, path := range g.Files() {
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

// Root returns the scan root the graph was built from.
func (g *Graph) Root() string { return g.root }

// Files returns all node paths in sorted order.
// Sorting keeps downstream reports and cache keys deterministic.
func (g *Graph) Files() []string {
	return slices.Sorted(maps.Keys(g.nodes))
}

// Node returns the file node for the given path and true, or nil and
// false if the path was not scanned.
func (g *Graph) Node(path string) (*FileNode, bool) {
	n, ok := g.nodes[path]
	return n, ok
}

// ImportsOf returns the internal files the given file imports.
// Returns nil for unknown paths or files with no internal imports.
// The returned slice is a read-only view and must not be modified.
func (g *Graph) ImportsOf(path string) []string { return g.outgoing[path] }

// ImportersOf returns the files that import the given file.
// The reverse index is built once at the end of Build, so lookups are
// O(1) on average. The returned slice is a read-only view.
func (g *Graph) ImportersOf(path string) []string { return g.incoming[path] }

// Edges returns a copy of all edges in deterministic order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// ExternalDeps returns the distinct external package identifiers found
// during build, sorted.
func (g *Graph) ExternalDeps() []string {
	return slices.Sorted(maps.Keys(g.external))
}

// Warnings returns the per-file read failures recorded during build.
func (g *Graph) Warnings() []Warning { return slices.Clone(g.warnings) }

// NodeCount returns the number of files in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of internal dependency edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Stats returns the graph's summary statistics.
func (g *Graph) Stats() Stats {
	return Stats{
		TotalFiles:   len(g.nodes),
		TotalEdges:   len(g.edges),
		ExternalDeps: len(g.external),
	}
}
