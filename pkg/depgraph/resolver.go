package depgraph

import (
	"path/filepath"
	"strings"
)

// DefaultExtensions are the source extensions tried when a specifier
// omits one, in resolution order.
var DefaultExtensions = []string{".js", ".ts", ".jsx", ".tsx", ".mjs", ".cjs"}

// ResolutionKind classifies the outcome of resolving one specifier.
type ResolutionKind int

const (
	// ResolvedInternal means the specifier points at another scanned file.
	ResolvedInternal ResolutionKind = iota
	// External means the specifier names a package outside the scan root.
	External
	// Dropped means the specifier looked like a relative or absolute
	// path but no scanned file matches it. Broken imports are a property
	// of the scanned code, not a fault of the analyzer, so they produce
	// no edge and no error.
	Dropped
)

// Resolution is the result of resolving a raw import specifier.
type Resolution struct {
	Kind ResolutionKind
	// Path is the canonical absolute path of the target file when Kind
	// is ResolvedInternal.
	Path string
	// Package is the normalized external identifier when Kind is
	// External: the top-level package segment, or "@scope/name" for
	// scoped specifiers, so pkg/sub/path and pkg collapse to one
	// external identity.
	Package string
}

// Resolver maps raw import specifiers to scanned files or external
// packages. The file set is fixed at construction; a Resolver is
// read-only afterward and safe for concurrent use.
type Resolver struct {
	files      map[string]struct{}
	extensions []string
}

// NewResolver creates a resolver over the given set of scanned absolute
// paths. If extensions is nil, DefaultExtensions is used.
func NewResolver(files []string, extensions []string) *Resolver {
	if extensions == nil {
		extensions = DefaultExtensions
	}
	set := make(map[string]struct{}, len(files))
	for _, f := range files {
		set[filepath.Clean(f)] = struct{}{}
	}
	return &Resolver{files: set, extensions: extensions}
}

// Resolve classifies one raw specifier found in the file at fromPath.
//
// Resolution order: exact match of the joined path, then each configured
// extension appended, then <path>/index.<ext>. Specifiers that don't
// start with "." or "/" and fail to resolve are classified External;
// path-like specifiers that fail are Dropped.
func (r *Resolver) Resolve(spec, fromPath string) Resolution {
	pathLike := strings.HasPrefix(spec, ".") || strings.HasPrefix(spec, "/")
	if !pathLike {
		return Resolution{Kind: External, Package: normalizePackage(spec)}
	}

	base := spec
	if !filepath.IsAbs(base) {
		base = filepath.Join(filepath.Dir(fromPath), spec)
	}
	base = filepath.Clean(base)

	if r.contains(base) {
		return Resolution{Kind: ResolvedInternal, Path: base}
	}
	for _, ext := range r.extensions {
		if cand := base + ext; r.contains(cand) {
			return Resolution{Kind: ResolvedInternal, Path: cand}
		}
	}
	for _, ext := range r.extensions {
		if cand := filepath.Join(base, "index"+ext); r.contains(cand) {
			return Resolution{Kind: ResolvedInternal, Path: cand}
		}
	}

	return Resolution{Kind: Dropped}
}

func (r *Resolver) contains(path string) bool {
	_, ok := r.files[path]
	return ok
}

// normalizePackage reduces an external specifier to its package identity.
// "lodash/fp/map" becomes "lodash"; "@scope/pkg/util" becomes "@scope/pkg".
func normalizePackage(spec string) string {
	parts := strings.Split(spec, "/")
	if strings.HasPrefix(spec, "@") && len(parts) >= 2 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}
