// Package scan enumerates candidate source files under a scan root.
//
// The scanner applies three filters: the configured source extensions,
// a built-in set of directories that never contain first-party source
// (node_modules, .git, build output), and the repository's .gitignore
// rules. The result is the candidate list consumed by depgraph.Builder.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	archerrors "github.com/archscope/archscope/pkg/errors"
)

// DefaultIgnoreDirs are directory names skipped regardless of ignore
// rules.
var DefaultIgnoreDirs = []string{
	".git", "node_modules", "vendor", "dist", "build", "out",
	"coverage", ".next", ".cache", "__pycache__",
}

// Options configures a scan.
type Options struct {
	// Extensions is the set of file extensions to accept, including the
	// leading dot. Defaults to depgraph's default source extensions.
	Extensions []string
	// IgnoreDirs supplements DefaultIgnoreDirs.
	IgnoreDirs []string
	// IgnorePatterns are additional gitignore-style patterns, applied
	// after any .gitignore found at the root.
	IgnorePatterns []string
}

// List walks root and returns the absolute paths of all candidate
// source files, sorted. A missing or non-directory root is a hard
// error; unreadable subdirectories are skipped.
func List(root string, opts Options) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, archerrors.Wrap(archerrors.ErrCodeInvalidPath, err, "scan root %q does not exist", root)
	}
	if !info.IsDir() {
		return nil, archerrors.New(archerrors.ErrCodeInvalidPath, "scan root %q is not a directory", root)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, archerrors.Wrap(archerrors.ErrCodeInvalidPath, err, "resolve scan root %q", root)
	}

	matcher := buildMatcher(absRoot, opts.IgnorePatterns)
	skipDirs := append(slices.Clone(DefaultIgnoreDirs), opts.IgnoreDirs...)
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = defaultExtensions
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries degrade to a skip, not a failure.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil || rel == "." {
			return nil
		}

		if d.IsDir() {
			if slices.Contains(skipDirs, d.Name()) {
				return filepath.SkipDir
			}
			if matcher != nil && matcher.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !slices.Contains(exts, filepath.Ext(path)) {
			return nil
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, archerrors.Wrap(archerrors.ErrCodeInternal, err, "walk %q", absRoot)
	}

	slices.Sort(files)
	return files, nil
}

// defaultExtensions mirrors depgraph.DefaultExtensions without creating
// an import cycle between the two packages.
var defaultExtensions = []string{".js", ".ts", ".jsx", ".tsx", ".mjs", ".cjs"}

// buildMatcher combines the root .gitignore (when present) with any
// extra patterns. Returns nil when there is nothing to match.
func buildMatcher(root string, extra []string) *gitignore.GitIgnore {
	var lines []string
	if data, err := os.ReadFile(filepath.Join(root, ".gitignore")); err == nil {
		lines = append(lines, strings.Split(string(data), "\n")...)
	}
	lines = append(lines, extra...)
	if len(lines) == 0 {
		return nil
	}
	return gitignore.CompileIgnoreLines(lines...)
}
