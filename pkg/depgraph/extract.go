package depgraph

import "regexp"

// Import extraction is lexical on purpose: a single regex pass over the
// file text finds the specifier strings without building an AST. That
// is enough for structural analysis and keeps the hot path cheap, at
// the cost of occasionally matching an import inside a string literal
// or comment.
var importPatterns = []*regexp.Regexp{
	// import ... from 'x' / import 'x' / export ... from 'x'
	regexp.MustCompile(`(?m)^\s*import\s+(?:[\w*{},\s$]+\s+from\s+)?['"]([^'"]+)['"]`),
	regexp.MustCompile(`(?m)^\s*export\s+[\w*{},\s$]+\s+from\s+['"]([^'"]+)['"]`),
	// require('x')
	regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`),
	// dynamic import('x')
	regexp.MustCompile(`import\s*\(\s*['"]([^'"]+)['"]\s*\)`),
}

// extractSpecifiers returns the raw import specifiers found in src.
// Duplicates are preserved; the builder deduplicates after resolution,
// where two distinct specifiers can map to the same target.
func extractSpecifiers(src []byte) []string {
	var specs []string
	seen := make(map[string]struct{})
	for _, re := range importPatterns {
		for _, m := range re.FindAllSubmatch(src, -1) {
			s := string(m[1])
			if s == "" {
				continue
			}
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			specs = append(specs, s)
		}
	}
	return specs
}
