package report

import (
	"fmt"
	"strings"
)

// RenderMarkdown renders the report as a Markdown document suitable for
// commit comments or docs.
func (r *Report) RenderMarkdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Dependency analysis: %s\n\n", r.Root)
	fmt.Fprintf(&b, "Generated %s\n\n", r.CreatedAt.Format("2006-01-02 15:04 UTC"))

	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Files | %d |\n", r.Stats.TotalFiles)
	fmt.Fprintf(&b, "| Internal edges | %d |\n", r.Stats.TotalEdges)
	fmt.Fprintf(&b, "| External packages | %d |\n", r.Stats.ExternalDeps)
	fmt.Fprintf(&b, "| Cycles | %d |\n", r.Circular.CycleCount)
	fmt.Fprintf(&b, "| Average cohesion | %.2f |\n\n", r.Cohesion.Summary.AverageCohesion)

	if r.Circular.HasCycles {
		b.WriteString("## Import cycles\n\n")
		for _, c := range r.Circular.Cycles {
			fmt.Fprintf(&b, "- `%s`\n", strings.Join(c.Paths, "` → `"))
		}
		b.WriteString("\n")
		for _, s := range r.Circular.Suggestions {
			fmt.Fprintf(&b, "> %s\n", s.Reason)
		}
		b.WriteString("\n")
	}

	if len(r.Coupling.Hubs) > 0 {
		b.WriteString("## Hub files\n\n| File | Ca | Ce | Instability |\n|---|---|---|---|\n")
		for _, h := range r.Coupling.Hubs {
			fmt.Fprintf(&b, "| `%s` | %d | %d | %.2f |\n", h.RelPath, h.Afferent, h.Efferent, h.Instability)
		}
		b.WriteString("\n")
	}

	if len(r.Cohesion.Modules) > 0 {
		b.WriteString("## Modules\n\n| Module | Files | Internal | External | Cohesion |\n|---|---|---|---|---|\n")
		for _, m := range r.Cohesion.Modules {
			score := fmt.Sprintf("%.2f", m.Cohesion)
			if m.NoEdges {
				score = "n/a (no edges)"
			}
			fmt.Fprintf(&b, "| `%s` | %d | %d | %d | %s |\n",
				m.Name, len(m.Files), m.InternalDeps, m.ExternalDeps, score)
		}
		b.WriteString("\n")
	}

	if len(r.Boundaries.Services) > 0 {
		b.WriteString("## Proposed services\n\n| Service | Files | Quality | Depends on |\n|---|---|---|---|\n")
		for _, s := range r.Boundaries.Services {
			deps := "—"
			if len(s.Dependencies) > 0 {
				deps = strings.Join(s.Dependencies, ", ")
			}
			fmt.Fprintf(&b, "| %s | %d | %.0f | %s |\n", s.Name, s.FileCount, s.Quality, deps)
		}
		b.WriteString("\n")
		if len(r.Boundaries.Shared) > 0 {
			fmt.Fprintf(&b, "Shared kernel: `%s`\n\n", strings.Join(r.Boundaries.Shared, "`, `"))
		}
		for _, s := range r.Boundaries.Suggestions {
			fmt.Fprintf(&b, "> %s\n", s.Message)
		}
	}

	return b.String()
}

// Render renders the report in the named format.
// Unknown formats fall back to text.
func (r *Report) Render(format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return r.RenderJSON()
	case FormatMarkdown:
		return []byte(r.RenderMarkdown()), nil
	default:
		return []byte(r.RenderText()), nil
	}
}
