package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// maxListed caps the entries printed per section in the text report;
// the full data is always available via JSON.
const maxListed = 10

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorDim    = lipgloss.Color("240")

	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleGood   = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarn   = lipgloss.NewStyle().Foreground(colorYellow)
	styleBad    = lipgloss.NewStyle().Foreground(colorRed)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleNumber = lipgloss.NewStyle().Foreground(colorCyan)
)

// RenderText renders the report for terminal display.
func (r *Report) RenderText() string {
	var b strings.Builder

	section := func(title string) {
		b.WriteString("\n" + styleTitle.Render(title) + "\n")
	}
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	b.WriteString(styleTitle.Render("ArchScope analysis") + " " + styleDim.Render(r.Root) + "\n")
	line("  files: %s  edges: %s  external packages: %s",
		styleNumber.Render(fmt.Sprint(r.Stats.TotalFiles)),
		styleNumber.Render(fmt.Sprint(r.Stats.TotalEdges)),
		styleNumber.Render(fmt.Sprint(r.Stats.ExternalDeps)))

	if len(r.Warnings) > 0 {
		line("  %s", styleWarn.Render(fmt.Sprintf("%d files skipped (unreadable)", len(r.Warnings))))
	}

	section("Cycles")
	if !r.Circular.HasCycles {
		line("  %s", styleGood.Render("no import cycles"))
	} else {
		line("  %s", styleBad.Render(fmt.Sprintf("%d cycle(s) detected", r.Circular.CycleCount)))
		for i, c := range r.Circular.Cycles {
			if i >= maxListed {
				line("  %s", styleDim.Render(fmt.Sprintf("… and %d more", len(r.Circular.Cycles)-maxListed)))
				break
			}
			line("  %s", strings.Join(c.Paths, " → ")+" → "+c.Paths[0])
		}
		for _, s := range r.Circular.Suggestions {
			line("  %s", styleDim.Render("break: "+s.Reason))
		}
	}

	section("Coupling")
	if len(r.Coupling.Hubs) == 0 {
		line("  %s", styleDim.Render("no hub files"))
	}
	for i, h := range r.Coupling.Hubs {
		if i >= maxListed {
			line("  %s", styleDim.Render(fmt.Sprintf("… and %d more hubs", len(r.Coupling.Hubs)-maxListed)))
			break
		}
		line("  hub %-40s Ca=%d Ce=%d instability=%.2f", h.RelPath, h.Afferent, h.Efferent, h.Instability)
	}
	if n := len(r.Coupling.Isolated); n > 0 {
		line("  %s", styleDim.Render(fmt.Sprintf("%d isolated file(s)", n)))
	}

	section("Cohesion")
	line("  average cohesion: %s", styleNumber.Render(fmt.Sprintf("%.2f", r.Cohesion.Summary.AverageCohesion)))
	for i, m := range r.Cohesion.LowCohesion {
		if i >= maxListed {
			break
		}
		line("  %s", styleWarn.Render(fmt.Sprintf("low cohesion %s: %.2f (%d internal / %d external)",
			m.Name, m.Cohesion, m.InternalDeps, m.ExternalDeps)))
	}

	section("Service boundaries")
	for _, s := range r.Boundaries.Services {
		grade := styleGood
		if s.Quality < 50 {
			grade = styleBad
		} else if s.Quality < 75 {
			grade = styleWarn
		}
		deps := "none"
		if len(s.Dependencies) > 0 {
			deps = strings.Join(s.Dependencies, ", ")
		}
		line("  %-24s %3d files  quality %s  deps: %s",
			s.Name, s.FileCount, grade.Render(fmt.Sprintf("%.0f", s.Quality)), deps)
	}
	if len(r.Boundaries.Shared) > 0 {
		line("  shared kernel: %s", strings.Join(r.Boundaries.Shared, ", "))
	}
	for _, s := range r.Boundaries.Suggestions {
		line("  %s", styleWarn.Render(s.Message))
	}

	return b.String()
}
