package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/archscope/archscope/pkg/analysis/circular"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// cycleListModel - Interactive cycle browser
// =============================================================================

// cycleListModel is the bubbletea model for browsing import cycles.
// The left pane lists cycles; enter expands the selected cycle to show
// its member files and the suggested edge to break.
type cycleListModel struct {
	result   circular.Result
	cursor   int
	expanded map[int]bool
	height   int
	offset   int
}

// newCycleListModel creates a cycle browser over a detection result.
func newCycleListModel(res circular.Result) cycleListModel {
	return cycleListModel{
		result:   res,
		expanded: make(map[int]bool),
		height:   15,
	}
}

func (m cycleListModel) Init() tea.Cmd {
	return nil
}

func (m cycleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.result.Cycles)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter", " ":
			m.expanded[m.cursor] = !m.expanded[m.cursor]
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m cycleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Circular Dependencies"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.result.Cycles) {
		end = len(m.result.Cycles)
	}

	for i := m.offset; i < end; i++ {
		c := m.result.Cycles[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%sCycle %d  %s", cursor, i+1, listDimStyle.Render(fmt.Sprintf("%d files", len(c.Paths))))
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")

		if m.expanded[i] {
			for j, p := range c.Paths {
				next := c.Paths[(j+1)%len(c.Paths)]
				b.WriteString(listDimStyle.Render(fmt.Sprintf("      %s %s %s", p, iconArrow, next)))
				b.WriteString("\n")
			}
			if s, ok := m.suggestionFor(c); ok {
				b.WriteString("      " + StyleWarning.Render(fmt.Sprintf("break %s %s %s", s.From, iconArrow, s.To)))
				b.WriteString("\n")
				b.WriteString(listDimStyle.Render("      " + s.Reason))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.result.Cycles))))

	return b.String()
}

// suggestionFor finds the break suggestion whose removed edge starts
// inside the given cycle.
func (m cycleListModel) suggestionFor(c circular.Cycle) (circular.Suggestion, bool) {
	members := make(map[string]bool, len(c.Paths))
	for _, p := range c.Paths {
		members[p] = true
	}
	for _, s := range m.result.Suggestions {
		if members[s.From] && members[s.To] {
			return s, true
		}
	}
	return circular.Suggestion{}, false
}
