package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// newCyclesCmd creates the cycles command.
// It runs the pipeline and reports only the circular-dependency results,
// optionally in an interactive browser.
func newCyclesCmd() *cobra.Command {
	var flags runFlags
	var interactive bool

	cmd := &cobra.Command{
		Use:   "cycles [path]",
		Short: "Show circular dependencies",
		Long: `Cycles lists every import cycle in the codebase along with a suggested
edge to break for each one.

Examples:
  archscope cycles ./src       # Plain listing
  archscope cycles ./src -i    # Interactive browser`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			rep, cached, err := flags.execute(cmd.Context(), root)
			if err != nil {
				return err
			}

			if !rep.Circular.HasCycles {
				printSuccess("No circular dependencies in %d files", rep.Stats.TotalFiles)
				printStats(rep.Stats.TotalFiles, rep.Stats.TotalEdges, cached)
				return nil
			}

			if interactive {
				model := newCycleListModel(rep.Circular)
				final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
				if err != nil {
					return fmt.Errorf("interactive browser: %w", err)
				}
				_ = final
				return nil
			}

			printWarning("%d circular dependencies", rep.Circular.CycleCount)
			for i, c := range rep.Circular.Cycles {
				fmt.Println()
				fmt.Println(StyleTitle.Render(fmt.Sprintf("Cycle %d", i+1)) + StyleDim.Render(fmt.Sprintf(" (%d files)", len(c.Paths))))
				fmt.Println("  " + StyleValue.Render(strings.Join(append(c.Paths, c.Paths[0]), " "+iconArrow+" ")))
			}
			if len(rep.Circular.Suggestions) > 0 {
				fmt.Println()
				fmt.Println(StyleTitle.Render("Suggested fixes"))
				for _, s := range rep.Circular.Suggestions {
					printDetail("remove %s %s %s (%s)", s.From, iconArrow, s.To, s.Reason)
				}
			}
			printStats(rep.Stats.TotalFiles, rep.Stats.TotalEdges, cached)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse cycles interactively")

	return cmd
}
