package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/archscope/archscope/pkg/buildinfo"
)

// Execute runs the archscope CLI under ctx and returns an error if any
// command fails. This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (analyze,
// cycles, diagram, serve, cache, completion), configures logging based on
// the --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: warn level (the CLI uses styled output for status)
//   - With --verbose (-v): debug level (logs to stderr)
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "archscope",
		Short:        "ArchScope analyzes codebase dependency structure",
		Long:         `ArchScope builds a file-level dependency graph from import statements and analyzes it for circular dependencies, coupling hotspots, module cohesion, and service boundary candidates.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.WarnLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newCyclesCmd())
	root.AddCommand(newDiagramCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
