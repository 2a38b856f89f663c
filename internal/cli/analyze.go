package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archscope/archscope/pkg/cache"
	"github.com/archscope/archscope/pkg/config"
	"github.com/archscope/archscope/pkg/pipeline"
	"github.com/archscope/archscope/pkg/report"
)

// runFlags holds the flags shared by every command that executes the
// analysis pipeline (analyze, cycles, diagram).
type runFlags struct {
	configPath string // explicit config file (defaults to <root>/.archscope.toml)
	refresh    bool   // bypass the report cache
	noCache    bool   // disable caching entirely
	workers    int    // builder concurrency override
}

// register adds the shared pipeline flags to cmd.
func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "config file (default <root>/"+config.DefaultFileName+")")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass the report cache")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable result caching")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "number of file-reader workers (default NumCPU)")
}

// execute runs the full pipeline over root with a spinner on stderr.
// The second return reports whether the result came from cache.
func (f *runFlags) execute(ctx context.Context, root string) (*report.Report, bool, error) {
	logger := loggerFromContext(ctx)

	var cfg config.Config
	var err error
	if f.configPath != "" {
		cfg, err = config.Load(f.configPath)
	} else {
		cfg, err = config.LoadFromRoot(root)
	}
	if err != nil {
		return nil, false, err
	}

	c, err := openCache(f.noCache)
	if err != nil {
		logger.Warn("cache unavailable, continuing without", "err", err)
		c = cache.NewNullCache()
	}
	runner := pipeline.NewRunner(c, nil, logger)
	defer func() { _ = runner.Close() }()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Analyzing %s", root))
	spinner.Start()
	rep, cached, err := runner.Execute(ctx, pipeline.Options{
		Root:    root,
		Config:  cfg,
		Refresh: f.refresh,
		Workers: f.workers,
		Logger:  logger,
	})
	spinner.Stop()
	return rep, cached, err
}

// openCache returns the file cache under the user cache directory, or a
// null cache when caching is disabled.
func openCache(disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}

// newAnalyzeCmd creates the analyze command.
// It runs the complete pipeline and renders the report in the requested
// format.
func newAnalyzeCmd() *cobra.Command {
	var flags runFlags
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze a codebase's dependency structure",
		Long: `Analyze builds a file-level dependency graph from import statements and
reports circular dependencies, coupling hotspots, module cohesion, and
suggested service boundaries.

Examples:
  archscope analyze ./src                     # Styled terminal report
  archscope analyze ./src -f json -o out.json # Machine-readable report
  archscope analyze ./src -f markdown         # Markdown for docs or PRs`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			if !report.ValidFormats[format] {
				return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join([]string{report.FormatText, report.FormatJSON, report.FormatMarkdown}, ", "))
			}

			rep, cached, err := flags.execute(cmd.Context(), root)
			if err != nil {
				return err
			}

			rendered, err := rep.Render(format)
			if err != nil {
				return err
			}
			if output != "" {
				if err := os.WriteFile(output, rendered, 0644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				printSuccess("Analyzed %d files", rep.Stats.TotalFiles)
				printStats(rep.Stats.TotalFiles, rep.Stats.TotalEdges, cached)
				printFile(output)
				return nil
			}

			if format == report.FormatText {
				fmt.Print(string(rendered))
				printStats(rep.Stats.TotalFiles, rep.Stats.TotalEdges, cached)
				if rep.Circular.HasCycles {
					printNextStep("Inspect cycles", fmt.Sprintf("archscope cycles %s -i", root))
				}
				printNextStep("Render a diagram", fmt.Sprintf("archscope diagram %s -o graph.svg", root))
				return nil
			}
			fmt.Println(string(rendered))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", report.FormatText, "output format (text, json, markdown)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}
