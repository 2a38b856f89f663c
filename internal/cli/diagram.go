package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archscope/archscope/pkg/render/dot"
)

// newDiagramCmd creates the diagram command.
// It runs the pipeline and renders the dependency graph as DOT, SVG, or
// PNG via Graphviz.
func newDiagramCmd() *cobra.Command {
	var flags runFlags
	var format string
	var output string
	var showCycles bool
	var showBoundaries bool
	var showExternal bool

	cmd := &cobra.Command{
		Use:   "diagram [path]",
		Short: "Render the dependency graph as a diagram",
		Long: `Diagram renders the file-level dependency graph with Graphviz. Cycle
edges can be highlighted in red and detected service boundaries drawn as
clusters.

Examples:
  archscope diagram ./src -o graph.svg
  archscope diagram ./src -o graph.png --boundaries
  archscope diagram ./src -f dot              # DOT source to stdout`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			if format == "" {
				format = formatFromPath(output)
			}
			if format != "dot" && format != "svg" && format != "png" {
				return fmt.Errorf("unknown format %q (available: %s)", format, dot.FormatNames())
			}

			rep, cached, err := flags.execute(cmd.Context(), root)
			if err != nil {
				return err
			}

			opts := dot.Options{ShowExternal: showExternal}
			if showCycles {
				opts.Cycles = rep.Circular.Cycles
			}
			if showBoundaries {
				opts.Boundaries = &rep.Boundaries
			}
			src := dot.ToDOT(rep.Graph, opts)

			var data []byte
			switch format {
			case "dot":
				data = []byte(src)
			case "svg":
				data, err = dot.RenderSVG(cmd.Context(), src)
			case "png":
				data, err = dot.RenderPNG(cmd.Context(), src)
			}
			if err != nil {
				return err
			}

			if output == "" {
				if format != "dot" {
					return fmt.Errorf("binary %s output requires --output", format)
				}
				fmt.Print(src)
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			printSuccess("Rendered %s diagram", format)
			printStats(rep.Stats.TotalFiles, rep.Stats.TotalEdges, cached)
			printFile(output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "", "diagram format (dot, svg, png; inferred from --output)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (DOT to stdout if empty)")
	cmd.Flags().BoolVar(&showCycles, "cycles", true, "highlight cycle edges in red")
	cmd.Flags().BoolVar(&showBoundaries, "boundaries", false, "draw service boundaries as clusters")
	cmd.Flags().BoolVar(&showExternal, "external", false, "include external packages as nodes")

	return cmd
}

// formatFromPath infers the diagram format from the output extension,
// defaulting to DOT.
func formatFromPath(output string) string {
	switch strings.ToLower(filepath.Ext(output)) {
	case ".svg":
		return "svg"
	case ".png":
		return "png"
	default:
		return "dot"
	}
}
