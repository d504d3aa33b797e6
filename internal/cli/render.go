package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/plinth/pkg/pipeline"
	"github.com/matzehuels/plinth/pkg/render"
)

// renderCommand creates the render command: document in, artifacts out.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Render a box-tree document",
		Long: `Render a box-tree document.

The render command loads a document, computes its layout and writes one file
per requested format:

  svg      vector image of rectangles and text
  png      raster image (see --scale)
  pdf      SVG converted with rsvg-convert (must be installed)
  json     the layout, as written by 'layout'
  dot      Graphviz source of the node hierarchy
  dot-svg  the hierarchy drawn by Graphviz

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			c.applyConfig(cmd, &opts)
			opts.Refresh = refresh
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even if cached")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, dot-svg (comma-separated)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "raster scale for png")
	cmd.Flags().BoolVar(&opts.Outlines, "outlines", false, "outline every node")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// runRender executes the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Source{Path: input}, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	vp := opts.Viewport(result.Document)
	elapsed := result.Stats.LayoutTime + result.Stats.RenderTime
	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, vp.Width, vp.Height, elapsed, result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes each artifact and returns the paths in format order.
// With one format, output is the file name; with several it is a base path
// that gets a per-format extension.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := output
		if len(formats) > 1 || path == "" {
			path = artifactPath(basePath(output, input), format)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// artifactPath names the file for one format. dot-svg gets a double
// extension so it does not overwrite the svg.
func artifactPath(base, format string) string {
	if format == string(render.FormatDOTSVG) {
		return base + ".dot.svg"
	}
	return base + "." + render.Format(format).Extension()
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if slices.Contains(render.Formats, render.Format(ext)) {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}
