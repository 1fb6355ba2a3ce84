package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spacelayout/pkg/pipeline"
)

// renderCommand creates the render command for drawing layouts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
	)
	opts := pipeline.Options{Zoom: pipeline.DefaultZoom}

	cmd := &cobra.Command{
		Use:   "render [request.toml|request.json|-]",
		Short: "Draw a floor layout as SVG, PNG, PDF or JSON",
		Long: `Draw a floor layout as SVG, PNG, PDF or JSON.

The request is laid out (or read from the cache) and drawn at the given zoom.
Instance labels are only drawn at zoom 0.8 and above. PDF output requires
rsvg-convert (librsvg) on PATH.`,
		Example: `  spacelayout render aula.toml
  spacelayout render aula.toml -f svg,png --zoom 1.5
  spacelayout render parking.json -f pdf -o plans/parking.pdf --no-labels`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.Zoom, "zoom", opts.Zoom, "zoom factor (base scale 40 px/m)")
	cmd.Flags().BoolVar(&opts.HideLabels, "no-labels", false, "hide instance labels")
	cmd.Flags().BoolVar(&opts.HideLegend, "no-legend", false, "hide the legend")
	cmd.Flags().BoolVar(&opts.HideGrid, "no-grid", false, "hide the metre grid")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached outputs exist")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender lays out the request and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	req, err := pipeline.ReadRequestFile(input)
	if err != nil {
		return fmt.Errorf("load request %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, req, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths := outputPaths(output, input, opts.Formats)
	for _, format := range opts.Formats {
		path := paths[format]
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	printSuccess("Rendered %s", verdict(result.Layout.IsViable))
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(result.Stats.Placed, result.Stats.Unplaced, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	for _, w := range result.Layout.Warnings {
		printWarning("%s", w)
	}
	return nil
}

// outputPaths maps each format to its output file. A single format with an
// explicit output path writes exactly there; derived paths never overwrite
// the input.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
		if paths[f] == input {
			paths[f] = base + ".layout." + f
		}
	}
	return paths
}
