package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spacelayout/pkg/pipeline"
)

// layoutCommand creates the layout command for computing placements.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		quiet   bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [request.toml|request.json|-]",
		Short: "Compute a floor layout from a request file",
		Long: `Compute a floor layout from a request file.

The request names the room dimensions, the space type and the items to place.
Files ending in .toml are read as TOML, anything else as JSON; "-" reads JSON
from stdin. The result (area analysis and placements) is written as JSON.

Results are cached locally for faster subsequent runs.`,
		Example: `  spacelayout layout aula.toml
  spacelayout layout parking.json -o parking.result.json
  echo '{"room":{"lengthMeters":10,"widthMeters":8},"spaceTypeId":"aula","items":[]}' | spacelayout layout -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache, quiet)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached result exists")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only write the result, no summary")

	return cmd
}

// runLayout reads the request, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache, quiet bool) error {
	req, err := pipeline.ReadRequestFile(input)
	if err != nil {
		return fmt.Errorf("load request %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, req, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Placed %d items", len(res.Placed)))

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	data = append(data, '\n')

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}
	if outputPath == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	if quiet {
		return nil
	}
	printResult(res)
	printNewline()
	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(res.Placed), countUnplaced(res.Unplaced), cacheHit)
	if u := formatUnplaced(res); u != "" {
		printDetail("unplaced: %s", u)
	}
	printNewline()
	printNextStep("Render", "spacelayout render "+input)

	return nil
}

func countUnplaced(unplaced map[string]int) int {
	n := 0
	for _, v := range unplaced {
		n += v
	}
	return n
}
