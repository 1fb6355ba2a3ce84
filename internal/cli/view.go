package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spacelayout/pkg/layout"
	"github.com/matzehuels/spacelayout/pkg/pipeline"
)

// viewCommand creates the interactive viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		fromResult bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "view [request.toml|request.json|result.layout.json]",
		Short: "Explore a layout interactively in the terminal",
		Long: `Explore a layout interactively in the terminal.

The request is laid out and drawn as a character plan. Zoom with +/-, pan
with the arrow keys, toggle instance labels with n and the warnings panel
with i. Pass --result to open a result written by 'spacelayout layout'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args[0], fromResult, noCache)
		},
	}

	cmd.Flags().BoolVar(&fromResult, "result", false, "input is a layout result, not a request")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runView(ctx context.Context, input string, fromResult, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var res layout.Result
	if fromResult {
		res, err = readResultFile(input)
	} else {
		var req layout.Request
		req, err = pipeline.ReadRequestFile(input)
		if err == nil {
			res, err = runner.ComputeLayout(ctx, req, pipeline.Options{})
		}
	}
	if err != nil {
		return err
	}

	p := tea.NewProgram(newViewModel(res, runner.Catalog), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

func readResultFile(path string) (layout.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return layout.Result{}, err
	}
	var res layout.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return layout.Result{}, fmt.Errorf("decode result %s: %w", path, err)
	}
	return res, nil
}
