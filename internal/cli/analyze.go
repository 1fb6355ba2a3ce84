package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spacelayout/pkg/backend"
	"github.com/matzehuels/spacelayout/pkg/pipeline"
)

// backendFlags holds the connection settings for the analysis backend.
type backendFlags struct {
	url   string
	token string
}

func (f *backendFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.url, "backend-url", envOr("BACKEND_URL", ""), "analysis backend base URL ($"+envPrefix+"BACKEND_URL)")
	cmd.Flags().StringVar(&f.token, "backend-token", envOr("BACKEND_TOKEN", ""), "bearer token for the backend ($"+envPrefix+"BACKEND_TOKEN)")
}

// client returns the backend client, or nil when no URL is configured.
func (f *backendFlags) client() *backend.Client {
	if f.url == "" {
		return nil
	}
	return backend.NewClient(f.url, f.token)
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		bf      backendFlags
		noCache bool
		asJSON  bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "analyze [request.toml|request.json|-]",
		Short: "Compare the local layout with the remote analysis backend",
		Long: `Compare the local layout with the remote analysis backend.

The request is laid out locally first. When a backend URL is configured the
request is also sent to the analysis service and both verdicts are shown.
If the backend cannot be reached the local result is shown with a warning.`,
		Example: `  spacelayout analyze aula.toml --backend-url https://campus.example.edu
  SPACELAYOUT_BACKEND_URL=https://campus.example.edu spacelayout analyze parking.json --prefer-remote`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd.Context(), args[0], opts, bf, noCache, asJSON)
		},
	}

	bf.register(cmd)
	cmd.Flags().BoolVar(&opts.PreferRemote, "prefer-remote", false, "show the backend verdict with the local placements")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached layouts and analyses")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full analysis as JSON")

	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, input string, opts pipeline.Options, bf backendFlags, noCache, asJSON bool) error {
	req, err := pipeline.ReadRequestFile(input)
	if err != nil {
		return fmt.Errorf("load request %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if client := bf.client(); client != nil {
		runner.Backend = client
		c.Logger.Debug("using analysis backend", "url", client.BaseURL())
	}

	spinner := newSpinnerWithContext(ctx, "Analyzing layout...")
	if runner.Backend != nil {
		spinner.SetMessage("Waiting for analysis backend...")
	}
	spinner.Start()
	out, err := runner.Analyze(ctx, req, opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	printResult(out.Display)
	printNewline()
	switch {
	case out.Remote == nil && runner.Backend == nil:
		printInfo("No analysis backend configured; showing the local result")
		printNextStep("Configure", "spacelayout analyze "+input+" --backend-url <url>")
	case out.Remote == nil:
		printWarning("Backend unavailable; offline result")
	default:
		printKeyValue("Local", verdict(out.Local.IsViable))
		printKeyValue("Backend", verdict(out.Remote.IsViable))
		if out.Local.IsViable != out.Remote.IsViable {
			printWarning("Local and backend verdicts differ")
		}
		if out.Raw != nil && out.Raw.ModelUsed != "" {
			printDetail("model: %s", out.Raw.ModelUsed)
		}
	}
	return nil
}
