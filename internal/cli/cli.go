package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spacelayout/pkg/buildinfo"
	"github.com/matzehuels/spacelayout/pkg/cache"
	"github.com/matzehuels/spacelayout/pkg/catalog"
	"github.com/matzehuels/spacelayout/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "spacelayout"

	// envPrefix prefixes every environment variable the CLI reads.
	envPrefix = "SPACELAYOUT_"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// catalogPath overrides the embedded catalog for every command.
	catalogPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Spacelayout plans floor layouts for institutional spaces",
		Long:         `Spacelayout checks whether a room can hold the furniture, equipment or vehicles requested for it and places every instance on a floor plan: classrooms, computer labs, parking lots, auditoriums, offices and conference rooms.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.catalogPath, "catalog", os.Getenv(envPrefix+"CATALOG"), "catalog TOML file (default: built-in catalog)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(cache, nil, c.Logger)
	if err := c.applyCatalog(runner); err != nil {
		runner.Close()
		return nil, err
	}
	return runner, nil
}

// applyCatalog loads the --catalog file into runner, if one was given.
func (c *CLI) applyCatalog(runner *pipeline.Runner) error {
	cat, source, err := c.loadCatalog()
	if err != nil || cat == nil {
		return err
	}
	runner.SetCatalog(cat, source)
	c.Logger.Debug("loaded catalog", "path", c.catalogPath, "spaces", len(cat.Spaces()))
	return nil
}

// loadCatalog returns the --catalog file, or nil when none was given.
func (c *CLI) loadCatalog() (*catalog.Catalog, []byte, error) {
	if c.catalogPath == "" {
		return nil, nil, nil
	}
	source, err := os.ReadFile(c.catalogPath)
	if err != nil {
		return nil, nil, err
	}
	cat, err := catalog.Load(bytes.NewReader(source))
	if err != nil {
		return nil, nil, err
	}
	return cat, source, nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns $SPACELAYOUT_CACHE_DIR, or the XDG cache directory
// (~/.cache/spacelayout/).
func cacheDir() (string, error) {
	if dir := os.Getenv(envPrefix + "CACHE_DIR"); dir != "" {
		return dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// basePath derives the output base path from the output flag and the input
// file. A known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "layout"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// envOr returns the SPACELAYOUT_-prefixed environment variable name, or def.
func envOr(name, def string) string {
	if v := os.Getenv(envPrefix + name); v != "" {
		return v
	}
	return def
}
