package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spacelayout/pkg/cache"
)

// cacheCommand groups the local cache subcommands.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local layout cache",
		Long: `Manage the local layout cache.

Layouts, rendered artifacts and backend analyses are cached as JSON files
under the cache directory ($SPACELAYOUT_CACHE_DIR, $XDG_CACHE_HOME/spacelayout
or ~/.cache/spacelayout). The serve command can use Redis or MongoDB instead;
these subcommands only touch the local directory.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cacheInfoCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	var expired bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached layouts, artifacts and analyses",
		Example: `  spacelayout cache clear
  spacelayout cache clear --expired`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, dir, err := openLocalCache()
			if err != nil || fc == nil {
				return err
			}

			var count int
			if expired {
				count, err = fc.Prune()
			} else {
				count, err = fc.Clear()
			}
			if err != nil {
				return err
			}

			c.Logger.Debug("cache cleared", "dir", dir, "removed", count, "expired_only", expired)
			printSuccess("Removed %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&expired, "expired", false, "only remove expired or unreadable entries")
	return cmd
}

func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the cache directory, entry count and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, dir, err := openLocalCache()
			if err != nil || fc == nil {
				return err
			}
			entries, size, err := fc.Usage()
			if err != nil {
				return err
			}
			printKeyValue("Directory", dir)
			printKeyValue("Entries", fmt.Sprintf("%d", entries))
			printKeyValue("Size", formatBytes(size))
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// openLocalCache opens the cache directory without creating it. A missing
// directory prints a notice and returns a nil cache.
func openLocalCache() (*cache.FileCache, string, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, "", fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil, dir, nil
	}
	fc, err := cache.NewFileCache(dir)
	return fc, dir, err
}

// formatBytes renders n with a binary unit, e.g. "1.5 MiB".
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
