package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/citymaps/cityposter/pkg/cache"
	"github.com/citymaps/cityposter/pkg/errors"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the geometry cache",
	}

	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCachePathCmd())
	cmd.AddCommand(newCacheStatsCmd())

	return cmd
}

// openFileCache opens the configured on-disk cache. Commands in this
// file operate on the file cache only; a Redis cache is managed through
// Redis itself.
func openFileCache(cfg Config) (*cache.FileCache, string, error) {
	dir, err := cacheDir(cfg)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "resolving cache directory")
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "opening cache at %s", dir)
	}
	fc, ok := c.(*cache.FileCache)
	if !ok {
		return nil, "", errors.New(errors.ErrCodeInternal, "unexpected cache type %T", c)
	}
	return fc, dir, nil
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached geometry and geocoding results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			fc, dir, err := openFileCache(cfg)
			if err != nil {
				return err
			}

			entries, _, err := fc.Stats()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "reading cache stats")
			}
			if entries == 0 {
				printInfo("Cache is empty")
				return nil
			}

			if err := fc.Clear(); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "clearing cache")
			}
			printSuccess("Cleared %d cached entries", entries)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

func newCachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			dir, err := cacheDir(cfg)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "resolving cache directory")
			}
			fmt.Println(dir)
			return nil
		},
	}
}

func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache entry count and disk usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			fc, dir, err := openFileCache(cfg)
			if err != nil {
				return err
			}

			entries, size, err := fc.Stats()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "reading cache stats")
			}

			printKeyValue("Directory", dir)
			printKeyValue("Entries", fmt.Sprintf("%d", entries))
			printKeyValue("Size", formatBytes(size))

			if _, statErr := os.Stat(dir); os.IsNotExist(statErr) {
				printDetail("Cache directory does not exist yet")
			}
			return nil
		},
	}
}

// formatBytes renders a byte count with a binary unit suffix.
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
