package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/crategraph/pkg/cache"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the registry response cache",
	}

	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCachePathCmd())

	return cmd
}

func newCacheClearCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached registry responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cacheDir(dir)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); os.IsNotExist(err) {
				printInfo("Cache is already empty")
				return nil
			}
			if err := os.RemoveAll(path); err != nil {
				return fmt.Errorf("clear cache %s: %w", path, err)
			}
			printSuccess("Cache cleared at %s", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "cache-dir", "", "cache directory (default: ~/.cache/crategraph)")

	return cmd
}

func newCachePathCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cacheDir(dir)
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "cache-dir", "", "cache directory (default: ~/.cache/crategraph)")

	return cmd
}

func cacheDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return cache.DefaultDir()
}
