package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached pipeline results",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. The cache layout
// is one level of two-character shard directories with entry files inside,
// so clearing walks shards and removes each one once it is empty.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached graphs, layouts, and images",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			shards, err := os.ReadDir(dir)
			if os.IsNotExist(err) || len(shards) == 0 {
				printInfo("Cache is empty")
				return nil
			}
			if err != nil {
				return fmt.Errorf("read cache dir: %w", err)
			}

			removed := 0
			var freed int64
			for _, shard := range shards {
				shardPath := filepath.Join(dir, shard.Name())
				if !shard.IsDir() {
					if info, err := shard.Info(); err == nil {
						freed += info.Size()
					}
					if os.Remove(shardPath) == nil {
						removed++
					}
					continue
				}
				entries, err := os.ReadDir(shardPath)
				if err != nil {
					continue
				}
				for _, entry := range entries {
					entryPath := filepath.Join(shardPath, entry.Name())
					if info, err := entry.Info(); err == nil {
						freed += info.Size()
					}
					if os.Remove(entryPath) == nil {
						removed++
					}
				}
				os.Remove(shardPath)
			}

			printSuccess("Cleared %d cached entries (%.1f KB)", removed, float64(freed)/1024)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
