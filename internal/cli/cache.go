package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/abclisten/pkg/pipeline"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered mind-map cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached mind-map renderings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := c.newCache(false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			p := newPrinter(cmd.OutOrStdout())
			if cache == nil {
				p.info("Cache is disabled")
				return nil
			}
			runner := pipeline.NewRunner(nil, cache, c.Logger)
			defer runner.Close()

			count, err := runner.ClearCache(cmd.Context())
			if err != nil {
				return err
			}
			p.success("Cleared %d cached renderings", count)
			if dir, err := cacheDir(); err == nil {
				p.detail("Directory: %s", dir)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
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
