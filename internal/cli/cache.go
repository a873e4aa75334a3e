package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/porter/pkg/cache"
	perrors "github.com/matzehuels/porter/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the sorted image cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			where, err := describeCache(cfg)
			if err != nil {
				return perrors.Wrap(perrors.ErrCodeCache, err, "locate cache")
			}

			var count int
			switch cfg.Cache.Backend {
			case cache.BackendNone:
				printInfo("Caching is disabled")
				return nil
			case cache.BackendRedis:
				rc, err := cache.NewRedisCache(cmd.Context(), cache.RedisConfig{
					Addr:     cfg.Cache.RedisAddr,
					Password: cfg.Cache.RedisPassword,
					DB:       cfg.Cache.RedisDB,
					Prefix:   cfg.Cache.RedisPrefix,
				})
				if err != nil {
					return perrors.Wrap(perrors.ErrCodeCache, err, "connect to %s", where)
				}
				defer rc.Close()
				count, err = rc.Clear(cmd.Context())
				if err != nil {
					return perrors.Wrap(perrors.ErrCodeCache, err, "clear %s", where)
				}
			default:
				fc, err := cache.NewFileCache(where)
				if err != nil {
					return perrors.Wrap(perrors.ErrCodeCache, err, "open %s", where)
				}
				count, err = fc.Clear()
				if err != nil {
					return perrors.Wrap(perrors.ErrCodeCache, err, "clear %s", where)
				}
			}

			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %s", plural(count, "cached result"))
			printDetail("Location: %s", where)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			where, err := describeCache(cfg)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if where == "" {
				printInfo("Caching is disabled")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), where)
			return nil
		},
	}
}
