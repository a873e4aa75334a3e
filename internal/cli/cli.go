package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/porter/pkg/buildinfo"
	"github.com/matzehuels/porter/pkg/cache"
	"github.com/matzehuels/porter/pkg/config"
	perrors "github.com/matzehuels/porter/pkg/errors"
	"github.com/matzehuels/porter/pkg/pipeline"
)

// appName is the application name used for display.
const appName = "porter"

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

	// configPath is set by the persistent --config flag; empty means the
	// default location, where a missing file is allowed.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// The root command also accepts the classic positional form
// "porter <l|h|s> <low> <high> <images...>".
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "porter <l|h|s> <low> <high> <images...>",
		Short: "Porter pixel-sorts images along their rows",
		Long: `Porter sorts the pixels of every image row by luminance, hue or saturation.

Only pixels whose key lies inside the [low, high] window are moved; each
maximal run of such pixels is sorted on its own, everything else stays put.
Results are written to the working directory as sorted-<name>.`,
		Example: `  porter l 0 120 photo.jpg
  porter sort -m hue --low 180 --high 300 *.png`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 4 {
				_ = cmd.Usage()
				return perrors.New(perrors.ErrCodeInvalidInput,
					"expected <l|h|s> <low> <high> <images...>, got %d argument(s)", len(args))
			}
			return c.runLegacy(cmd.Context(), args)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/porter/config.toml)")

	// Register all subcommands
	root.AddCommand(c.sortCommand())
	root.AddCommand(c.metricsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// runLegacy handles "porter <metric> <low> <high> <images...>".
func (c *CLI) runLegacy(ctx context.Context, args []string) error {
	low, err := strconv.Atoi(args[1])
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidThreshold, err, "low threshold %q", args[1])
	}
	high, err := strconv.Atoi(args[2])
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidThreshold, err, "high threshold %q", args[2])
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts := optionsFromConfig(cfg)
	opts.Metric = args[0]
	opts.Low, opts.High = low, high

	return c.runSort(ctx, cfg, args[3:], opts, false)
}

// =============================================================================
// Config and Runner Factory
// =============================================================================

// loadConfig reads the file named by --config, or the default config file
// when the flag is unset.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.configPath != "" {
		return config.LoadFile(c.configPath)
	}
	path, err := config.Path()
	if err != nil {
		return config.Default(), nil
	}
	return config.Load(path)
}

// optionsFromConfig seeds pipeline options with config values.
func optionsFromConfig(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		Metric:    cfg.Sort.Metric,
		Low:       cfg.Sort.Low,
		High:      cfg.Sort.High,
		Workers:   cfg.Sort.Workers,
		Prefix:    cfg.Output.Prefix,
		OutputDir: cfg.Output.Dir,
	}
}

// newRunner creates a pipeline runner for CLI use. A cache backend that
// cannot be opened is reported and replaced by no caching.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, noCache bool) *pipeline.Runner {
	store := c.newCache(ctx, cfg, noCache)
	runner := pipeline.NewRunner(store, nil, c.Logger)
	runner.TTL = cfg.Cache.TTL.Duration
	return runner
}

func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	opts, err := cfg.CacheOptions()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	store, err := cache.Open(ctx, opts)
	if err != nil {
		printWarning("Cache unavailable, continuing without it")
		c.Logger.Debug("open cache", "backend", opts.Backend, "error", err)
		return cache.NewNullCache()
	}
	return store
}

// describeCache returns a human-readable location for the configured cache.
func describeCache(cfg *config.Config) (string, error) {
	switch cfg.Cache.Backend {
	case cache.BackendRedis:
		return fmt.Sprintf("redis://%s/%d", cfg.Cache.RedisAddr, cfg.Cache.RedisDB), nil
	case cache.BackendNone:
		return "", nil
	}
	opts, err := cfg.CacheOptions()
	if err != nil {
		return "", err
	}
	return opts.Dir, nil
}
