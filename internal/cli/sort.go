package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/porter/pkg/config"
	perrors "github.com/matzehuels/porter/pkg/errors"
	"github.com/matzehuels/porter/pkg/pipeline"
)

// sortFlags holds the command-line flags for the sort command.
// Flags left unset fall back to the config file.
type sortFlags struct {
	metric  string // l|luminance, h|hue, s|saturation
	low     int    // lower bound of the key window, inclusive
	high    int    // upper bound of the key window, inclusive
	prefix  string // prepended to output file names
	outDir  string // output directory; empty writes to the working directory
	format  string // output format; empty keeps the input's
	workers int    // goroutines per image; 0 means one per CPU
	noCache bool
	refresh bool
}

func (f *sortFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.metric, "metric", "m", config.DefaultMetric, "sort key: l|luminance, h|hue, s|saturation")
	fs.IntVar(&f.low, "low", config.DefaultLow, "lower threshold (inclusive)")
	fs.IntVar(&f.high, "high", config.DefaultHigh, "higher threshold (inclusive; hue goes up to 359)")
	fs.StringVar(&f.prefix, "prefix", config.DefaultPrefix, "output file name prefix")
	fs.StringVarP(&f.outDir, "out-dir", "o", "", "output directory (default: working directory)")
	fs.StringVarP(&f.format, "format", "f", "", "output format: png, jpeg, gif, bmp, tiff (default: same as input)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "goroutines per image (default: one per CPU)")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute even when a cached result exists")
}

// options merges explicitly set flags over the config values.
func (f *sortFlags) options(fs *pflag.FlagSet, cfg *config.Config) pipeline.Options {
	opts := optionsFromConfig(cfg)
	if fs.Changed("metric") {
		opts.Metric = f.metric
	}
	if fs.Changed("low") {
		opts.Low = f.low
	}
	if fs.Changed("high") {
		opts.High = f.high
	}
	if fs.Changed("prefix") {
		opts.Prefix = f.prefix
	}
	if fs.Changed("out-dir") {
		opts.OutputDir = f.outDir
	}
	if fs.Changed("workers") {
		opts.Workers = f.workers
	}
	opts.Format = f.format
	opts.Refresh = f.refresh
	return opts
}

// sortCommand creates the sort command.
func (c *CLI) sortCommand() *cobra.Command {
	var flags sortFlags

	cmd := &cobra.Command{
		Use:   "sort [images...]",
		Short: "Pixel-sort one or more images",
		Long: `Pixel-sort one or more images.

Every row is scanned for maximal runs of pixels whose key under the chosen
metric lies inside [low, high]; each run is sorted by ascending key. Pixels
outside the window never move.

Thresholds are clamped to the metric's key range (0-255, hue 0-359). A
lower threshold above the higher one is an error.

Results are cached by image content and options, so sorting the same image
again with the same settings is instant.`,
		Example: `  porter sort photo.jpg
  porter sort -m h --low 180 --high 300 -o out *.png
  porter sort -m saturation --high 80 --format png scan.tiff`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := flags.options(cmd.Flags(), cfg)
			return c.runSort(cmd.Context(), cfg, args, opts, flags.noCache)
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

// runSort validates opts once, then sorts every path and reports each
// outcome. Any failed image makes the command fail after all were tried.
func (c *CLI) runSort(ctx context.Context, cfg *config.Config, paths []string, opts pipeline.Options, noCache bool) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner := c.newRunner(ctx, cfg, noCache)
	defer runner.Close()

	logger.Debug("sorting",
		"images", len(paths),
		"metric", opts.Metric,
		"low", opts.Low,
		"high", opts.High,
		"workers", opts.Workers)

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Sorting %s...", plural(len(paths), "image")))
	spinner.Start()
	batch := runner.SortBatch(ctx, paths, opts)
	if spinner.Cancelled() {
		spinner.StopWithError("Interrupted")
	} else {
		spinner.Stop()
	}

	for _, res := range batch.Results {
		printSuccess("%s", res.Input)
		printFile(res.Output)
		printStats(res.Stats, res.CacheHit)
	}
	for _, f := range batch.Failures {
		printError("%s: %s", f.Path, perrors.UserMessage(f.Err))
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Sorted %d of %s", len(batch.Results), plural(len(paths), "image")))
	if n := len(batch.Failures); n > 0 {
		return fmt.Errorf("%d of %s failed", n, plural(len(paths), "image"))
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
