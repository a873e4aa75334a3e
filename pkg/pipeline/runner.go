package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/porter/pkg/cache"
	perrors "github.com/matzehuels/porter/pkg/errors"
	"github.com/matzehuels/porter/pkg/imageio"
	"github.com/matzehuels/porter/pkg/observability"
	"github.com/matzehuels/porter/pkg/pixelsort"
)

// cacheKeyType labels cache events for sorted outputs.
const cacheKeyType = "result"

// Runner encapsulates sorting with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the expiry of cached outputs. Zero means cache.TTLResult.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// SortBytes sorts the encoded image in data and returns the encoded result.
// The output keeps the input's format unless opts.Format is set; inputs
// whose format has no encoder are written as PNG.
func (r *Runner) SortBytes(ctx context.Context, data []byte, opts Options) ([]byte, error) {
	out, _, _, err := r.SortBytesWithCacheInfo(ctx, data, opts)
	return out, err
}

// SortBytesWithCacheInfo is like SortBytes and also reports the sort
// statistics and whether the result came from cache.
func (r *Runner) SortBytesWithCacheInfo(ctx context.Context, data []byte, opts Options) ([]byte, pixelsort.Stats, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, pixelsort.Stats{}, false, err
	}
	format := opts.Format
	if format == "" {
		f, err := imageio.Sniff(bytes.NewReader(data))
		if err != nil {
			return nil, pixelsort.Stats{}, false, err
		}
		format = f
		if !imageio.CanEncode(format) {
			format = imageio.FallbackFormat
		}
	}
	return r.sortEncoded(ctx, data, format, opts)
}

// SortFile reads the image at path, sorts it and writes the result next to
// the working directory (or opts.OutputDir) under the prefixed name.
func (r *Runner) SortFile(ctx context.Context, path string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnSortStart(ctx, path, opts.Metric)

	res, err := r.sortFile(ctx, path, opts)

	ev := observability.SortEvent{Err: err}
	if res != nil {
		ev.Rows = res.Stats.Rows
		ev.Runs = res.Stats.Runs
		ev.Pixels = res.Stats.Pixels
		ev.CacheHit = res.CacheHit
		ev.Duration = res.Duration
	}
	hooks.OnSortComplete(ctx, path, opts.Metric, ev)
	return res, err
}

func (r *Runner) sortFile(ctx context.Context, path string, opts Options) (*Result, error) {
	start := time.Now()
	if err := perrors.ValidateInputPath(path); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	output, format := opts.OutputFor(path)
	out, stats, hit, err := r.sortEncoded(ctx, data, format, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := imageio.WriteFile(output, out); err != nil {
		return nil, err
	}

	res := &Result{
		Input:    path,
		Output:   output,
		Format:   format,
		Stats:    stats,
		CacheHit: hit,
		Duration: time.Since(start),
	}
	opts.Logger.Debug("sorted image",
		"path", path,
		"output", output,
		"runs", stats.Runs,
		"pixels", stats.Pixels,
		"cached", hit,
		"duration", res.Duration)
	return res, nil
}

// sortEncoded is the cache-aware core shared by SortBytes and SortFile.
// opts must already be validated.
func (r *Runner) sortEncoded(ctx context.Context, data []byte, format string, opts Options) ([]byte, pixelsort.Stats, bool, error) {
	cacheHooks := observability.Cache()
	cacheKey := r.Keyer.ResultKey(cache.Hash(data), opts.ResultKeyOpts(format))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if out, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cacheHooks.OnCacheHit(ctx, cacheKeyType)
			return out, pixelsort.Stats{}, true, nil
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "error", err)
		}
		cacheHooks.OnCacheMiss(ctx, cacheKeyType)
	}

	g, _, err := imageio.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, pixelsort.Stats{}, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, pixelsort.Stats{}, false, err
	}

	stats := pixelsort.SortImageConcurrent(g, opts.SortMetric(), opts.Threshold(), opts.Workers)

	out, err := imageio.EncodeBytes(g, format)
	if err != nil {
		return nil, pixelsort.Stats{}, false, err
	}

	if err := r.Cache.Set(ctx, cacheKey, out, r.ttl()); err != nil {
		opts.Logger.Warn("cache write failed", "error", err)
	} else {
		cacheHooks.OnCacheSet(ctx, cacheKeyType, len(out))
	}
	return out, stats, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLResult
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
