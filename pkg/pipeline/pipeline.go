// Package pipeline runs pixel sorting on encoded images with caching.
//
// It is the boundary between user input and the infallible sorting core in
// [pixelsort]: metric names are parsed, thresholds are clamped to the
// metric's key domain and rejected when inverted, and output locations are
// derived here, before any pixel is touched.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.Options{
//	    Metric: "hue",
//	    Low:    180,
//	    High:   300,
//	}
//	res, err := runner.SortFile(ctx, "photo.png", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Output) // sorted-photo.png
//
// Sort several images, continuing past failures:
//
//	batch := runner.SortBatch(ctx, paths, opts)
//	if err := batch.Err(); err != nil {
//	    os.Exit(1)
//	}
package pipeline

import (
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/porter/pkg/cache"
	perrors "github.com/matzehuels/porter/pkg/errors"
	"github.com/matzehuels/porter/pkg/imageio"
	"github.com/matzehuels/porter/pkg/pixelsort"
)

const (
	// DefaultMetric is used when Options.Metric is empty.
	DefaultMetric = "luminance"

	// DefaultPrefix is prepended to the base name of every output file.
	DefaultPrefix = "sorted-"
)

// Options contains all configuration for sorting one or more images.
type Options struct {
	Metric    string `json:"metric"`
	Low       int    `json:"low"`
	High      int    `json:"high"`
	Prefix    string `json:"prefix,omitempty"`
	OutputDir string `json:"output_dir,omitempty"` // empty means the current directory
	Format    string `json:"format,omitempty"`     // empty keeps the input's format
	Workers   int    `json:"workers,omitempty"`
	Refresh   bool   `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	metric    pixelsort.Metric
	threshold pixelsort.Threshold
	validated bool
}

// Result describes one sorted image.
type Result struct {
	Input    string
	Output   string
	Format   string
	Stats    pixelsort.Stats // zero on a cache hit
	CacheHit bool
	Duration time.Duration
}

// ValidateAndSetDefaults parses the metric, clamps the thresholds into the
// metric's key domain and applies defaults. A lower threshold above the
// higher one is rejected with [perrors.ErrCodeInvalidThreshold] before any
// clamping; the bounds are never swapped.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Metric == "" {
		o.Metric = DefaultMetric
	}
	m, err := pixelsort.ParseMetric(o.Metric)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidMetric, err, "invalid metric")
	}

	if o.Low > o.High {
		return perrors.New(perrors.ErrCodeInvalidThreshold,
			"lower threshold %d exceeds higher threshold %d", o.Low, o.High)
	}
	t := pixelsort.ClampThreshold(m, o.Low, o.High)

	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	if err := perrors.ValidatePrefix(o.Prefix); err != nil {
		return err
	}
	if f := imageio.FormatFromPath("." + o.Format); f != "" {
		o.Format = f // accepts extensions such as "jpg" and "TIF"
	}
	if o.Format != "" && !imageio.CanEncode(o.Format) {
		return perrors.New(perrors.ErrCodeInvalidFormat,
			"cannot write %q (must be one of: png, jpeg, gif, bmp, tiff)", o.Format)
	}
	if o.Workers < 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "workers must not be negative")
	}
	if o.Workers == 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.Metric = m.String()
	o.Low, o.High = t.Low, t.High
	o.metric = m
	o.threshold = t
	o.validated = true
	return nil
}

// SortMetric returns the parsed metric. Only meaningful after
// ValidateAndSetDefaults succeeded.
func (o *Options) SortMetric() pixelsort.Metric {
	return o.metric
}

// Threshold returns the clamped threshold. Only meaningful after
// ValidateAndSetDefaults succeeded.
func (o *Options) Threshold() pixelsort.Threshold {
	return o.threshold
}

// OutputFor returns where the output for input is written and in which
// format.
func (o *Options) OutputFor(input string) (path, format string) {
	if o.Format == "" {
		return imageio.OutputPath(input, o.Prefix, o.OutputDir), imageio.OutputFormat(input)
	}
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + imageio.Extension(o.Format)
	return filepath.Join(o.OutputDir, o.Prefix+base), o.Format
}

// ResultKeyOpts returns cache key options for an output in format.
func (o *Options) ResultKeyOpts(format string) cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		Metric: o.Metric,
		Low:    o.Low,
		High:   o.High,
		Format: format,
	}
}
