package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	perrors "github.com/matzehuels/porter/pkg/errors"
	"github.com/matzehuels/porter/pkg/observability"
)

// Failure records an image that could not be sorted.
type Failure struct {
	Path string
	Err  error
}

// BatchResult collects the outcome of SortBatch.
type BatchResult struct {
	RunID    string
	Results  []*Result // successful images, in input order
	Failures []Failure
	Skipped  []string // paths not attempted because the context ended
	Duration time.Duration

	canceled error
}

// Err joins every per-image failure, plus the context error when the batch
// stopped early. It is nil only when every image was sorted.
func (b *BatchResult) Err() error {
	errs := make([]error, 0, len(b.Failures)+1)
	for _, f := range b.Failures {
		errs = append(errs, fmt.Errorf("%s: %w", f.Path, f.Err))
	}
	if b.canceled != nil {
		errs = append(errs, b.canceled)
	}
	return errors.Join(errs...)
}

// SortBatch sorts every path in order. A failing image is recorded and the
// batch moves on; only context cancellation stops it early. An input whose
// output path was already written earlier in the batch fails with
// [perrors.ErrCodeInvalidInput] instead of overwriting it.
func (r *Runner) SortBatch(ctx context.Context, paths []string, opts Options) *BatchResult {
	start := time.Now()
	b := &BatchResult{RunID: uuid.NewString()}

	r.applyLogger(&opts)
	opts.Logger = opts.Logger.With("run", b.RunID)

	hooks := observability.Pipeline()
	hooks.OnBatchStart(ctx, b.RunID, len(paths))
	opts.Logger.Debug("batch started", "images", len(paths))

	if err := opts.ValidateAndSetDefaults(); err != nil {
		// Invalid options fail every image the same way.
		for _, p := range paths {
			b.Failures = append(b.Failures, Failure{Path: p, Err: err})
		}
	} else {
		written := make(map[string]string, len(paths)) // output -> input
		for i, p := range paths {
			if err := ctx.Err(); err != nil {
				b.canceled = err
				b.Skipped = append(b.Skipped, paths[i:]...)
				break
			}
			out, _ := opts.OutputFor(p)
			if prev, dup := written[out]; dup {
				err := perrors.New(perrors.ErrCodeInvalidInput,
					"output %s already written from %s", out, prev)
				opts.Logger.Warn("duplicate output", "path", p, "output", out, "first", prev)
				b.Failures = append(b.Failures, Failure{Path: p, Err: err})
				continue
			}
			res, err := r.SortFile(ctx, p, opts)
			if err != nil {
				if ctx.Err() != nil {
					b.canceled = ctx.Err()
					b.Skipped = append(b.Skipped, paths[i:]...)
					break
				}
				opts.Logger.Warn("sort failed", "path", p, "error", err)
				b.Failures = append(b.Failures, Failure{Path: p, Err: err})
				continue
			}
			written[out] = p
			b.Results = append(b.Results, res)
		}
	}

	b.Duration = time.Since(start)
	hooks.OnBatchComplete(ctx, b.RunID, len(b.Results), len(b.Failures), b.Duration)
	opts.Logger.Debug("batch finished",
		"succeeded", len(b.Results),
		"failed", len(b.Failures),
		"skipped", len(b.Skipped),
		"duration", b.Duration)
	return b
}
