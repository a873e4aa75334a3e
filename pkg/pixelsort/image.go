package pixelsort

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Stats summarizes one image sort.
type Stats struct {
	Rows   int // rows processed
	Runs   int // runs found across all rows
	Pixels int // pixels that belonged to a run
}

func (s *Stats) add(runs []Run) {
	s.Rows++
	s.Runs += len(runs)
	for _, r := range runs {
		s.Pixels += r.Len()
	}
}

// SortImage applies [SortRow] to every row of g, top to bottom.
// The grid dimensions are unchanged.
func SortImage(g *Grid, m Metric, t Threshold) Stats {
	var (
		stats Stats
		buf   []keyed
		runs  []Run
	)
	key := m.KeyFunc()
	for y := 0; y < g.Height; y++ {
		runs, buf = sortRow(g.Row(y), key, t, buf)
		stats.add(runs)
	}
	return stats
}

// SortImageConcurrent is [SortImage] with rows partitioned into contiguous
// bands, one goroutine per band, at most workers at a time. A workers value
// below 1 means runtime.NumCPU. The result is identical to SortImage.
func SortImageConcurrent(g *Grid, m Metric, t Threshold, workers int) Stats {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers == 1 || g.Height < 2 {
		return SortImage(g, m, t)
	}

	bands := min(workers, g.Height)
	size := (g.Height + bands - 1) / bands
	partial := make([]Stats, bands)
	key := m.KeyFunc()

	var eg errgroup.Group
	eg.SetLimit(workers)
	for b := 0; b < bands; b++ {
		lo, hi := b*size, min((b+1)*size, g.Height)
		eg.Go(func() error {
			var (
				buf  []keyed
				runs []Run
			)
			for y := lo; y < hi; y++ {
				runs, buf = sortRow(g.Row(y), key, t, buf)
				partial[b].add(runs)
			}
			return nil
		})
	}
	_ = eg.Wait()

	var total Stats
	for _, s := range partial {
		total.Rows += s.Rows
		total.Runs += s.Runs
		total.Pixels += s.Pixels
	}
	return total
}
