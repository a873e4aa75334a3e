// Package pkg provides the libraries behind porter, a row-wise pixel sorter.
//
// # Overview
//
// Porter reorders the pixels of each image row: pixels whose key under a
// metric (luminance, hue or saturation) falls inside a threshold window form
// runs, and each run is sorted by ascending key. The pkg directory is
// organized into three areas:
//
//  1. [pixelsort] - The sorting core (metrics, runs, row and image sorting)
//  2. [imageio] and [pipeline] - Decoding, validation, caching and encoding
//  3. Infrastructure - [cache], [config], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow through porter:
//
//	photo.jpg
//	    ↓
//	[imageio] package (decode into a pixel grid)
//	    ↓
//	[pipeline] package (clamp thresholds, consult the cache)
//	    ↓
//	[pixelsort] package (find runs, sort each run by key)
//	    ↓
//	sorted-photo.jpg
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.SortFile(ctx, "photo.jpg", pipeline.Options{
//	    Metric: "luminance",
//	    Low:    0,
//	    High:   120,
//	})
//
// For in-memory grids, call the core directly:
//
//	t := pixelsort.ClampThreshold(pixelsort.Hue, 180, 300)
//	stats := pixelsort.SortImage(grid, pixelsort.Hue, t)
package pkg
