// Package pixelsort implements row-wise pixel sorting.
//
// For every scan line of an image, pixels whose key under a [Metric] falls
// inside a [Threshold] are grouped into maximal contiguous runs, and each run
// is independently reordered by ascending key. Pixels outside every run keep
// their original value and position, which produces the familiar glitch
// streaks along bright, dark, or saturated regions.
//
// # Metrics
//
// Three metrics are available:
//
//   - [Luminance]: Rec. 709 luma, keys in [0, 255]
//   - [Hue]: HSL hue in whole degrees, keys in [0, 359]
//   - [Saturation]: HSL saturation scaled to [0, 255]
//
// Gray pixels (R == G == B) have no defined hue; both [Hue] and [Saturation]
// map them to key 0. This convention decides whether gray regions fall inside
// a threshold window, so it is part of the contract.
//
// # Usage
//
//	g := pixelsort.NewGrid(w, h)
//	// ... fill g.Pix ...
//	t := pixelsort.ClampThreshold(pixelsort.Luminance, 0, 100)
//	stats := pixelsort.SortImage(g, pixelsort.Luminance, t)
//
// Rows are independent, so [SortImageConcurrent] may spread them across
// goroutines without changing the result.
//
// # Preconditions
//
// The functions in this package never fail and never validate their
// threshold. Callers must pass a threshold for which [Threshold.Valid]
// reports true (see [ClampThreshold]); out-of-domain or inverted ranges are
// contract violations handled at the application boundary.
package pixelsort
