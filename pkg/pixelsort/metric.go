package pixelsort

import (
	"fmt"
	"image/color"
	"strings"
)

// Metric selects the scalar sort key computed for each pixel.
type Metric uint8

const (
	Luminance Metric = iota
	Hue
	Saturation
)

// Metrics lists every metric in declaration order.
var Metrics = []Metric{Luminance, Hue, Saturation}

// KeyFunc maps a pixel to its sort key.
type KeyFunc func(color.NRGBA) int

// String returns the long lowercase name of the metric.
func (m Metric) String() string {
	switch m {
	case Luminance:
		return "luminance"
	case Hue:
		return "hue"
	case Saturation:
		return "saturation"
	default:
		return fmt.Sprintf("metric(%d)", uint8(m))
	}
}

// Alias returns the single-letter shorthand accepted by [ParseMetric].
func (m Metric) Alias() string {
	return m.String()[:1]
}

// MaxKey returns the largest key the metric can produce.
// Keys always lie in [0, MaxKey].
func (m Metric) MaxKey() int {
	switch m {
	case Hue:
		return 359
	default:
		return 255
	}
}

// KeyFunc returns the key function for m.
func (m Metric) KeyFunc() KeyFunc {
	switch m {
	case Luminance:
		return luminance
	case Hue:
		return hue
	case Saturation:
		return saturation
	default:
		panic(fmt.Sprintf("pixelsort: unknown metric %d", uint8(m)))
	}
}

// Key evaluates metric m on p.
func Key(m Metric, p color.NRGBA) int {
	return m.KeyFunc()(p)
}

// ParseMetric resolves a metric from its name or single-letter alias.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "luminance":
		return Luminance, nil
	case "h", "hue":
		return Hue, nil
	case "s", "saturation":
		return Saturation, nil
	}
	return 0, fmt.Errorf("unknown metric %q (must be one of: l, h, s)", s)
}

// luminance uses integer Rec. 709 weights, the same a grayscale conversion
// applies. The weights sum to 10000 so the result never exceeds 255.
func luminance(p color.NRGBA) int {
	return (2126*int(p.R) + 7152*int(p.G) + 722*int(p.B)) / 10000
}

func hue(p color.NRGBA) int {
	r, g, b := float64(p.R), float64(p.G), float64(p.B)
	hi, lo := max(r, g, b), min(r, g, b)
	if hi == lo {
		return 0
	}
	d := hi - lo

	var h float64
	switch hi {
	case r:
		h = (g - b) / d
	case g:
		h = 2 + (b-r)/d
	default:
		h = 4 + (r-g)/d
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return int(h)
}

// saturation is C / (1 - |2L - 1|) scaled to [0, 255]. With channels in
// [0, 255] the denominator is 255 - |max + min - 255|, so the whole
// computation stays in exact integer arithmetic.
func saturation(p color.NRGBA) int {
	hi := max(int(p.R), int(p.G), int(p.B))
	lo := min(int(p.R), int(p.G), int(p.B))
	if hi == lo {
		return 0
	}
	sum := hi + lo
	denom := sum
	if sum > 255 {
		denom = 510 - sum
	}
	return 255 * (hi - lo) / denom
}
