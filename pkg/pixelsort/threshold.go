package pixelsort

import "fmt"

// Threshold is an inclusive key range [Low, High].
type Threshold struct {
	Low  int
	High int
}

// Contains reports whether key lies within the threshold.
func (t Threshold) Contains(key int) bool {
	return t.Low <= key && key <= t.High
}

// Valid reports whether t is ordered and lies inside the key domain of m.
func (t Threshold) Valid(m Metric) bool {
	return 0 <= t.Low && t.Low <= t.High && t.High <= m.MaxKey()
}

// String formats the threshold as "[low, high]".
func (t Threshold) String() string {
	return fmt.Sprintf("[%d, %d]", t.Low, t.High)
}

// FullRange returns the threshold covering every key of m.
func FullRange(m Metric) Threshold {
	return Threshold{Low: 0, High: m.MaxKey()}
}

// ClampThreshold clamps both bounds into the key domain of m.
// Bounds are never swapped. Callers reject an inverted pair before clamping,
// since clamping can collapse it into a valid one: [300, 255] becomes
// [255, 255] for luminance.
func ClampThreshold(m Metric, low, high int) Threshold {
	top := m.MaxKey()
	return Threshold{
		Low:  min(max(low, 0), top),
		High: min(max(high, 0), top),
	}
}
