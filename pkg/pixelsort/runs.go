package pixelsort

// Run is a half-open column interval [Start, End) within one row.
type Run struct {
	Start int
	End   int
}

// Len returns the number of pixels in the run.
func (r Run) Len() int { return r.End - r.Start }

// FindRuns returns the maximal runs of true values in mask, in ascending
// order. A mask that is entirely true yields a single run [0, len(mask));
// a mask with no true value yields nil.
func FindRuns(mask []bool) []Run {
	var runs []Run
	start := -1
	for i, in := range mask {
		switch {
		case in && start < 0:
			start = i
		case !in && start >= 0:
			runs = append(runs, Run{Start: start, End: i})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, Run{Start: start, End: len(mask)})
	}
	return runs
}
