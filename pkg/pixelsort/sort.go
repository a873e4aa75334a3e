package pixelsort

import (
	"cmp"
	"image/color"
	"slices"
)

type keyed struct {
	key int
	px  color.NRGBA
}

// SortRow sorts every run of in-threshold pixels in row by ascending key.
// Pixels outside all runs are left untouched. Equal keys keep their
// original relative order.
func SortRow(row []color.NRGBA, m Metric, t Threshold) {
	sortRow(row, m.KeyFunc(), t, nil)
}

// sortRow is SortRow with a caller-owned scratch buffer. It returns the runs
// it sorted and the (possibly grown) buffer.
func sortRow(row []color.NRGBA, key KeyFunc, t Threshold, buf []keyed) ([]Run, []keyed) {
	mask := make([]bool, len(row))
	for i, p := range row {
		mask[i] = t.Contains(key(p))
	}

	runs := FindRuns(mask)
	for _, r := range runs {
		if r.Len() < 2 {
			continue
		}
		buf = buf[:0]
		for _, p := range row[r.Start:r.End] {
			buf = append(buf, keyed{key: key(p), px: p})
		}
		slices.SortStableFunc(buf, func(a, b keyed) int {
			return cmp.Compare(a.key, b.key)
		})
		for i, k := range buf {
			row[r.Start+i] = k.px
		}
	}
	return runs, buf
}
