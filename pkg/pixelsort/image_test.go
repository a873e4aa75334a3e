package pixelsort

import (
	"image/color"
	"math/rand/v2"
	"slices"
	"testing"
)

func randomGrid(rng *rand.Rand, w, h int) *Grid {
	g := NewGrid(w, h)
	copy(g.Pix, randomRow(rng, w*h))
	return g
}

func TestGridRowAliases(t *testing.T) {
	g := NewGrid(3, 2)
	g.Row(1)[2] = px(1, 2, 3)
	if g.Pixel(2, 1) != px(1, 2, 3) {
		t.Errorf("Row did not alias grid storage")
	}
	if len(g.Row(0)) != 3 || cap(g.Row(0)) != 3 {
		t.Errorf("Row(0) len/cap = %d/%d, want 3/3", len(g.Row(0)), cap(g.Row(0)))
	}
	if got := g.At(-1, 0); got != (color.NRGBA{}) {
		t.Errorf("At out of bounds = %v", got)
	}
	if g.Bounds().Dx() != 3 || g.Bounds().Dy() != 2 {
		t.Errorf("Bounds = %v", g.Bounds())
	}
}

func TestSortImageRowIndependence(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	g := randomGrid(rng, 40, 12)
	th := Threshold{60, 200}

	want := g.Clone()
	for y := 0; y < want.Height; y++ {
		single := g.Clone()
		SortRow(single.Row(y), Luminance, th)
		for yy := 0; yy < g.Height; yy++ {
			if yy != y && !slices.Equal(single.Row(yy), g.Row(yy)) {
				t.Fatalf("sorting row %d changed row %d", y, yy)
			}
		}
		copy(want.Row(y), single.Row(y))
	}

	stats := SortImage(g, Luminance, th)
	if !slices.Equal(g.Pix, want.Pix) {
		t.Error("SortImage differs from sorting each row on its own")
	}
	if stats.Rows != 12 {
		t.Errorf("Stats.Rows = %d, want 12", stats.Rows)
	}
	if g.Width != 40 || g.Height != 12 || len(g.Pix) != 480 {
		t.Errorf("grid dimensions changed: %dx%d (%d)", g.Width, g.Height, len(g.Pix))
	}
}

func TestSortImageStats(t *testing.T) {
	g := NewGrid(5, 2)
	copy(g.Row(0), grayRow(10, 200, 50, 220, 5))
	copy(g.Row(1), grayRow(10, 200, 50, 220, 5))

	stats := SortImage(g, Luminance, Threshold{0, 100})
	want := Stats{Rows: 2, Runs: 6, Pixels: 6}
	if stats != want {
		t.Errorf("Stats = %+v, want %+v", stats, want)
	}
}

func TestSortImageConcurrentMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for _, workers := range []int{0, 1, 2, 3, 7, 64} {
		for _, m := range Metrics {
			g := randomGrid(rng, 31, 17)
			seq := g.Clone()
			th := Threshold{m.MaxKey() / 4, m.MaxKey() * 3 / 4}

			want := SortImage(seq, m, th)
			got := SortImageConcurrent(g, m, th, workers)
			if got != want {
				t.Errorf("workers=%d %s: stats %+v, want %+v", workers, m, got, want)
			}
			if !slices.Equal(g.Pix, seq.Pix) {
				t.Errorf("workers=%d %s: pixels differ from sequential sort", workers, m)
			}
		}
	}
}

func TestSortImageEmpty(t *testing.T) {
	g := NewGrid(0, 0)
	if s := SortImage(g, Hue, FullRange(Hue)); s != (Stats{}) {
		t.Errorf("Stats = %+v, want zero", s)
	}
	if s := SortImageConcurrent(g, Hue, FullRange(Hue), 4); s != (Stats{}) {
		t.Errorf("concurrent Stats = %+v, want zero", s)
	}
}
