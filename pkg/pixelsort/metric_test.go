package pixelsort

import (
	"image/color"
	"math/rand/v2"
	"testing"
)

func px(r, g, b uint8) color.NRGBA { return color.NRGBA{R: r, G: g, B: b, A: 255} }

func TestLuminance(t *testing.T) {
	tests := []struct {
		name string
		p    color.NRGBA
		want int
	}{
		{"black", px(0, 0, 0), 0},
		{"white", px(255, 255, 255), 255},
		{"red", px(255, 0, 0), 54},
		{"green", px(0, 255, 0), 182},
		{"blue", px(0, 0, 255), 18},
		{"gray", px(128, 128, 128), 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(Luminance, tt.p); got != tt.want {
				t.Errorf("Key(Luminance, %v) = %d, want %d", tt.p, got, tt.want)
			}
		})
	}
}

func TestHue(t *testing.T) {
	tests := []struct {
		name string
		p    color.NRGBA
		want int
	}{
		{"red", px(255, 0, 0), 0},
		{"yellow", px(255, 255, 0), 60},
		{"green", px(0, 255, 0), 120},
		{"cyan", px(0, 255, 255), 180},
		{"blue", px(0, 0, 255), 240},
		{"magenta", px(255, 0, 255), 300},
		{"rose wraps below 360", px(255, 0, 1), 359},
		{"orange", px(255, 128, 0), 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(Hue, tt.p); got != tt.want {
				t.Errorf("Key(Hue, %v) = %d, want %d", tt.p, got, tt.want)
			}
		})
	}
}

func TestSaturation(t *testing.T) {
	tests := []struct {
		name string
		p    color.NRGBA
		want int
	}{
		{"pure red", px(255, 0, 0), 255},
		{"dark pure blue", px(0, 0, 128), 255},
		{"pastel", px(255, 128, 128), 255},
		{"muted", px(192, 64, 64), 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(Saturation, tt.p); got != tt.want {
				t.Errorf("Key(Saturation, %v) = %d, want %d", tt.p, got, tt.want)
			}
		})
	}
}

// Gray pixels have no hue; mapping them to 0 for both hue and saturation is
// a documented convention that decides whether gray areas are sorted.
func TestGrayPixelConvention(t *testing.T) {
	for v := 0; v <= 255; v++ {
		p := px(uint8(v), uint8(v), uint8(v))
		if got := Key(Hue, p); got != 0 {
			t.Fatalf("Key(Hue, gray %d) = %d, want 0", v, got)
		}
		if got := Key(Saturation, p); got != 0 {
			t.Fatalf("Key(Saturation, gray %d) = %d, want 0", v, got)
		}
	}
}

func TestKeyDomain(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20000; i++ {
		p := color.NRGBA{R: uint8(rng.UintN(256)), G: uint8(rng.UintN(256)), B: uint8(rng.UintN(256)), A: uint8(rng.UintN(256))}
		for _, m := range Metrics {
			k := Key(m, p)
			if k < 0 || k > m.MaxKey() {
				t.Fatalf("Key(%s, %v) = %d, outside [0, %d]", m, p, k, m.MaxKey())
			}
		}
	}
}

func TestKeyIgnoresAlpha(t *testing.T) {
	a := color.NRGBA{R: 10, G: 200, B: 90, A: 255}
	b := color.NRGBA{R: 10, G: 200, B: 90, A: 3}
	for _, m := range Metrics {
		if Key(m, a) != Key(m, b) {
			t.Errorf("%s key depends on alpha", m)
		}
	}
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		in      string
		want    Metric
		wantErr bool
	}{
		{"l", Luminance, false},
		{"luminance", Luminance, false},
		{"H", Hue, false},
		{"hue", Hue, false},
		{" s ", Saturation, false},
		{"Saturation", Saturation, false},
		{"x", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMetric(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMetric(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMetric(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestMetricNames(t *testing.T) {
	for _, m := range Metrics {
		back, err := ParseMetric(m.String())
		if err != nil || back != m {
			t.Errorf("ParseMetric(%q) = %v, %v", m.String(), back, err)
		}
		back, err = ParseMetric(m.Alias())
		if err != nil || back != m {
			t.Errorf("ParseMetric(%q) = %v, %v", m.Alias(), back, err)
		}
	}
	if Hue.MaxKey() != 359 || Luminance.MaxKey() != 255 || Saturation.MaxKey() != 255 {
		t.Error("unexpected MaxKey values")
	}
}
