package pixelsort

import (
	"image"
	"image/color"
)

// Grid is a row-major buffer of non-premultiplied 8-bit RGBA pixels.
//
// Grid implements [image.Image], so any standard encoder can consume it
// directly.
type Grid struct {
	Width  int
	Height int
	Pix    []color.NRGBA
}

// NewGrid allocates a zeroed width × height grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]color.NRGBA, width*height),
	}
}

// Row returns row y as a slice aliasing the grid's storage.
func (g *Grid) Row(y int) []color.NRGBA {
	i := y * g.Width
	return g.Pix[i : i+g.Width : i+g.Width]
}

// Pixel returns the pixel at (x, y).
func (g *Grid) Pixel(x, y int) color.NRGBA {
	return g.Pix[y*g.Width+x]
}

// Set stores p at (x, y).
func (g *Grid) Set(x, y int, p color.NRGBA) {
	g.Pix[y*g.Width+x] = p
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	c := &Grid{Width: g.Width, Height: g.Height, Pix: make([]color.NRGBA, len(g.Pix))}
	copy(c.Pix, g.Pix)
	return c
}

func (g *Grid) ColorModel() color.Model { return color.NRGBAModel }

func (g *Grid) Bounds() image.Rectangle { return image.Rect(0, 0, g.Width, g.Height) }

func (g *Grid) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return color.NRGBA{}
	}
	return g.Pix[y*g.Width+x]
}
