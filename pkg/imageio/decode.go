package imageio

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/porter/pkg/errors"
	"github.com/matzehuels/porter/pkg/pixelsort"
)

// Decode reads an encoded image from r and converts it to a grid.
// The returned format is the name of the codec that decoded the data.
func Decode(r io.Reader) (*pixelsort.Grid, string, error) {
	img, format, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeDecode, err, "decode image")
	}
	return FromImage(img), format, nil
}

// Sniff reports the format of the encoded image in r by reading only its
// header.
func Sniff(r io.Reader) (string, error) {
	_, format, err := image.DecodeConfig(bufio.NewReader(r))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeDecode, err, "detect image format")
	}
	return format, nil
}

// Load opens and decodes the image file at path.
func Load(path string) (*pixelsort.Grid, string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeDecode, err, "decode %s", path)
	}
	return FromImage(img), format, nil
}

// FromImage converts img to a grid of non-premultiplied RGBA pixels.
// The grid origin is the top-left corner of img's bounds.
func FromImage(img image.Image) *pixelsort.Grid {
	b := img.Bounds()
	g := pixelsort.NewGrid(b.Dx(), b.Dy())

	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < g.Height; y++ {
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			row := g.Row(y)
			for x := range row {
				p := src.Pix[i+4*x : i+4*x+4 : i+4*x+4]
				row[x] = color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
			}
		}
		return g
	}

	for y := 0; y < g.Height; y++ {
		row := g.Row(y)
		for x := range row {
			row[x] = color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
		}
	}
	return g
}
