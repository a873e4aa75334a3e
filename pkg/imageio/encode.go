package imageio

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/matzehuels/porter/pkg/errors"
	"github.com/matzehuels/porter/pkg/pixelsort"
)

// JPEGQuality is the quality used when writing JPEG outputs.
const JPEGQuality = 95

// ToImage copies g into an *image.NRGBA anchored at the origin.
func ToImage(g *pixelsort.Grid) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for i, p := range g.Pix {
		img.Pix[4*i+0] = p.R
		img.Pix[4*i+1] = p.G
		img.Pix[4*i+2] = p.B
		img.Pix[4*i+3] = p.A
	}
	return img
}

// Encode writes g to w in the given format.
func Encode(w io.Writer, g *pixelsort.Grid, format string) error {
	if !CanEncode(format) {
		return errors.New(errors.ErrCodeUnsupported, "cannot encode format %q", format)
	}

	img := ToImage(g)
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case FormatGIF:
		err = gif.Encode(w, img, nil)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "encode %s", format)
	}
	return nil
}

// EncodeBytes encodes g in the given format and returns the bytes.
func EncodeBytes(g *pixelsort.Grid, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, g, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save encodes g in the format implied by path's extension and writes it.
func Save(path string, g *pixelsort.Grid) error {
	format := FormatFromPath(path)
	if !CanEncode(format) {
		return errors.New(errors.ErrCodeUnsupported, "cannot write %s: unsupported output format", path)
	}
	data, err := EncodeBytes(g, format)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

// WriteFile writes data to path through a temporary file in the same
// directory, so readers never observe a partially written image.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".porter-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "write %s", path)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeEncode, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "write %s", path)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "write %s", path)
	}
	return nil
}
