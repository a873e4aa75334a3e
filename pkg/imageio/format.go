package imageio

import (
	"path/filepath"
	"strings"
)

// Format names, matching those reported by image.Decode.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
	FormatWebP = "webp"
)

// FallbackFormat is used for outputs whose input format cannot be encoded.
const FallbackFormat = FormatPNG

var extFormats = map[string]string{
	".png":  FormatPNG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".gif":  FormatGIF,
	".bmp":  FormatBMP,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".webp": FormatWebP,
}

var formatExts = map[string]string{
	FormatPNG:  ".png",
	FormatJPEG: ".jpg",
	FormatGIF:  ".gif",
	FormatBMP:  ".bmp",
	FormatTIFF: ".tiff",
	FormatWebP: ".webp",
}

// FormatFromPath returns the format implied by the file extension of path,
// or "" when the extension is not recognized.
func FormatFromPath(path string) string {
	return extFormats[strings.ToLower(filepath.Ext(path))]
}

// Extension returns the canonical file extension for format, including the
// leading dot, or "" for unknown formats.
func Extension(format string) string {
	return formatExts[format]
}

// CanDecode reports whether format can be read.
func CanDecode(format string) bool {
	_, ok := formatExts[format]
	return ok
}

// CanEncode reports whether format can be written.
func CanEncode(format string) bool {
	return CanDecode(format) && format != FormatWebP
}

// OutputPath derives the output path for input: the input's base name with
// prefix prepended, placed in dir (the current directory when dir is empty).
// When the input's format cannot be encoded, the extension is replaced with
// that of [FallbackFormat].
func OutputPath(input, prefix, dir string) string {
	base := filepath.Base(input)
	if !CanEncode(FormatFromPath(base)) {
		base = strings.TrimSuffix(base, filepath.Ext(base)) + Extension(FallbackFormat)
	}
	return filepath.Join(dir, prefix+base)
}

// OutputFormat returns the format an output for input will be written in.
func OutputFormat(input string) string {
	if f := FormatFromPath(input); CanEncode(f) {
		return f
	}
	return FallbackFormat
}
