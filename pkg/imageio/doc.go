// Package imageio converts between encoded image files and [pixelsort.Grid].
//
// # Formats
//
// Decoding supports PNG, JPEG and GIF from the standard library and BMP,
// TIFF and WebP from golang.org/x/image. Encoding supports every format
// except WebP, which has no pure-Go encoder; outputs derived from WebP inputs
// are written as PNG instead (see [OutputPath]).
//
// Decoded images are converted to non-premultiplied 8-bit RGBA regardless of
// their source color model, so paletted, gray, CMYK and 16-bit images all
// reach the sorter in the same channel order and depth.
//
// # Output names
//
// Sorted images keep the input's base name with a distinguishing prefix:
//
//	imageio.OutputPath("shots/beach.jpg", "sorted-", "")    // "sorted-beach.jpg"
//	imageio.OutputPath("shots/beach.webp", "sorted-", "out") // "out/sorted-beach.png"
//
// # Errors
//
// Failures are reported as coded errors from pkg/errors: FILE_NOT_FOUND when
// the input is missing, DECODE_FAILED for corrupt or unknown data,
// ENCODE_FAILED when writing fails and UNSUPPORTED for formats without an
// encoder.
package imageio
