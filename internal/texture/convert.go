// Package texture is the best-effort image pipeline around the mesh
// extractor: given a source texture it produces an equivalent image in the
// requested format, or falls back to copying the original bytes unchanged.
// Conversion never fails the surrounding mesh export.
package texture

import (
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	_ "github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

// Supported output formats for Convert.
const (
	FormatPNG  = "png"
	FormatWebP = "webp"
	FormatBMP  = "bmp"
	FormatCopy = "copy" // no conversion, copy the source bytes
)

// Convert decodes srcPath and writes stem.<format> into dstDir. If decoding
// or encoding fails for any reason (unknown container, compressed DDS, write
// error) the source bytes are copied unchanged as stem with the original
// extension. Returns the name of the file actually produced in dstDir, or ""
// when even the copy failed.
func Convert(srcPath, dstDir, stem, format string) string {
	if format == FormatCopy {
		return copyOriginal(srcPath, dstDir, stem)
	}

	f, err := os.Open(srcPath)
	if err != nil {
		return ""
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return copyOriginal(srcPath, dstDir, stem)
	}

	name := stem + "." + format
	outPath := filepath.Join(dstDir, name)
	out, err := os.Create(outPath)
	if err != nil {
		return copyOriginal(srcPath, dstDir, stem)
	}

	switch format {
	case FormatWebP:
		err = nativewebp.Encode(out, img, nil)
	case FormatBMP:
		err = bmp.Encode(out, img)
	default:
		err = png.Encode(out, img)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(outPath)
		return copyOriginal(srcPath, dstDir, stem)
	}
	return name
}

// copyOriginal places a byte-identical copy of src in dstDir under the
// stem with the source's extension.
func copyOriginal(srcPath, dstDir, stem string) string {
	name := stem + strings.ToLower(filepath.Ext(srcPath))
	dstPath := filepath.Join(dstDir, name)

	if sameFile(srcPath, dstPath) {
		return name
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return ""
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return ""
	}
	_, err = io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dstPath)
		return ""
	}
	return name
}

func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
