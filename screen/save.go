package screen

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned by Save for an unknown file extension.
var ErrUnsupportedFormat = errors.New("screen: unsupported image format")

// Encoder writes an image in one file format.
type Encoder func(w io.Writer, img image.Image) error

// encoders maps lower-case file extensions to encoders. A file without an
// extension is written as PNG.
var encoders = map[string]Encoder{
	"":      png.Encode,
	".png":  png.Encode,
	".jpg":  encodeJPEG,
	".jpeg": encodeJPEG,
	".gif":  encodeGIF,
	".bmp":  bmp.Encode,
	".tif":  encodeTIFF,
	".tiff": encodeTIFF,
	".ppm":  EncodePPM,
}

// EncoderFor returns the encoder for path's extension.
func EncoderFor(path string) (Encoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	enc, ok := encoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return enc, nil
}

// Save writes img to path, choosing the format from the extension:
// .png, .jpg/.jpeg, .gif, .bmp, .tif/.tiff or .ppm. No extension means PNG.
func Save(img image.Image, path string) error {
	enc, err := EncoderFor(path)
	if err != nil {
		return err
	}

	// Encode first so a failing encoder leaves any existing file alone.
	var buf bytes.Buffer
	if err := enc(&buf, img); err != nil {
		return fmt.Errorf("screen: encode %s: %w", path, err)
	}

	path = filepath.Clean(path)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("screen: create file: %w", err)
	}
	if _, err := buf.WriteTo(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("screen: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("screen: write %s: %w", path, err)
	}
	return nil
}

func encodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
}

func encodeGIF(w io.Writer, img image.Image) error {
	return gif.Encode(w, img, nil)
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

// EncodePPM writes img as a binary (P6) portable pixmap.
func EncodePPM(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", b.Dx(), b.Dy()); err != nil {
		return err
	}
	row := make([]byte, 0, b.Dx()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row = row[:0]
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			row = append(row, uint8(r>>8), uint8(g>>8), uint8(bl>>8))
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
