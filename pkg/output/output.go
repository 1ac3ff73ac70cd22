// Package output writes rendered images to disk in the format named by the file extension.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

var ErrUnsupportedFormat = errors.New("output: unsupported image format")

// Format is an image file format
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	PPM  Format = "ppm"
)

// jpegQuality is used for every JPEG written
const jpegQuality = 95

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	case ".ppm":
		return PPM, nil
	}
	return "", fmt.Errorf("%q: %w", filepath.Ext(path), ErrUnsupportedFormat)
}

// DefaultPath returns output/<scene>/render_<timestamp>.png
func DefaultPath(sceneName string, t time.Time) string {
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", t.Format("20060102_150405")))
}

// Save writes img to path, creating missing directories. A leading ~ is expanded to the home
// directory. It returns the path actually written.
func Save(path string, img image.Image) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", path, err)
	}

	format, err := FormatFromPath(expanded)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(expanded); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(expanded)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}

	if err := Encode(file, img, format); err != nil {
		file.Close()
		return "", fmt.Errorf("encode %s: %w", format, err)
	}
	if err := file.Close(); err != nil {
		return "", err
	}

	return expanded, nil
}

// Encode writes img to writer in the given format
func Encode(writer io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG:
		return png.Encode(writer, img)
	case JPEG:
		return jpeg.Encode(writer, img, &jpeg.Options{Quality: jpegQuality})
	case BMP:
		return bmp.Encode(writer, img)
	case TIFF:
		return tiff.Encode(writer, img, &tiff.Options{Compression: tiff.Deflate})
	case PPM:
		return EncodePPM(writer, img)
	}
	return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
}

// EncodePPM writes img as a binary (P6) portable pixmap with 8 bits per channel
func EncodePPM(writer io.Writer, img image.Image) error {
	bounds := img.Bounds()
	w := bufio.NewWriter(writer)

	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}

	pixel := make([]byte, 3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pixel[0], pixel[1], pixel[2] = byte(r>>8), byte(g>>8), byte(b>>8)
			if _, err := w.Write(pixel); err != nil {
				return err
			}
		}
	}

	return w.Flush()
}

// Thumbnail scales img down so neither side exceeds maxSize, keeping the aspect ratio.
// Images that already fit are returned unchanged.
func Thumbnail(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if maxSize <= 0 || (width <= maxSize && height <= maxSize) {
		return img
	}

	scale := float64(maxSize) / float64(max(width, height))
	dst := image.NewRGBA(image.Rect(0, 0, max(1, int(float64(width)*scale)), max(1, int(float64(height)*scale))))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
