package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ImageSink receives finished pixels. SetPixel is called concurrently, but never twice for the
// same coordinates within one render. (0, 0) is the top left corner.
type ImageSink interface {
	SetPixel(x, y int, c color.RGBA)
}

// RGBASink writes pixels into an in-memory image
type RGBASink struct {
	img *image.RGBA
}

// NewRGBASink creates a sink backed by img
func NewRGBASink(img *image.RGBA) *RGBASink {
	return &RGBASink{img: img}
}

// SetPixel stores c at (x, y)
func (s *RGBASink) SetPixel(x, y int, c color.RGBA) {
	s.img.SetRGBA(x, y, c)
}

// Image returns the backing image
func (s *RGBASink) Image() *image.RGBA {
	return s.img
}

// ColorToRGBA converts a linear color to 8-bit RGBA with gamma 2 correction
func ColorToRGBA(c core.Vec3) color.RGBA {
	// Gamma 2: square root of each channel
	c = c.Sqrt().Clamp(0, 0.999)

	return color.RGBA{
		R: toByte(c.X),
		G: toByte(c.Y),
		B: toByte(c.Z),
		A: 255,
	}
}

// toByte maps [0, 1) onto 256 equally wide buckets. NaN survives Clamp and becomes black.
func toByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(256 * v)
}
