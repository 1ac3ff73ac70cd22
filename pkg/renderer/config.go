package renderer

import "fmt"

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Base seed; the image is a pure function of it
	NumWorkers      int   // Concurrent row tasks, 0 = one per CPU
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            1,
	}
}

// Validate checks the configuration before any pixel is traced
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%dx%d: %w", c.Width, c.Height, ErrInvalidDimensions)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%d: %w", c.SamplesPerPixel, ErrInvalidSamples)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%d: %w", c.MaxDepth, ErrInvalidDepth)
	}
	return nil
}

// AspectRatio returns width / height
func (c SamplingConfig) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}
