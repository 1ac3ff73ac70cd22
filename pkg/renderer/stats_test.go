package renderer

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Red 0.2126 + green 0.7152 + blue 0.0722 + black 0 = 1.0, over four pixels
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	assert.InDelta(t, 0.25, CalculateAverageLuminance(img), 0.0001)
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	assert.InDelta(t, 1.0, CalculateAverageLuminance(img), 0.0001)
}

func TestCalculateAverageLuminance_Empty(t *testing.T) {
	assert.Zero(t, CalculateAverageLuminance(image.NewRGBA(image.Rectangle{})))
}

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	assert.Equal(t, core.Vec3{}, ps.GetColor())

	ps.AddSample(core.NewVec3(1, 0, 0.5))
	ps.AddSample(core.NewVec3(0, 1, 0.5))
	assert.Equal(t, 2, ps.SampleCount)
	assert.Equal(t, core.NewVec3(0.5, 0.5, 0.5), ps.GetColor())
}

func TestRenderStats(t *testing.T) {
	stats := RenderStats{Height: 10, RowsCompleted: 10, TotalSamples: 500, RenderTime: 2 * time.Second}
	assert.True(t, stats.Complete())
	assert.InDelta(t, 250, stats.SamplesPerSecond(), 1e-9)

	stats.RowsCompleted = 3
	stats.RenderTime = 0
	assert.False(t, stats.Complete())
	assert.Zero(t, stats.SamplesPerSecond())
}
