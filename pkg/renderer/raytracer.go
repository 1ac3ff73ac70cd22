package renderer

import (
	"context"
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var logger = log.New("renderer")

// RowProgress reports a finished row
type RowProgress struct {
	Row       int // Image y coordinate of the finished row
	RowsDone  int // Rows finished so far, including this one
	TotalRows int // Rows in the image
}

// Fraction returns the finished share of the image in [0, 1]
func (p RowProgress) Fraction() float64 {
	if p.TotalRows == 0 {
		return 0
	}
	return float64(p.RowsDone) / float64(p.TotalRows)
}

// Raytracer renders a scene with a fixed sampling configuration
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     SamplingConfig
	progress   func(RowProgress)
}

// NewRaytracer creates a new raytracer using unidirectional path tracing
func NewRaytracer(scene *scene.Scene, config SamplingConfig) *Raytracer {
	return &Raytracer{
		scene:      scene,
		integrator: integrator.NewPathTracingIntegrator(),
		config:     config,
	}
}

// OnProgress registers a callback invoked after every finished row. It is called from the
// worker goroutines and must be safe for concurrent use.
func (rt *Raytracer) OnProgress(fn func(RowProgress)) {
	rt.progress = fn
}

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// Render renders the whole image into memory
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	sink := NewRGBASink(image.NewRGBA(image.Rect(0, 0, max(rt.config.Width, 0), max(rt.config.Height, 0))))
	stats, err := rt.RenderTo(ctx, sink)
	return sink.Image(), stats, err
}

// RenderTo renders the whole image into sink, one row per task. Each row draws from its own
// sampler derived from the seed, so the result does not depend on the number of workers
// or on scheduling. A cancelled context stops the render between rows.
func (rt *Raytracer) RenderTo(ctx context.Context, sink ImageSink) (RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return RenderStats{}, err
	}
	if err := rt.scene.Validate(); err != nil {
		return RenderStats{}, fmt.Errorf("invalid scene %q: %w", rt.scene.Name, err)
	}

	pool := NewWorkerPool(rt.config.NumWorkers)
	rows := NewRowRenderer(rt.scene, rt.integrator, rt.config)

	logger.Infof("rendering %q at %dx%d, %d spp, depth %d, %d workers",
		rt.scene.Name, rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, rt.config.MaxDepth, pool.GetNumWorkers())

	var rowsDone, samples atomic.Int64
	start := time.Now()

	err := pool.Run(ctx, rt.config.Height, func(_ context.Context, j int) error {
		samples.Add(int64(rows.RenderRow(j, sink)))
		done := int(rowsDone.Add(1))

		progress := RowProgress{
			Row:       rt.config.Height - 1 - j,
			RowsDone:  done,
			TotalRows: rt.config.Height,
		}
		logger.Debugf("row %d done (%d/%d)", progress.Row, progress.RowsDone, progress.TotalRows)
		if rt.progress != nil {
			rt.progress(progress)
		}
		return nil
	})

	stats := RenderStats{
		Width:         rt.config.Width,
		Height:        rt.config.Height,
		RowsCompleted: int(rowsDone.Load()),
		TotalSamples:  int(samples.Load()),
		MaxDepth:      rt.config.MaxDepth,
		Workers:       pool.GetNumWorkers(),
		RenderTime:    time.Since(start),
	}
	stats.TotalPixels = stats.RowsCompleted * rt.config.Width
	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}

	if err != nil {
		if stats.Complete() {
			logger.Warningf("render of %q cancelled after its last row: %v", rt.scene.Name, err)
		} else {
			logger.Warningf("render of %q stopped after %d/%d rows: %v", rt.scene.Name, stats.RowsCompleted, stats.Height, err)
		}
		return stats, fmt.Errorf("%w: %w", ErrInterrupted, err)
	}

	logger.Infof("rendered %q in %s (%.0f samples/s)", rt.scene.Name, stats.RenderTime, stats.SamplesPerSecond())
	return stats, nil
}
