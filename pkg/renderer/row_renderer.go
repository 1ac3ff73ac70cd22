package renderer

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RowRenderer renders single image rows using an integrator. It holds no mutable state and
// may be shared by all workers.
type RowRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     SamplingConfig
}

// NewRowRenderer creates a new row renderer with the given scene and integrator
func NewRowRenderer(scene *scene.Scene, integratorInst integrator.Integrator, config SamplingConfig) *RowRenderer {
	return &RowRenderer{
		scene:      scene,
		integrator: integratorInst,
		config:     config,
	}
}

// RowSampler returns the sampler owned by the task rendering row
func (rr *RowRenderer) RowSampler(row int) core.Sampler {
	return core.NewSeededSampler(core.DeriveSeed(rr.config.Seed, row))
}

// RenderRow renders row j, counted from the bottom of the viewport, into sink and returns the
// number of samples taken. The image y coordinate of the row is Height-1-j.
func (rr *RowRenderer) RenderRow(j int, sink ImageSink) int {
	sampler := rr.RowSampler(j)
	y := rr.config.Height - 1 - j
	samples := 0

	for i := 0; i < rr.config.Width; i++ {
		var ps PixelStats
		rr.SamplePixel(i, j, &ps, sampler)
		samples += ps.SampleCount
		sink.SetPixel(i, y, ColorToRGBA(ps.GetColor()))
	}

	return samples
}

// SamplePixel adds SamplesPerPixel jittered camera samples of pixel (i, j) to ps
func (rr *RowRenderer) SamplePixel(i, j int, ps *PixelStats, sampler core.Sampler) {
	camera := rr.scene.Camera
	width := float64(rr.config.Width)
	height := float64(rr.config.Height)

	for sample := 0; sample < rr.config.SamplesPerPixel; sample++ {
		// Convert pixel coordinates to normalized coordinates with jitter
		u := (float64(i) + sampler.Get1D()) / width
		v := (float64(j) + sampler.Get1D()) / height

		ray := camera.GetRay(u, v, sampler)
		ps.AddSample(rr.integrator.RayColor(ray, rr.scene, sampler, rr.config.MaxDepth))
	}
}
