package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// DefaultCoverSeed fixes the layout of the cover scene when no seed is given
const DefaultCoverSeed int64 = 42

// NewCoverScene creates a field of small random spheres around three large ones. The layout
// depends only on seed.
func NewCoverScene(aspectRatio float64, seed int64, cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   aspectRatio,
		VFov:          20.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := New("cover", cameraConfig)
	sampler := core.NewSeededSampler(seed)

	ground := s.Materials.Add(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddSphere(core.NewVec3(0, -1000, -1), 1000, ground)

	// Small spheres share one glass material; every other material is unique
	glass := s.Materials.Add(material.NewDielectric(1.5))
	keepClear := core.NewVec3(4, 0.2, 0)

	for a := -11; a <= 11; a++ {
		for b := -11; b <= 11; b++ {
			chooseMaterial := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)
			if center.Subtract(keepClear).Length() <= 0.9 {
				continue
			}

			var mat material.Handle
			switch {
			case chooseMaterial < 0.8:
				albedo := core.RandomColor(sampler, 0, 1).MultiplyVec(core.RandomColor(sampler, 0, 1))
				mat = s.Materials.Add(material.NewLambertian(albedo))
			case chooseMaterial < 0.95:
				albedo := core.RandomColor(sampler, 0.5, 1)
				fuzz := sampler.Get1D()
				mat = s.Materials.Add(material.NewMetal(albedo, fuzz))
			default:
				mat = glass
			}
			s.AddSphere(center, 0.2, mat)
		}
	}

	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, glass)
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, s.Materials.Add(material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, s.Materials.Add(material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	return s
}
