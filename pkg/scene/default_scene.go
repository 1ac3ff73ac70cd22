package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewSimpleScene creates the three sphere scene: a diffuse sphere between a hollow glass
// sphere and a mirror, standing on a huge ground sphere
func NewSimpleScene(aspectRatio float64, cameraOverrides ...geometry.CameraConfig) *Scene {
	lookFrom := core.NewVec3(-3, 3, 2)
	lookAt := core.NewVec3(0, 0, -1)

	defaultCameraConfig := geometry.CameraConfig{
		Center:        lookFrom,
		LookAt:        lookAt,
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   aspectRatio,
		VFov:          30.0,
		Aperture:      0.2,
		FocusDistance: lookAt.Subtract(lookFrom).Length(),
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := New("simple", cameraConfig)

	ground := s.Materials.Add(material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))
	center := s.Materials.Add(material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))
	glass := s.Materials.Add(material.NewDielectric(1.5))
	gold := s.Materials.Add(material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0))

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, ground)
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, center)

	// Hollow glass: the inner surface shares the material
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, glass)
	s.AddSphere(core.NewVec3(-1, 0, -1), -0.45, glass)

	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, gold)

	return s
}

// NewSingleSphereScene creates one diffuse sphere straight in front of a pinhole camera at
// the origin, with nothing else but sky
func NewSingleSphereScene(aspectRatio float64, cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: aspectRatio,
		VFov:        90.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := New("single", cameraConfig)
	red := s.Materials.Add(material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, red)

	return s
}
