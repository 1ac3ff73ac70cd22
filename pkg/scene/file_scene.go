package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

// defaultFileCamera is used for every camera field a scene file leaves out
func defaultFileCamera(aspectRatio float64) geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: aspectRatio,
		VFov:        90.0,
	}
}

// NewFileScene creates a scene from a YAML or TOML scene file
func NewFileScene(path string, aspectRatio float64, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	desc, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewDescribedScene(name, desc, aspectRatio, cameraOverrides...)
}

// NewDescribedScene builds a scene from a parsed scene description
func NewDescribedScene(name string, desc *loaders.SceneDescription, aspectRatio float64, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	cameraConfig := convertCamera(defaultFileCamera(aspectRatio), desc.Camera)
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := New(name, cameraConfig)

	if desc.Background != nil {
		s.BackgroundTop, _ = loaders.ParseVec3(desc.Background.Top)
		s.BackgroundBottom, _ = loaders.ParseVec3(desc.Background.Bottom)
	}

	// Convert all materials first
	for _, m := range desc.Materials {
		if _, err := s.Materials.AddNamed(m.Name, convertMaterial(m)); err != nil {
			return nil, fmt.Errorf("failed to convert material: %w", err)
		}
	}

	for i, sd := range desc.Spheres {
		handle, ok := s.Materials.Lookup(sd.Material)
		if !ok {
			return nil, fmt.Errorf("sphere %d: material %q: %w", i, sd.Material, ErrUnknownMaterial)
		}
		center, _ := loaders.ParseVec3(sd.Center)
		s.AddSphere(center, sd.Radius, handle)
	}

	return s, nil
}

// Describe converts a scene of spheres back into a scene description. Materials without a
// name are called "material-<handle>".
func Describe(s *Scene) *loaders.SceneDescription {
	cfg := s.CameraConfig
	desc := &loaders.SceneDescription{
		Camera: &loaders.CameraDescription{
			Center:        loaders.Vec3Values(cfg.Center),
			LookAt:        loaders.Vec3Values(cfg.LookAt),
			Up:            loaders.Vec3Values(cfg.Up),
			VFov:          cfg.VFov,
			Aperture:      cfg.Aperture,
			FocusDistance: cfg.FocusDistance,
		},
		Background: &loaders.BackgroundDescription{
			Top:    loaders.Vec3Values(s.BackgroundTop),
			Bottom: loaders.Vec3Values(s.BackgroundBottom),
		},
	}

	for i := 0; i < s.Materials.Len(); i++ {
		handle := material.Handle(i)
		desc.Materials = append(desc.Materials, describeMaterial(materialName(s.Materials, handle), s.Materials.Get(handle)))
	}

	for _, shape := range s.Shapes {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			continue
		}
		desc.Spheres = append(desc.Spheres, loaders.SphereDescription{
			Center:   loaders.Vec3Values(sphere.Center),
			Radius:   sphere.Radius,
			Material: materialName(s.Materials, sphere.Material),
		})
	}

	return desc
}

func materialName(lib *material.Library, h material.Handle) string {
	if name, ok := lib.Name(h); ok {
		return name
	}
	return fmt.Sprintf("material-%d", h)
}

// convertCamera applies the fields present in cd to base. Vectors are taken whenever they
// are given, so the origin is a valid look-at point. Omitted scalars are zero in the
// description and keep the base value.
func convertCamera(base geometry.CameraConfig, cd *loaders.CameraDescription) geometry.CameraConfig {
	cfg := base
	if cd == nil {
		return cfg
	}

	// Vectors were validated with the description
	if cd.Center != nil {
		cfg.Center, _ = loaders.ParseVec3(cd.Center)
	}
	if cd.LookAt != nil {
		cfg.LookAt, _ = loaders.ParseVec3(cd.LookAt)
	}
	if cd.Up != nil {
		cfg.Up, _ = loaders.ParseVec3(cd.Up)
	}
	if cd.VFov != 0 {
		cfg.VFov = cd.VFov
	}
	if cd.Aperture != 0 {
		cfg.Aperture = cd.Aperture
	}
	if cd.FocusDistance != 0 {
		cfg.FocusDistance = cd.FocusDistance
	}

	return cfg
}

func convertMaterial(md loaders.MaterialDescription) material.Material {
	albedo, _ := loaders.ParseVec3(md.Albedo)

	switch md.Type {
	case loaders.MaterialMetal:
		return material.NewMetal(albedo, md.Fuzz)
	case loaders.MaterialDielectric:
		return material.NewDielectric(md.RefractiveIndex)
	default:
		return material.NewLambertian(albedo)
	}
}

func describeMaterial(name string, m material.Material) loaders.MaterialDescription {
	md := loaders.MaterialDescription{Name: name}

	switch m.Kind {
	case material.KindMetal:
		md.Type = loaders.MaterialMetal
		md.Albedo = loaders.Vec3Values(m.Albedo)
		md.Fuzz = m.Fuzz
	case material.KindDielectric:
		md.Type = loaders.MaterialDielectric
		md.RefractiveIndex = m.RefractiveIndex
	default:
		md.Type = loaders.MaterialLambertian
		md.Albedo = loaders.Vec3Values(m.Albedo)
	}

	return md
}
