package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

var (
	ErrEmptyScene      = errors.New("scene: no shapes")
	ErrUnknownMaterial = errors.New("scene: shape refers to an unknown material")
	ErrNoCamera        = errors.New("scene: no camera")
	ErrUnknownScene    = errors.New("scene: unknown scene")
)

// Default background gradient, blended by ray height
var (
	DefaultBackgroundBottom = core.NewVec3(1.0, 1.0, 1.0)
	DefaultBackgroundTop    = core.NewVec3(0.5, 0.7, 1.0)
)

// Scene contains all the elements needed for rendering. It is read-only while a render runs.
type Scene struct {
	Name             string
	Camera           *geometry.Camera
	CameraConfig     geometry.CameraConfig
	Shapes           geometry.List     // Objects in the scene, in a stable order
	Materials        *material.Library // Materials referenced by the shapes
	BackgroundTop    core.Vec3         // Sky color straight up
	BackgroundBottom core.Vec3         // Sky color straight down
}

// New creates an empty scene viewed through a camera built from cameraConfig
func New(name string, cameraConfig geometry.CameraConfig) *Scene {
	return &Scene{
		Name:             name,
		Camera:           geometry.NewCamera(cameraConfig),
		CameraConfig:     cameraConfig,
		Materials:        material.NewLibrary(),
		BackgroundTop:    DefaultBackgroundTop,
		BackgroundBottom: DefaultBackgroundBottom,
	}
}

// AddSphere adds a sphere made of the material stored under mat
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Handle) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, mat)
	s.Shapes.Add(sphere)
	return sphere
}

// Hit returns the nearest intersection of ray with the scene
func (s *Scene) Hit(ray core.Ray) (*material.HitRecord, bool) {
	return geometry.Intersect(s.Shapes, ray)
}

// Material returns the material referenced by a hit
func (s *Scene) Material(hit *material.HitRecord) material.Material {
	return s.Materials.Get(hit.Material)
}

// Background returns the sky color seen along direction
func (s *Scene) Background(direction core.Vec3) core.Vec3 {
	unit := direction.Normalize()
	t := 0.5 * (unit.Y + 1.0)
	return s.BackgroundBottom.Multiply(1.0 - t).Add(s.BackgroundTop.Multiply(t))
}

// SetCamera replaces the camera, e.g. when the output aspect ratio changes
func (s *Scene) SetCamera(cameraConfig geometry.CameraConfig) {
	s.CameraConfig = cameraConfig
	s.Camera = geometry.NewCamera(cameraConfig)
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return ErrNoCamera
	}
	if len(s.Shapes) == 0 {
		return ErrEmptyScene
	}
	for i, shape := range s.Shapes {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			continue
		}
		if s.Materials == nil || !s.Materials.Has(sphere.Material) {
			return fmt.Errorf("shape %d: handle %d: %w", i, sphere.Material, ErrUnknownMaterial)
		}
	}
	return nil
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
