package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestScene_Validate(t *testing.T) {
	s := NewSingleSphereScene(1)
	require.NoError(t, s.Validate())

	empty := New("empty", s.CameraConfig)
	assert.ErrorIs(t, empty.Validate(), ErrEmptyScene)

	dangling := New("dangling", s.CameraConfig)
	dangling.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.Handle(7))
	assert.ErrorIs(t, dangling.Validate(), ErrUnknownMaterial)

	noCamera := &Scene{Shapes: s.Shapes, Materials: s.Materials}
	assert.ErrorIs(t, noCamera.Validate(), ErrNoCamera)
}

func TestScene_Background(t *testing.T) {
	s := New("sky", geometry.CameraConfig{})

	up := s.Background(core.NewVec3(0, 5, 0))
	assert.Equal(t, DefaultBackgroundTop, up)

	down := s.Background(core.NewVec3(0, -2, 0))
	assert.Equal(t, DefaultBackgroundBottom, down)

	horizon := s.Background(core.NewVec3(1, 0, 0))
	assert.InDelta(t, 0.75, horizon.X, 1e-12)
	assert.InDelta(t, 0.85, horizon.Y, 1e-12)
	assert.InDelta(t, 1.0, horizon.Z, 1e-12)
}

func TestSimpleScene_Layout(t *testing.T) {
	s := NewSimpleScene(2)
	require.Len(t, s.Shapes, 5)
	assert.Equal(t, 4, s.Materials.Len())

	outer := s.Shapes[2].(*geometry.Sphere)
	inner := s.Shapes[3].(*geometry.Sphere)
	assert.Equal(t, outer.Center, inner.Center)
	assert.Equal(t, outer.Material, inner.Material)
	assert.Negative(t, inner.Radius)
	assert.Equal(t, material.KindDielectric, s.Materials.Get(inner.Material).Kind)
}

func TestSimpleScene_CameraOverride(t *testing.T) {
	s := NewSimpleScene(2, geometry.CameraConfig{VFov: 60, Aperture: 0.5})
	assert.Equal(t, 60.0, s.CameraConfig.VFov)
	assert.Equal(t, 0.5, s.CameraConfig.Aperture)
	assert.Equal(t, core.NewVec3(-3, 3, 2), s.CameraConfig.Center)
}

func TestCoverScene_DeterministicForSeed(t *testing.T) {
	a := NewCoverScene(1.5, 7)
	b := NewCoverScene(1.5, 7)
	c := NewCoverScene(1.5, 8)

	require.Equal(t, len(a.Shapes), len(b.Shapes))
	for i := range a.Shapes {
		sa := a.Shapes[i].(*geometry.Sphere)
		sb := b.Shapes[i].(*geometry.Sphere)
		assert.Equal(t, sa.Center, sb.Center)
		assert.Equal(t, a.Materials.Get(sa.Material), b.Materials.Get(sb.Material))
	}

	// Another seed moves the small spheres
	assert.NotEqual(t, a.Shapes[1].(*geometry.Sphere).Center, c.Shapes[1].(*geometry.Sphere).Center)
	require.NoError(t, a.Validate())
}

func TestCoverScene_KeepsClearOfMetalSphere(t *testing.T) {
	s := NewCoverScene(1.5, DefaultCoverSeed)
	keepClear := core.NewVec3(4, 0.2, 0)

	for _, shape := range s.Shapes {
		sphere := shape.(*geometry.Sphere)
		if sphere.Radius == 0.2 {
			assert.Greater(t, sphere.Center.Subtract(keepClear).Length(), 0.9)
		}
	}
}
