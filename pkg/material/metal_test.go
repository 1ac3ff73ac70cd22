package material

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
		{"Clamp large positive", 10.0, 1.0},
		{"Clamp large negative", -10.0, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			assert.Equal(t, tt.expectedFuzz, metal.Fuzz)
			assert.Equal(t, KindMetal, metal.Kind)
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := &fixedSampler{value: 0.3}

	// Ray hitting surface at 45 degrees; direction deliberately not unit length
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -2, -2))
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	require.True(t, didScatter)

	expected := core.NewVec3(0, -1, 1).Normalize()
	assert.InDelta(t, 0.0, scatter.Scattered.Direction.Subtract(expected).Length(), 1e-10)
	assert.Equal(t, albedo, scatter.Attenuation)
	assert.Equal(t, hit.Point, scatter.Scattered.Origin)
	assert.Zero(t, sampler.draws, "a perfect mirror needs no randomness")
}

func TestMetal_FuzzyReflection(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.8, 0.8)
	fuzz := 0.5
	metal := NewMetal(albedo, fuzz)
	sampler := core.NewSeededSampler(42)

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}
	mirror := core.NewVec3(0, 0, 1)

	distinct := make(map[core.Vec3]struct{})
	for i := 0; i < 200; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		require.True(t, didScatter)

		// The perturbation lies on a sphere of radius fuzz around the mirror direction
		offset := scatter.Scattered.Direction.Subtract(mirror)
		require.InDelta(t, fuzz, offset.Length(), 1e-9)
		distinct[scatter.Scattered.Direction] = struct{}{}
	}
	assert.Greater(t, len(distinct), 100, "fuzzy reflections should vary")
}

func TestMetal_FuzzedRayMayPointIntoSurface(t *testing.T) {
	// A grazing ray with full fuzz can be pushed below the surface; it is still returned
	metal := NewMetal(core.NewVec3(1, 1, 1), 1.0)
	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	sampler := core.NewSeededSampler(42)
	below := 0
	for i := 0; i < 1000; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		require.True(t, didScatter)
		if scatter.Scattered.Direction.Dot(hit.Normal) < 0 {
			below++
		}
	}
	assert.Greater(t, below, 0)
}
