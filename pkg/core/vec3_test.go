package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func vecNear(t *testing.T, expected, actual Vec3, tolerance float64) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, tolerance, "X component")
	assert.InDelta(t, expected.Y, actual.Y, tolerance, "Y component")
	assert.InDelta(t, expected.Z, actual.Z, tolerance, "Z component")
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	assert.Equal(t, NewVec3(5, -3, 9), a.Add(b))
	assert.Equal(t, NewVec3(-3, 7, -3), a.Subtract(b))
	assert.Equal(t, NewVec3(2, 4, 6), a.Multiply(2))
	assert.Equal(t, NewVec3(0.5, 1, 1.5), a.Divide(2))
	assert.Equal(t, NewVec3(4, -10, 18), a.MultiplyVec(b))
	assert.Equal(t, NewVec3(-1, -2, -3), a.Negate())
	assert.Equal(t, 12.0, a.Dot(b))
	assert.Equal(t, 14.0, a.LengthSquared())
}

func TestVec3_Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	assert.Equal(t, NewVec3(0, 0, 1), x.Cross(y))
	assert.Equal(t, NewVec3(0, 0, -1), y.Cross(x))
}

func TestVec3_Normalize(t *testing.T) {
	n := NewVec3(3, 0, 4).Normalize()
	assert.InDelta(t, 1.0, n.Length(), 1e-12)
	vecNear(t, NewVec3(0.6, 0, 0.8), n, 1e-12)

	// Zero vector stays zero rather than producing NaNs
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestVec3_ClampAndSqrt(t *testing.T) {
	c := NewVec3(-0.5, 0.25, 2).Clamp(0, 0.999)
	assert.Equal(t, NewVec3(0, 0.25, 0.999), c)
	vecNear(t, NewVec3(0.5, 1, 3), NewVec3(0.25, 1, 9).Sqrt(), 1e-12)
}

func TestVec3_Luminance(t *testing.T) {
	assert.InDelta(t, 1.0, NewVec3(1, 1, 1).Luminance(), 1e-12)
	assert.InDelta(t, 0.7152, NewVec3(0, 1, 0).Luminance(), 1e-12)
	assert.Zero(t, Vec3{}.Luminance())
}

func TestReflect(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		n        Vec3
		expected Vec3
	}{
		{"head on", NewVec3(0, -1, 0), NewVec3(0, 1, 0), NewVec3(0, 1, 0)},
		{"45 degrees", NewVec3(1, -1, 0), NewVec3(0, 1, 0), NewVec3(1, 1, 0)},
		{"grazing", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vecNear(t, tt.expected, Reflect(tt.v, tt.n), 1e-12)
		})
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	n := NewVec3(0, 1, 0)
	incoming := NewVec3(1, -1, 0).Normalize()
	ratio := 1.0 / 1.5

	refracted := Refract(incoming, n, ratio)

	sinIn := math.Sqrt(1 - math.Pow(-incoming.Dot(n), 2))
	sinOut := math.Sqrt(1 - math.Pow(-refracted.Normalize().Dot(n), 2))
	assert.InDelta(t, ratio*sinIn, sinOut, 1e-9)
	assert.InDelta(t, 1.0, refracted.Length(), 1e-9)
	assert.Less(t, refracted.Y, 0.0, "refracted ray should continue below the surface")
}

func TestRefract_NormalIncidence(t *testing.T) {
	n := NewVec3(0, 0, 1)
	d := NewVec3(0, 0, -1)
	vecNear(t, d, Refract(d, n, 1/1.5), 1e-12)
}

func TestRay_At(t *testing.T) {
	r := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, -2))
	assert.Equal(t, NewVec3(1, 1, 1), r.At(0))
	assert.Equal(t, NewVec3(1, 1, -2), r.At(1.5))
}
