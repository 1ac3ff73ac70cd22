package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Epsilon is the smallest ray parameter accepted by Intersect. Rays leaving a surface would
// otherwise re-hit it at t≈0 because of floating point error ("shadow acne").
const Epsilon = 0.001

// Shape is anything a ray can hit. Hit returns the closest intersection with a ray
// parameter in [tMin, tMax], or false when there is none.
//
// New primitive kinds implement Shape and are appended to a List; nothing else changes.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}

// Intersect returns the closest hit in front of the ray origin, ignoring hits closer than
// Epsilon.
func Intersect(shape Shape, ray core.Ray) (*material.HitRecord, bool) {
	return shape.Hit(ray, Epsilon, math.Inf(1))
}
