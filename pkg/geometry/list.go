package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// List is an ordered collection of shapes that is itself a Shape. Hits are found by a linear
// scan; the nearest one wins, so the order only matters for reproducibility.
type List []Shape

// Add appends shapes to the list
func (l *List) Add(shapes ...Shape) {
	*l = append(*l, shapes...)
}

// Hit returns the nearest hit among all members within [tMin, tMax]
func (l List) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range l {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// HitIndex is Hit that also reports which member was struck, or -1
func (l List) HitIndex(ray core.Ray, tMin, tMax float64) (*material.HitRecord, int) {
	var closestHit *material.HitRecord
	closestSoFar := tMax
	index := -1

	for i, shape := range l {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
			index = i
		}
	}

	return closestHit, index
}
