package material

import "github.com/df07/go-pathtracer/pkg/core"

// fixedSampler returns the same value for every draw and counts how often it was asked
type fixedSampler struct {
	value float64
	draws int
}

func (f *fixedSampler) Get1D() float64 {
	f.draws++
	return f.value
}

func (f *fixedSampler) Get2D() core.Vec2 {
	f.draws += 2
	return core.NewVec2(f.value, f.value)
}

func (f *fixedSampler) Get3D() core.Vec3 {
	f.draws += 3
	return core.NewVec3(f.value, f.value, f.value)
}
