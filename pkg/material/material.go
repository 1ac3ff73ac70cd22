package material

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Kind identifies a material variant
type Kind uint8

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Material describes how light bounces off a surface. It is an immutable value;
// Kind selects which of the parameters are meaningful.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // lambertian, metal
	Fuzz            float64   // metal, within [0, 1]
	RefractiveIndex float64   // dielectric
}

// Scatter bounces the incoming ray off the surface described by hit. It returns false when
// the surface absorbs the ray completely. The sampler must be owned by the calling task.
func (m Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(rayIn, hit, sampler)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, sampler)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, sampler)
	}
	return ScatterResult{}, false
}

func (m Material) String() string {
	switch m.Kind {
	case KindMetal:
		return fmt.Sprintf("metal(albedo=%v, fuzz=%g)", m.Albedo, m.Fuzz)
	case KindDielectric:
		return fmt.Sprintf("dielectric(ior=%g)", m.RefractiveIndex)
	default:
		return fmt.Sprintf("%s(albedo=%v)", m.Kind, m.Albedo)
	}
}
