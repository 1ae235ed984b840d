package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// HitEpsilon is the minimum accepted hit distance. It keeps a bounce ray
// from re-hitting the surface it starts on.
const HitEpsilon = 0.001

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) Sphere {
	return Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// RayCast intersects the ray with the sphere. Only the near root of the
// quadratic is considered, so rays starting inside the sphere miss it.
func (s Sphere) RayCast(ray core.Ray) (RaycastHit, bool) {
	// Vector from ray origin to sphere center
	oc := s.Center.Subtract(ray.Origin)

	// Half-discriminant form of |O + tD - C|² = r²
	a := ray.Direction.Dot(ray.Direction)
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return RaycastHit{}, false
	}

	t := (h - math.Sqrt(discriminant)) / a
	if !(t >= HitEpsilon) {
		return RaycastHit{}, false
	}

	point := ray.At(t)
	return RaycastHit{
		Distance: t,
		Point:    point,
		Normal:   point.Subtract(s.Center).NormalizeOrZero(),
	}, true
}
