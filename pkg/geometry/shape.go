package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// RaycastHit contains information about a ray-primitive intersection
type RaycastHit struct {
	Distance  float64    // Parameter t along the ray
	Point     core.Vec3  // Point of intersection
	Normal    core.Vec3  // Outward unit normal at the intersection
	Primitive *Primitive // The primitive that was hit
}

// Kind identifies the shape held by a Primitive
type Kind uint8

const (
	kindInvalid Kind = iota
	KindSphere
)

// String returns the lower-case kind name
func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	default:
		return "invalid"
	}
}

// Primitive is a closed set of renderable shapes. Scenes hold primitives by
// value in a flat slice.
type Primitive struct {
	kind   Kind
	sphere Sphere
}

// NewSpherePrimitive wraps a sphere as a primitive
func NewSpherePrimitive(center core.Vec3, radius float64, mat material.Material) Primitive {
	return Primitive{kind: KindSphere, sphere: NewSphere(center, radius, mat)}
}

// Kind returns the shape kind
func (p *Primitive) Kind() Kind {
	return p.kind
}

// Sphere returns the sphere held by the primitive, if any
func (p *Primitive) Sphere() (Sphere, bool) {
	return p.sphere, p.kind == KindSphere
}

// RayCast intersects the ray with the primitive
func (p *Primitive) RayCast(ray core.Ray) (RaycastHit, bool) {
	var (
		hit   RaycastHit
		isHit bool
	)
	switch p.kind {
	case KindSphere:
		hit, isHit = p.sphere.RayCast(ray)
	}
	if !isHit {
		return RaycastHit{}, false
	}
	hit.Primitive = p
	return hit, true
}

// Material returns the surface material of the primitive
func (p *Primitive) Material() material.Material {
	switch p.kind {
	case KindSphere:
		return p.sphere.Material
	default:
		return material.Material{}
	}
}

// String implements fmt.Stringer
func (p *Primitive) String() string {
	switch p.kind {
	case KindSphere:
		c := p.sphere.Center
		return fmt.Sprintf("sphere(center=(%g,%g,%g) r=%g %s)", c.X, c.Y, c.Z, p.sphere.Radius, p.sphere.Material)
	default:
		return "invalid"
	}
}

// ClosestHit scans all primitives and returns the nearest intersection.
// On equal distances the earlier primitive wins.
func ClosestHit(primitives []Primitive, ray core.Ray) (RaycastHit, bool) {
	var closest RaycastHit
	closestSoFar := math.Inf(1)
	hitAnything := false

	for i := range primitives {
		if hit, isHit := primitives[i].RayCast(ray); isHit && hit.Distance < closestSoFar {
			hitAnything = true
			closestSoFar = hit.Distance
			closest = hit
		}
	}

	return closest, hitAnything
}
