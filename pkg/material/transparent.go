package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// scatterTransparent refracts through a dielectric boundary. The ray is
// inside the medium when it travels along the outward normal.
func scatterTransparent(incident, normal, point core.Vec3, ior float64) core.Ray {
	unitDirection := incident.NormalizeOrZero()

	refractionRatio := 1.0 / ior
	facing := normal
	if unitDirection.Dot(normal) > 0 {
		// Leaving the medium (glass to air)
		refractionRatio = ior
		facing = normal.Negate()
	}

	return core.NewRay(point, Refract(unitDirection, facing, refractionRatio), ior)
}

// Refract bends the unit vector uv through a surface whose normal n points
// against uv, using Snell's law with etaiOverEtat = n1/n2. Under total
// internal reflection the mirror direction is returned instead.
func Refract(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))

	if etaiOverEtat*sinTheta > 1.0 {
		return Reflect(uv, n)
	}

	k := 1.0 - etaiOverEtat*etaiOverEtat*(1.0-cosTheta*cosTheta)
	return uv.Multiply(etaiOverEtat).Add(n.Multiply(etaiOverEtat*cosTheta - math.Sqrt(math.Max(0, k))))
}
