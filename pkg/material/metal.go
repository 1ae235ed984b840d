package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

func scatterMetal(incident, normal, point core.Vec3) core.Ray {
	return core.NewRay(point, Reflect(incident, normal), 1.0)
}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
