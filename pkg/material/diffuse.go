package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// scatterDiffuse bounces around the normal by a uniformly random unit offset,
// which gives a cosine-weighted distribution over the hemisphere.
func scatterDiffuse(normal, point core.Vec3, sampler core.Sampler) core.Ray {
	direction := normal.Add(core.RandomUnitVector(sampler))
	return core.NewRay(point, direction, 1.0)
}
