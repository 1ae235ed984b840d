package core

// Ray represents a ray with an origin, a direction and the index of
// refraction of the medium it travels through.
//
// Direction is not required to be unit length.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	IOR       float64
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3, ior float64) Ray {
	return Ray{Origin: origin, Direction: direction, IOR: ior}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
