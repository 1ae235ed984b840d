package core

import (
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// Vec2 represents a 2D sample
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// RandomSampler wraps a standard Go random generator.
// It is not safe for concurrent use; every goroutine needs its own instance.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler backed by a fresh generator for the given seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// SampleSigned maps a [0, 1) sample to [-1, 1)
func SampleSigned(u float64) float64 {
	return 2*u - 1
}

// RandomUnitVector draws a uniformly distributed direction by rejection
// sampling a point in the [-1,1]³ cube that falls inside the unit sphere.
// A degenerate zero draw yields the zero vector instead of NaN.
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		s := sampler.Get3D()
		p := NewVec3(SampleSigned(s.X), SampleSigned(s.Y), SampleSigned(s.Z))
		if p.LengthSquared() <= 1.0 {
			return p.NormalizeOrZero()
		}
	}
}
