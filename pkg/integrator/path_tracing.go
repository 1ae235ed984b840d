package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// DefaultMaxDepth is the bounce limit used when none is configured
const DefaultMaxDepth = 1024

// Background is a vertical gradient returned for rays that escape the scene
type Background struct {
	Sky    core.RGB
	Ground core.RGB
}

// DefaultBackground returns the light blue sky over a white ground
func DefaultBackground() Background {
	return Background{
		Sky:    core.RGB8{R: 125, G: 178, B: 255}.ToFloat(),
		Ground: core.White,
	}
}

// At returns the background color seen along the ray: ground when looking
// straight down, sky when looking straight up.
func (b Background) At(ray core.Ray) core.RGB {
	blend := 0.5 * (ray.Direction.Normalize().Y + 1.0)
	return b.Ground.Blend(b.Sky, blend)
}

// PathTracingIntegrator implements unidirectional path tracing with a
// single bounce ray per hit and a hard depth cutoff.
type PathTracingIntegrator struct {
	MaxDepth   int
	Background Background
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// A negative maxDepth selects DefaultMaxDepth. Zero shades only the first
// hit and never follows its bounce.
func NewPathTracingIntegrator(maxDepth int, background Background) *PathTracingIntegrator {
	if maxDepth < 0 {
		maxDepth = DefaultMaxDepth
	}
	return &PathTracingIntegrator{
		MaxDepth:   maxDepth,
		Background: background,
	}
}

// RayColor computes the color carried back along the ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, primitives []geometry.Primitive, sampler core.Sampler) core.RGB {
	return pt.rayColor(ray, primitives, sampler, 0)
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, primitives []geometry.Primitive, sampler core.Sampler, depth int) core.RGB {
	// Past the bounce limit the path is fully absorbed
	if depth > pt.MaxDepth {
		return core.Black
	}

	hit, isHit := geometry.ClosestHit(primitives, ray)
	if !isHit {
		return pt.Background.At(ray)
	}

	mat := hit.Primitive.Material()
	bounce, ok := mat.Scatter(ray.Direction, hit.Normal, hit.Point, sampler)
	if !ok {
		return pt.Background.At(ray)
	}

	return mat.Color().MultiplyVec(pt.rayColor(bounce, primitives, sampler, depth+1))
}

// SamplePixel averages sampleCount jittered paths through pixel (i, j).
// Each sample is offset by up to one pixel in both directions.
func (pt *PathTracingIntegrator) SamplePixel(i, j, sampleCount int, camera *geometry.Camera, viewport geometry.Viewport, primitives []geometry.Primitive, sampler core.Sampler) core.RGBA8 {
	var sum core.RGB
	for s := 0; s < sampleCount; s++ {
		jitter := sampler.Get2D()
		ray := viewport.RayThrough(camera,
			float64(i)+core.SampleSigned(jitter.X),
			float64(j)+core.SampleSigned(jitter.Y))
		sum = sum.Add(pt.RayColor(ray, primitives, sampler))
	}

	avg := sum.Multiply(1.0 / float64(sampleCount))
	return core.NewRGBA8(avg.To8(), 255)
}
