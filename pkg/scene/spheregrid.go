package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.RGB {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewRGB(
		math.Max(0, math.Min(1, r)),
		math.Max(0, math.Min(1, g)),
		math.Max(0, math.Min(1, blue)),
	)
}

// NewSphereGridScene creates a gridSize x gridSize grid of colored spheres on
// a gray ground. Every third sphere is glass, the rest alternate between
// metal and diffuse.
func NewSphereGridScene(gridSize int) *Scene {
	if gridSize < 2 {
		gridSize = 2
	}

	s := &Scene{
		Name: "sphere-grid",
		Camera: geometry.CameraConfig{
			Position:    core.NewVec3(4.5, 6, 18),
			LookAt:      core.NewVec3(4.5, 0.8, 4.5),
			Size:        0.75,
			FocalLength: 1.0,
		},
		Background: integrator.DefaultBackground(),
	}

	// Ground sphere with its top at y=0
	s.AddSphere(geometry.NewSphere(core.NewVec3(4.5, -10000, 4.5), 10000, material.NewDiffuse(core.Gray)))

	// Fit the grid into a 9x9 area around the look-at point
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			position := core.NewVec3(x, sphereRadius, z)

			// Hue varies along X, chroma along Z
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			var mat material.Material
			switch (i + j) % 3 {
			case 0:
				mat = material.NewTransparent(color, 1.5)
			case 1:
				mat = material.NewMetal(color)
			default:
				mat = material.NewDiffuse(color)
			}

			s.AddSphere(geometry.NewSphere(position, sphereRadius, mat))
		}
	}

	return s
}
