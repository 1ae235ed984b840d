package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewReferenceScene creates the default scene: a diffuse, a glass and a metal
// sphere standing on a large yellow ground sphere.
func NewReferenceScene() *Scene {
	s := &Scene{
		Name:       "reference",
		Camera:     geometry.DefaultCameraConfig(),
		Background: integrator.DefaultBackground(),
	}

	diffuseBlue := material.NewDiffuse(core.RGB8{R: 25, G: 52, B: 125}.ToFloat())
	glass := material.NewTransparent(core.RGB8{R: 200, G: 200, B: 200}.ToFloat(), 1.5)
	gold := material.NewMetal(core.RGB8{R: 200, G: 150, B: 50}.ToFloat())
	groundYellow := material.NewDiffuse(core.RGB8{R: 205, G: 205, B: 0}.ToFloat())

	s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -1.4), 0.5, diffuseBlue))
	s.AddSphere(geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass))
	s.AddSphere(geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, gold))

	// Ground
	s.AddSphere(geometry.NewSphere(core.NewVec3(0, -20000.5, -1), 20000, groundYellow))

	return s
}
