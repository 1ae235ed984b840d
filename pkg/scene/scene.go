package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

var ErrInvalidPrimitive = errors.New("scene: invalid primitive")

// Scene contains all the elements needed for rendering. A scene is read-only
// while a render is running and may be shared between goroutines.
type Scene struct {
	Name       string
	Camera     geometry.CameraConfig
	Background integrator.Background
	Primitives []geometry.Primitive
}

// NewEmptyScene creates a scene with no primitives, so every pixel shows
// the background.
func NewEmptyScene() *Scene {
	return &Scene{
		Name:       "empty",
		Camera:     geometry.DefaultCameraConfig(),
		Background: integrator.DefaultBackground(),
		Primitives: []geometry.Primitive{},
	}
}

// AddSphere appends a sphere primitive
func (s *Scene) AddSphere(sphere geometry.Sphere) {
	s.Primitives = append(s.Primitives, geometry.NewSpherePrimitive(sphere.Center, sphere.Radius, sphere.Material))
}

// PrimitiveCount returns the number of primitives in the scene
func (s *Scene) PrimitiveCount() int {
	return len(s.Primitives)
}

// Validate checks that every primitive can be rendered
func (s *Scene) Validate() error {
	for i := range s.Primitives {
		p := &s.Primitives[i]
		sphere, ok := p.Sphere()
		if !ok {
			return fmt.Errorf("%w: primitive %d has kind %s", ErrInvalidPrimitive, i, p.Kind())
		}
		if !(sphere.Radius > 0) {
			return fmt.Errorf("%w: primitive %d has radius %g", ErrInvalidPrimitive, i, sphere.Radius)
		}
	}
	return nil
}
