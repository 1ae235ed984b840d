package geometry

import (
	"errors"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func newDefaultCamera(t *testing.T) *Camera {
	t.Helper()
	camera, err := NewCameraFromConfig(DefaultCameraConfig())
	if err != nil {
		t.Fatalf("Unexpected camera error: %v", err)
	}
	return camera
}

func TestCamera_Basis(t *testing.T) {
	camera := newDefaultCamera(t)

	tests := []struct {
		name     string
		got      core.Vec3
		expected core.Vec3
	}{
		{"forward", camera.Forward, core.NewVec3(0, 0, -1)},
		{"right", camera.Right, core.NewVec3(1, 0, 0)},
		{"up", camera.Up, core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equals(tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestCamera_BasisIsOrthogonal(t *testing.T) {
	camera, err := NewCamera(core.NewVec3(3, 2, -1), 2, core.NewVec3(-1, 0.5, 4), 1.5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if d := camera.Forward.Dot(camera.Right); d > 1e-12 || d < -1e-12 {
		t.Errorf("Forward and right are not orthogonal: %g", d)
	}
	if d := camera.Forward.Dot(camera.Up); d > 1e-12 || d < -1e-12 {
		t.Errorf("Forward and up are not orthogonal: %g", d)
	}
	if camera.Up.Y <= 0 {
		t.Errorf("Up should point towards the global up, got %v", camera.Up)
	}
}

func TestCamera_DegenerateInput(t *testing.T) {
	tests := []struct {
		name     string
		position core.Vec3
		lookAt   core.Vec3
		expected error
	}{
		{"position equals target", core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), ErrDegenerateCamera},
		{"looking straight down", core.NewVec3(0, 5, 0), core.NewVec3(0, 0, 0), ErrCameraParallelToUp},
		{"looking straight up", core.NewVec3(0, 0, 0), core.NewVec3(0, 3, 0), ErrCameraParallelToUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			camera, err := NewCamera(tt.position, 2, tt.lookAt, 1)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
			if camera != nil {
				t.Errorf("Expected nil camera on error")
			}
		})
	}
}

func TestViewport_PixelOrigin(t *testing.T) {
	camera := newDefaultCamera(t)

	for _, res := range []Resolution{{200, 100}, {100, 100}, {37, 91}, {1920, 1080}} {
		vp := NewViewport(camera.Size, res, camera)
		expected := vp.Origin.Add(vp.DeltaU.Add(vp.DeltaV).Multiply(0.5))
		if !vp.PixelOrigin.Equals(expected, 1e-12) {
			t.Errorf("%dx%d: expected pixel origin %v, got %v", res.Width, res.Height, expected, vp.PixelOrigin)
		}
	}
}

func TestViewport_Extents(t *testing.T) {
	camera := newDefaultCamera(t)
	vp := NewViewport(2.0, Resolution{Width: 200, Height: 100}, camera)

	if !vp.U.Equals(core.NewVec3(2, 0, 0), 1e-12) {
		t.Errorf("Expected horizontal extent (2,0,0), got %v", vp.U)
	}
	// Vertical axis is flipped so row 0 is the top
	if !vp.V.Equals(core.NewVec3(0, -1, 0), 1e-12) {
		t.Errorf("Expected vertical extent (0,-1,0), got %v", vp.V)
	}
	if !vp.Origin.Equals(core.NewVec3(-1, 0.5, 0), 1e-12) {
		t.Errorf("Expected top-left origin (-1,0.5,0), got %v", vp.Origin)
	}
	if !vp.DeltaU.Equals(core.NewVec3(0.01, 0, 0), 1e-12) || !vp.DeltaV.Equals(core.NewVec3(0, -0.01, 0), 1e-12) {
		t.Errorf("Unexpected pixel steps %v %v", vp.DeltaU, vp.DeltaV)
	}

	top := vp.PointAt(0, 0)
	bottom := vp.PointAt(0, 99)
	if top.Y <= bottom.Y {
		t.Errorf("Row 0 should be above the last row: %v vs %v", top, bottom)
	}

	last := vp.PointAt(199, 99)
	if !last.Equals(core.NewVec3(0.995, -0.495, 0), 1e-12) {
		t.Errorf("Expected last pixel center (0.995,-0.495,0), got %v", last)
	}
}

func TestViewport_RayThroughCenter(t *testing.T) {
	camera := newDefaultCamera(t)
	vp := NewViewport(camera.Size, Resolution{Width: 200, Height: 100}, camera)

	ray := vp.RayThrough(camera, 99.5, 49.5)
	if ray.Origin != camera.Position {
		t.Errorf("Expected ray to start at the camera, got %v", ray.Origin)
	}
	if !ray.Direction.Equals(core.NewVec3(0, 0, -1), 1e-12) {
		t.Errorf("Expected ray along the forward axis, got %v", ray.Direction)
	}
	if ray.IOR != 1.0 {
		t.Errorf("Expected IOR 1.0, got %f", ray.IOR)
	}
}

func TestResolution_Validate(t *testing.T) {
	if err := (Resolution{Width: 0, Height: 10}).Validate(); !errors.Is(err, ErrInvalidResolution) {
		t.Errorf("Expected ErrInvalidResolution, got %v", err)
	}
	if err := (Resolution{Width: 4, Height: 3}).Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if ar := (Resolution{Width: 4, Height: 2}).AspectRatio(); ar != 2 {
		t.Errorf("Expected aspect ratio 2, got %f", ar)
	}
}

func TestCamera_TiltedBasisIsUnit(t *testing.T) {
	camera, err := NewCamera(core.NewVec3(0, 4, 4), 2, core.NewVec3(0, 0, 0), 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for name, v := range map[string]core.Vec3{"forward": camera.Forward, "right": camera.Right, "up": camera.Up} {
		if l := v.Length(); l < 1-1e-12 || l > 1+1e-12 {
			t.Errorf("Expected unit %s, got length %f", name, l)
		}
	}
}
