package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

var (
	ErrDegenerateCamera   = errors.New("geometry: camera position equals look-at target")
	ErrCameraParallelToUp = errors.New("geometry: camera forward direction is parallel to the up vector")
	ErrInvalidResolution  = errors.New("geometry: resolution must be positive")
)

// GlobalUp is the world up direction used to build the camera basis
var GlobalUp = core.NewVec3(0, 1, 0)

// CameraConfig describes a pinhole camera
type CameraConfig struct {
	Position    core.Vec3
	LookAt      core.Vec3
	Size        float64 // Horizontal viewport width in world units
	FocalLength float64 // Distance from position to the viewport plane
}

// DefaultCameraConfig returns the camera used by the built-in scenes
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:    core.NewVec3(0, 0, 1),
		LookAt:      core.NewVec3(0, 0, 0),
		Size:        2.0,
		FocalLength: 1.0,
	}
}

// Camera holds a position and a right-handed basis derived from a look-at target
type Camera struct {
	Position    core.Vec3
	Size        float64
	FocalLength float64
	Forward     core.Vec3
	Right       core.Vec3
	Up          core.Vec3
}

// NewCamera creates a camera at position looking towards lookAt
func NewCamera(position core.Vec3, size float64, lookAt core.Vec3, focalLength float64) (*Camera, error) {
	if position == lookAt {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateCamera, position)
	}

	forward := lookAt.Subtract(position).Normalize()
	right := forward.Cross(GlobalUp)
	if right.LengthSquared() < 1e-18 {
		return nil, fmt.Errorf("%w: forward %v", ErrCameraParallelToUp, forward)
	}
	// Tilted cameras produce a non-unit cross product
	right = right.Normalize()
	up := right.Cross(forward)

	return &Camera{
		Position:    position,
		Size:        size,
		FocalLength: focalLength,
		Forward:     forward,
		Right:       right,
		Up:          up,
	}, nil
}

// NewCameraFromConfig creates a camera from a configuration
func NewCameraFromConfig(config CameraConfig) (*Camera, error) {
	return NewCamera(config.Position, config.Size, config.LookAt, config.FocalLength)
}

// Resolution is the pixel size of the render target
type Resolution struct {
	Width  int
	Height int
}

// AspectRatio returns width over height
func (r Resolution) AspectRatio() float64 {
	return float64(r.Width) / float64(r.Height)
}

// Validate checks that both dimensions are positive
func (r Resolution) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidResolution, r.Width, r.Height)
	}
	return nil
}

// Viewport maps pixel coordinates to points on the camera's image plane.
// Pixel row 0 is the top of the image.
type Viewport struct {
	Origin      core.Vec3 // Top-left corner of the image plane
	Resolution  Resolution
	Size        float64
	U           core.Vec3 // Full horizontal extent
	V           core.Vec3 // Full vertical extent, pointing down
	DeltaU      core.Vec3 // Horizontal step per pixel
	DeltaV      core.Vec3 // Vertical step per pixel
	PixelOrigin core.Vec3 // Center of pixel (0, 0)
}

// NewViewport creates a viewport of the given horizontal size for the camera
func NewViewport(size float64, resolution Resolution, camera *Camera) Viewport {
	u := camera.Right.Multiply(size)
	v := camera.Up.Multiply(-(size / resolution.AspectRatio()))

	origin := camera.Position.
		Add(camera.Forward.Multiply(camera.FocalLength)).
		Subtract(u.Multiply(0.5)).
		Subtract(v.Multiply(0.5))

	deltaU := u.Multiply(1.0 / float64(resolution.Width))
	deltaV := v.Multiply(1.0 / float64(resolution.Height))

	return Viewport{
		Origin:      origin,
		Resolution:  resolution,
		Size:        size,
		U:           u,
		V:           v,
		DeltaU:      deltaU,
		DeltaV:      deltaV,
		PixelOrigin: origin.Add(deltaU.Add(deltaV).Multiply(0.5)),
	}
}

// PointAt returns the world position for the fractional pixel coordinate (x, y),
// where integer coordinates are pixel centers.
func (vp Viewport) PointAt(x, y float64) core.Vec3 {
	return vp.PixelOrigin.Add(vp.DeltaU.Multiply(x)).Add(vp.DeltaV.Multiply(y))
}

// RayThrough returns the primary ray from the camera through pixel coordinate (x, y)
func (vp Viewport) RayThrough(camera *Camera, x, y float64) core.Ray {
	return core.NewRay(camera.Position, vp.PointAt(x, y).Subtract(camera.Position), 1.0)
}
