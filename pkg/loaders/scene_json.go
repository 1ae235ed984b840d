package loaders

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ErrInvalidScene is wrapped by every scene decoding error
var ErrInvalidScene = errors.New("loaders: invalid scene")

// SceneFile is the on-disk JSON form of a scene. Vectors are [x, y, z] and
// colors are [r, g, b] bytes.
type SceneFile struct {
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Camera      *CameraFile     `json:"camera,omitempty"`
	Background  *BackgroundFile `json:"background,omitempty"`
	Spheres     []SphereFile    `json:"spheres"`
}

// CameraFile describes the camera. Missing fields take the default camera's
// values.
type CameraFile struct {
	Position    *[3]float64 `json:"position,omitempty"`
	LookAt      *[3]float64 `json:"lookAt,omitempty"`
	Size        float64     `json:"size,omitempty"`
	FocalLength float64     `json:"focalLength,omitempty"`
}

// BackgroundFile describes the sky gradient
type BackgroundFile struct {
	Sky    [3]uint8 `json:"sky"`
	Ground [3]uint8 `json:"ground"`
}

// SphereFile describes one sphere
type SphereFile struct {
	Center   [3]float64   `json:"center"`
	Radius   float64      `json:"radius"`
	Material MaterialFile `json:"material"`
}

// MaterialFile describes a material. IOR is only read for transparent
// materials.
type MaterialFile struct {
	Kind  string   `json:"kind"`
	Color [3]uint8 `json:"color"`
	IOR   float64  `json:"ior,omitempty"`
}

func vec3(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

func rgb(c [3]uint8) core.RGB {
	return core.RGB8{R: c[0], G: c[1], B: c[2]}.ToFloat()
}

// bytes3 rounds a float color to the nearest byte values so colors
// written by FromScene read back unchanged
func bytes3(c core.RGB) [3]uint8 {
	channel := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return [3]uint8{channel(c.R), channel(c.G), channel(c.B)}
}

func invalid(field string, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidScene, field, fmt.Sprintf(format, args...))
}

// LoadScene reads a scene from a JSON file
func LoadScene(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	sc, err := DecodeScene(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Infof("loaded scene %q from %s with %d primitives", sc.Name, path, sc.PrimitiveCount())
	return sc, nil
}

// DecodeScene reads a JSON scene from r. Unknown fields are rejected.
func DecodeScene(r io.Reader) (*scene.Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var file SceneFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidScene, err)
	}
	return file.Build()
}

// Build converts the file form into a validated scene
func (f SceneFile) Build() (*scene.Scene, error) {
	sc := scene.NewEmptyScene()
	sc.Name = f.Name

	if f.Camera != nil {
		if f.Camera.Position != nil {
			sc.Camera.Position = vec3(*f.Camera.Position)
		}
		if f.Camera.LookAt != nil {
			sc.Camera.LookAt = vec3(*f.Camera.LookAt)
		}
		if f.Camera.Size < 0 {
			return nil, invalid("camera.size", "must be positive, got %g", f.Camera.Size)
		}
		if f.Camera.Size > 0 {
			sc.Camera.Size = f.Camera.Size
		}
		if f.Camera.FocalLength < 0 {
			return nil, invalid("camera.focalLength", "must be positive, got %g", f.Camera.FocalLength)
		}
		if f.Camera.FocalLength > 0 {
			sc.Camera.FocalLength = f.Camera.FocalLength
		}
	}
	if _, err := geometry.NewCameraFromConfig(sc.Camera); err != nil {
		return nil, invalid("camera", "%v", err)
	}

	if f.Background != nil {
		sc.Background = integrator.Background{Sky: rgb(f.Background.Sky), Ground: rgb(f.Background.Ground)}
	}

	for i, s := range f.Spheres {
		field := fmt.Sprintf("spheres[%d]", i)
		if !(s.Radius > 0) {
			return nil, invalid(field+".radius", "must be positive, got %g", s.Radius)
		}

		kind, err := material.ParseKind(s.Material.Kind)
		if err != nil {
			return nil, invalid(field+".material.kind", "%v", err)
		}
		ior := s.Material.IOR
		if kind == material.KindTransparent && ior == 0 {
			ior = 1.5
		}
		mat, err := material.New(kind, rgb(s.Material.Color), ior)
		if err != nil {
			return nil, invalid(field+".material", "%v", err)
		}

		sc.AddSphere(geometry.NewSphere(vec3(s.Center), s.Radius, mat))
	}

	return sc, nil
}

// FromScene converts a scene into its file form
func FromScene(sc *scene.Scene) SceneFile {
	position := [3]float64{sc.Camera.Position.X, sc.Camera.Position.Y, sc.Camera.Position.Z}
	lookAt := [3]float64{sc.Camera.LookAt.X, sc.Camera.LookAt.Y, sc.Camera.LookAt.Z}

	f := SceneFile{
		Name: sc.Name,
		Camera: &CameraFile{
			Position:    &position,
			LookAt:      &lookAt,
			Size:        sc.Camera.Size,
			FocalLength: sc.Camera.FocalLength,
		},
		Background: &BackgroundFile{
			Sky:    bytes3(sc.Background.Sky),
			Ground: bytes3(sc.Background.Ground),
		},
		Spheres: make([]SphereFile, 0, len(sc.Primitives)),
	}

	for i := range sc.Primitives {
		s, ok := sc.Primitives[i].Sphere()
		if !ok {
			continue
		}
		mf := MaterialFile{Kind: s.Material.Kind().String(), Color: bytes3(s.Material.Color())}
		if ior, ok := s.Material.IOR(); ok {
			mf.IOR = ior
		}
		f.Spheres = append(f.Spheres, SphereFile{
			Center:   [3]float64{s.Center.X, s.Center.Y, s.Center.Z},
			Radius:   s.Radius,
			Material: mf,
		})
	}

	return f
}

// EncodeScene writes the scene as indented JSON
func EncodeScene(w io.Writer, sc *scene.Scene) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromScene(sc)); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}

// SaveScene writes a scene to a JSON file
func SaveScene(path string, sc *scene.Scene) error {
	var buf bytes.Buffer
	if err := EncodeScene(&buf, sc); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	return nil
}
