package material

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

var (
	ErrUnknownKind = errors.New("material: unknown kind")
	ErrInvalidIOR  = errors.New("material: index of refraction must be positive")
)

// Kind identifies the scattering model of a material
type Kind uint8

const (
	kindInvalid Kind = iota
	KindDiffuse
	KindMetal
	KindTransparent
)

// String returns the lower-case kind name
func (k Kind) String() string {
	switch k {
	case KindDiffuse:
		return "diffuse"
	case KindMetal:
		return "metal"
	case KindTransparent:
		return "transparent"
	default:
		return "invalid"
	}
}

// ParseKind maps a kind name to a Kind
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "diffuse", "lambertian":
		return KindDiffuse, nil
	case "metal", "mirror":
		return KindMetal, nil
	case "transparent", "dielectric", "glass":
		return KindTransparent, nil
	default:
		return kindInvalid, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

// Material is a closed set of surface scattering models. Values are
// immutable and safe to share between goroutines.
//
// The zero Material is invalid: it absorbs every ray.
type Material struct {
	kind  Kind
	color core.RGB
	ior   float64
}

// NewDiffuse creates a perfectly diffuse material
func NewDiffuse(color core.RGB) Material {
	return Material{kind: KindDiffuse, color: color, ior: 1.0}
}

// NewMetal creates a perfect mirror tinted by color
func NewMetal(color core.RGB) Material {
	return Material{kind: KindMetal, color: color, ior: 1.0}
}

// NewTransparent creates a dielectric with the given index of refraction
func NewTransparent(color core.RGB, ior float64) Material {
	return Material{kind: KindTransparent, color: color, ior: ior}
}

// New creates a material of the given kind. The ior is only used by
// transparent materials.
func New(kind Kind, color core.RGB, ior float64) (Material, error) {
	switch kind {
	case KindDiffuse:
		return NewDiffuse(color), nil
	case KindMetal:
		return NewMetal(color), nil
	case KindTransparent:
		if ior <= 0 {
			return Material{}, fmt.Errorf("%w: got %g", ErrInvalidIOR, ior)
		}
		return NewTransparent(color, ior), nil
	default:
		return Material{}, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
}

// Kind returns the scattering model
func (m Material) Kind() Kind {
	return m.kind
}

// Color returns the base color that attenuates every bounce
func (m Material) Color() core.RGB {
	return m.color
}

// IOR returns the index of refraction. ok is false for materials that do
// not refract.
func (m Material) IOR() (ior float64, ok bool) {
	if m.kind != KindTransparent {
		return 0, false
	}
	return m.ior, true
}

// Scatter produces the bounce ray for a ray arriving along incident at
// point with the outward surface normal. ok is false when the path is
// absorbed.
func (m Material) Scatter(incident, normal, point core.Vec3, sampler core.Sampler) (core.Ray, bool) {
	switch m.kind {
	case KindDiffuse:
		return scatterDiffuse(normal, point, sampler), true
	case KindMetal:
		return scatterMetal(incident, normal, point), true
	case KindTransparent:
		return scatterTransparent(incident, normal, point, m.ior), true
	default:
		return core.Ray{}, false
	}
}

// String implements fmt.Stringer
func (m Material) String() string {
	c := m.color.To8()
	if m.kind == KindTransparent {
		return fmt.Sprintf("%s(%d,%d,%d ior=%g)", m.kind, c.R, c.G, c.B, m.ior)
	}
	return fmt.Sprintf("%s(%d,%d,%d)", m.kind, c.R, c.G, c.B)
}
