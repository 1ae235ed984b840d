package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrOutOfBounds is matched by every BoundsError
var ErrOutOfBounds = errors.New("texture: pixel out of bounds")

// BoundsError reports a pixel coordinate outside the texture
type BoundsError struct {
	Axis  string // "x" or "y"
	Value int
	Bound int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("texture: %s coordinate %d out of bounds [0, %d)", e.Axis, e.Value, e.Bound)
}

// Is lets errors.Is match ErrOutOfBounds
func (e *BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// Texture is a row-major RGBA8 image buffer.
//
// A Texture is not safe for concurrent use, except that goroutines writing
// disjoint pixels may call SetPixel at the same time.
type Texture struct {
	width  int
	height int
	pixels []core.RGBA8
}

// New allocates a transparent black texture
func New(width, height int) *Texture {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Texture{
		width:  width,
		height: height,
		pixels: make([]core.RGBA8, width*height),
	}
}

// FromImage copies any image into a new texture
func FromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	tex := New(bounds.Dx(), bounds.Dy())
	for y := 0; y < tex.height; y++ {
		for x := 0; x < tex.width; x++ {
			c := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
			tex.pixels[y*tex.width+x] = core.RGBA8{R: c.R, G: c.G, B: c.B, A: c.A}
		}
	}
	return tex
}

// Width returns the number of columns
func (t *Texture) Width() int { return t.width }

// Height returns the number of rows
func (t *Texture) Height() int { return t.height }

// Empty reports whether the texture has no pixels
func (t *Texture) Empty() bool { return t.width == 0 || t.height == 0 }

func (t *Texture) check(x, y int) error {
	if x < 0 || x >= t.width {
		return &BoundsError{Axis: "x", Value: x, Bound: t.width}
	}
	if y < 0 || y >= t.height {
		return &BoundsError{Axis: "y", Value: y, Bound: t.height}
	}
	return nil
}

// SetPixel writes the color at (x, y); row 0 is the top of the image
func (t *Texture) SetPixel(x, y int, c core.RGBA8) error {
	if err := t.check(x, y); err != nil {
		return err
	}
	t.pixels[y*t.width+x] = c
	return nil
}

// Pixel reads the color at (x, y)
func (t *Texture) Pixel(x, y int) (core.RGBA8, error) {
	if err := t.check(x, y); err != nil {
		return core.RGBA8{}, err
	}
	return t.pixels[y*t.width+x], nil
}

// Pixels returns the backing row-major slice
func (t *Texture) Pixels() []core.RGBA8 {
	return t.pixels
}

// Fill sets every pixel to c
func (t *Texture) Fill(c core.RGBA8) {
	for i := range t.pixels {
		t.pixels[i] = c
	}
}

// Bytes returns a packed RGBA copy of the pixels, four bytes per pixel
func (t *Texture) Bytes() []byte {
	buf := make([]byte, 0, len(t.pixels)*4)
	for _, p := range t.pixels {
		buf = append(buf, p.R, p.G, p.B, p.A)
	}
	return buf
}

// SetBytes replaces the pixels with a packed RGBA buffer of matching size
func (t *Texture) SetBytes(buf []byte) error {
	if len(buf) != len(t.pixels)*4 {
		return fmt.Errorf("texture: expected %d bytes, got %d", len(t.pixels)*4, len(buf))
	}
	for i := range t.pixels {
		t.pixels[i] = core.RGBA8{R: buf[4*i], G: buf[4*i+1], B: buf[4*i+2], A: buf[4*i+3]}
	}
	return nil
}

// ColorModel implements image.Image
func (t *Texture) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements image.Image
func (t *Texture) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.width, t.height)
}

// At implements image.Image
func (t *Texture) At(x, y int) color.Color {
	p, err := t.Pixel(x, y)
	if err != nil {
		return color.NRGBA{}
	}
	return p
}

// SavePNG encodes the texture as a PNG file
func SavePNG(path string, t *Texture) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("texture: failed to create %s: %w", path, err)
	}

	if err := png.Encode(file, t); err != nil {
		file.Close()
		return fmt.Errorf("texture: failed to encode %s: %w", path, err)
	}
	return file.Close()
}
