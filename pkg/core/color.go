package core

import (
	"image/color"
	"math"

	"golang.org/x/image/colornames"
)

// RGB is a linear color with float channels in [0, 1]
type RGB struct {
	R, G, B float64
}

// RGBA is an RGB color with an alpha channel
type RGBA struct {
	R, G, B, A float64
}

// RGB8 is a color with 8-bit channels
type RGB8 struct {
	R, G, B uint8
}

// RGBA8 is an RGB8 color with an 8-bit alpha channel
type RGBA8 struct {
	R, G, B, A uint8
}

// Named float colors. Every entry converts exactly to its byte counterpart.
var (
	Red     = RGB{1, 0, 0}
	Green   = RGB{0, 1, 0}
	Blue    = RGB{0, 0, 1}
	Yellow  = RGB{1, 1, 0}
	Magenta = RGB{1, 0, 1}
	Cyan    = RGB{0, 1, 1}
	White   = RGB{1, 1, 1}
	Black   = RGB{0, 0, 0}
	Gray    = RGB{0.5, 0.5, 0.5}
)

// Named byte colors.
var (
	Red8     = rgb8FromColor(colornames.Red)
	Green8   = rgb8FromColor(colornames.Lime)
	Blue8    = rgb8FromColor(colornames.Blue)
	Yellow8  = rgb8FromColor(colornames.Yellow)
	Magenta8 = rgb8FromColor(colornames.Magenta)
	Cyan8    = rgb8FromColor(colornames.Cyan)
	White8   = rgb8FromColor(colornames.White)
	Black8   = rgb8FromColor(colornames.Black)
	// CSS gray is 128; 0.5 truncates to 127.
	Gray8 = RGB8{127, 127, 127}
)

// NamedColor pairs the float and byte form of a palette entry
type NamedColor struct {
	Name  string
	Float RGB
	Byte  RGB8
}

// Palette returns the named colors in both representations
func Palette() []NamedColor {
	return []NamedColor{
		{"red", Red, Red8},
		{"green", Green, Green8},
		{"blue", Blue, Blue8},
		{"yellow", Yellow, Yellow8},
		{"magenta", Magenta, Magenta8},
		{"cyan", Cyan, Cyan8},
		{"white", White, White8},
		{"black", Black, Black8},
		{"gray", Gray, Gray8},
	}
}

func rgb8FromColor(c color.RGBA) RGB8 {
	return RGB8{R: c.R, G: c.G, B: c.B}
}

// NewRGB creates a new float color
func NewRGB(r, g, b float64) RGB {
	return RGB{R: r, G: g, B: b}
}

// Add returns the channel-wise sum of two colors
func (c RGB) Add(other RGB) RGB {
	return RGB{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply returns the color scaled by a scalar
func (c RGB) Multiply(scalar float64) RGB {
	return RGB{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyVec returns the channel-wise product of two colors
func (c RGB) MultiplyVec(other RGB) RGB {
	return RGB{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Blend linearly interpolates from c (t = 0) to other (t = 1)
func (c RGB) Blend(other RGB, t float64) RGB {
	return RGB{
		R: (1-t)*c.R + t*other.R,
		G: (1-t)*c.G + t*other.G,
		B: (1-t)*c.B + t*other.B,
	}
}

// To8 converts to byte channels by scaling with 255 and truncating.
// Values outside [0, 1] saturate.
func (c RGB) To8() RGB8 {
	return RGB8{R: channelTo8(c.R), G: channelTo8(c.G), B: channelTo8(c.B)}
}

// To8 converts to byte channels, see RGB.To8
func (c RGBA) To8() RGBA8 {
	return RGBA8{R: channelTo8(c.R), G: channelTo8(c.G), B: channelTo8(c.B), A: channelTo8(c.A)}
}

// RGB drops the alpha channel
func (c RGBA) RGB() RGB {
	return RGB{c.R, c.G, c.B}
}

// NewRGBA extends an RGB color with an explicit alpha
func NewRGBA(c RGB, alpha float64) RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// ToFloat converts byte channels to [0, 1] floats
func (c RGB8) ToFloat() RGB {
	return RGB{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ToFloat converts byte channels to [0, 1] floats
func (c RGBA8) ToFloat() RGBA {
	return RGBA{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255, A: float64(c.A) / 255}
}

// RGB drops the alpha channel
func (c RGBA8) RGB() RGB8 {
	return RGB8{c.R, c.G, c.B}
}

// NewRGBA8 extends an RGB8 color with an explicit alpha
func NewRGBA8(c RGB8, alpha uint8) RGBA8 {
	return RGBA8{R: c.R, G: c.G, B: c.B, A: alpha}
}

// RGBA implements color.Color. RGBA8 values are treated as non-premultiplied.
func (c RGBA8) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

func channelTo8(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	scaled := v * 255
	if scaled <= 0 {
		return 0
	}
	if scaled >= 255 {
		return 255
	}
	return uint8(scaled)
}
