package texture

import (
	"errors"
	"fmt"
)

var ErrSizeMismatch = errors.New("texture: sizes differ")

// Comparison summarizes the per-channel difference of two textures
type Comparison struct {
	Pixels  int
	MeanAbs [3]float64 // Mean absolute difference of R, G and B
	MaxAbs  [3]uint8   // Largest absolute difference of R, G and B
}

// Mean returns the mean absolute difference over all color channels
func (c Comparison) Mean() float64 {
	return (c.MeanAbs[0] + c.MeanAbs[1] + c.MeanAbs[2]) / 3
}

// Compare measures how far b is from a. Alpha is ignored.
func Compare(a, b *Texture) (Comparison, error) {
	if a.width != b.width || a.height != b.height {
		return Comparison{}, fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, a.width, a.height, b.width, b.height)
	}

	cmp := Comparison{Pixels: len(a.pixels)}
	if cmp.Pixels == 0 {
		return cmp, nil
	}

	var sum [3]float64
	for i := range a.pixels {
		pa, pb := a.pixels[i], b.pixels[i]
		diffs := [3]uint8{absDiff(pa.R, pb.R), absDiff(pa.G, pb.G), absDiff(pa.B, pb.B)}
		for ch, d := range diffs {
			sum[ch] += float64(d)
			if d > cmp.MaxAbs[ch] {
				cmp.MaxAbs[ch] = d
			}
		}
	}
	for ch := range sum {
		cmp.MeanAbs[ch] = sum[ch] / float64(cmp.Pixels)
	}
	return cmp, nil
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
