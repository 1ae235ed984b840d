package renderer

import "time"

// RenderStats contains statistics about a finished render
type RenderStats struct {
	Mode            Mode
	Width           int
	Height          int
	SamplesPerPixel int
	TotalSamples    int64         // Camera paths traced
	Columns         int           // Columns rendered by the CPU drivers
	Workers         int           // Goroutines used, 0 for the GPU
	Seed            int64         // Base seed, column c uses Seed+c
	Backend         string        // GPU backend name
	Elapsed         time.Duration // Wall-clock render time
}

// TotalPixels returns the number of pixels in the frame
func (s RenderStats) TotalPixels() int {
	return s.Width * s.Height
}

// SamplesPerSecond returns the path throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}
