package renderer

import (
	"fmt"
	"runtime"
	"time"

	"github.com/df07/go-pathtracer/pkg/integrator"
)

// Config contains rendering configuration
type Config struct {
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	NumWorkers      int   // Parallel workers, 0 uses runtime.NumCPU()
	Seed            int64 // Base seed for per-column samplers
	FixedSeed       bool  // Use Seed even when it is 0
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		SamplesPerPixel: 128,
		MaxDepth:        integrator.DefaultMaxDepth,
		NumWorkers:      0,
		Seed:            0,
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleCount, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxDepth, c.MaxDepth)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("renderer: worker count must not be negative: %d", c.NumWorkers)
	}
	return nil
}

func (c Config) workers() int {
	if c.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return c.NumWorkers
}

// seed picks a seed from the clock when Seed is 0 and FixedSeed is unset
func (c Config) seed() int64 {
	if c.Seed == 0 && !c.FixedSeed {
		return time.Now().UnixNano()
	}
	return c.Seed
}
