package renderer

import (
	"fmt"
	"strings"
)

// Mode selects how the image is distributed over compute resources
type Mode int

const (
	// Sequential renders every column on the calling goroutine
	Sequential Mode = iota
	// Parallel renders columns on a fixed-size worker pool
	Parallel
	// GPU hands the whole frame to a Backend
	GPU
)

func (m Mode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case Parallel:
		return "parallel"
	case GPU:
		return "gpu"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps a mode name to a Mode
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sequential", "single-thread", "single":
		return Sequential, nil
	case "parallel", "multi-thread", "multi":
		return Parallel, nil
	case "gpu":
		return GPU, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// Modes returns all render modes
func Modes() []Mode {
	return []Mode{Sequential, Parallel, GPU}
}
