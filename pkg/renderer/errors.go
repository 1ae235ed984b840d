package renderer

import "errors"

var (
	ErrInvalidSampleCount = errors.New("renderer: sample count must be positive")
	ErrEmptyTexture       = errors.New("renderer: texture has no pixels")
	ErrNoGPUBackend       = errors.New("renderer: no GPU backend configured")
	ErrUnknownMode        = errors.New("renderer: unknown render mode")
	ErrResolutionMismatch = errors.New("renderer: compute params do not match the texture")
	ErrInvalidMaxDepth    = errors.New("renderer: max depth must not be negative")
	ErrNoScene            = errors.New("renderer: no scene to render")
)
