package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/pkg/texture"
)

var logger = log.New("renderer")

// Raytracer renders a scene into textures
type Raytracer struct {
	scene    *scene.Scene
	config   Config
	progress ProgressSink
	backend  Backend
}

// Option configures a Raytracer
type Option func(*Raytracer)

// WithProgress reports progress to sink
func WithProgress(sink ProgressSink) Option {
	return func(rt *Raytracer) {
		if sink != nil {
			rt.progress = sink
		}
	}
}

// WithGPUBackend sets the backend used by the GPU mode
func WithGPUBackend(backend Backend) Option {
	return func(rt *Raytracer) {
		rt.backend = backend
	}
}

// NewRaytracer creates a new raytracer
func NewRaytracer(sc *scene.Scene, config Config, opts ...Option) *Raytracer {
	rt := &Raytracer{
		scene:    sc,
		config:   config,
		progress: NopProgress{},
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Config returns the configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// renderJob holds everything a column needs. It is read-only once built.
type renderJob struct {
	tex        *texture.Texture
	width      int
	height     int
	samples    int
	seed       int64
	camera     *geometry.Camera
	viewport   geometry.Viewport
	integrator *integrator.PathTracingIntegrator
	primitives []geometry.Primitive
}

// renderColumn traces every pixel of one column. Each column draws from its
// own sampler seeded with seed+column, so the result does not depend on
// which goroutine renders it.
func (job *renderJob) renderColumn(column int) error {
	sampler := core.NewSeededSampler(job.seed + int64(column))
	for row := 0; row < job.height; row++ {
		c := job.integrator.SamplePixel(column, row, job.samples, job.camera, job.viewport, job.primitives, sampler)
		if err := job.tex.SetPixel(column, row, c); err != nil {
			return fmt.Errorf("renderer: column %d: %w", column, err)
		}
	}
	return nil
}

// Render fills tex with sampleCount samples per pixel using the given mode
func (rt *Raytracer) Render(tex *texture.Texture, sampleCount int, mode Mode) (RenderStats, error) {
	if rt.scene == nil {
		return RenderStats{}, ErrNoScene
	}
	if sampleCount <= 0 {
		return RenderStats{}, fmt.Errorf("%w: %d", ErrInvalidSampleCount, sampleCount)
	}
	if rt.config.MaxDepth < 0 {
		return RenderStats{}, fmt.Errorf("%w: %d", ErrInvalidMaxDepth, rt.config.MaxDepth)
	}
	if tex == nil || tex.Empty() {
		return RenderStats{}, ErrEmptyTexture
	}

	stats := RenderStats{
		Mode:            mode,
		Width:           tex.Width(),
		Height:          tex.Height(),
		SamplesPerPixel: sampleCount,
	}

	var run func() error
	switch mode {
	case Sequential, Parallel:
		job, err := rt.newJob(tex, sampleCount)
		if err != nil {
			return stats, err
		}
		stats.Seed = job.seed
		stats.Columns = job.width
		logger.Debugf("using base seed %d", job.seed)

		if mode == Sequential {
			stats.Workers = 1
			run = func() error { return rt.renderSequential(job) }
		} else {
			stats.Workers = rt.config.workers()
			run = func() error { return rt.renderParallel(job, stats.Workers) }
		}
	case GPU:
		if rt.backend == nil {
			return stats, ErrNoGPUBackend
		}
		stats.Backend = rt.backend.Name()
		run = func() error { return rt.renderGPU(tex, sampleCount) }
	default:
		return stats, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}

	logger.Infof("Starting %s rendering: %dx%d, %d samples per pixel, %d workers",
		mode, stats.Width, stats.Height, sampleCount, stats.Workers)
	start := time.Now()

	err := run()
	stats.Elapsed = time.Since(start)
	if err != nil {
		logger.Errorf("%s rendering failed after %dms: %v", mode, stats.Elapsed.Milliseconds(), err)
		return stats, err
	}

	stats.TotalSamples = int64(stats.Width) * int64(stats.Height) * int64(sampleCount)
	rt.progress.RenderFinished(stats.Elapsed)
	logger.Noticef("Finished rendering in %dms", stats.Elapsed.Milliseconds())

	return stats, nil
}

func (rt *Raytracer) newJob(tex *texture.Texture, sampleCount int) (*renderJob, error) {
	camera, err := geometry.NewCameraFromConfig(rt.scene.Camera)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	resolution := geometry.Resolution{Width: tex.Width(), Height: tex.Height()}

	return &renderJob{
		tex:        tex,
		width:      resolution.Width,
		height:     resolution.Height,
		samples:    sampleCount,
		seed:       rt.config.seed(),
		camera:     camera,
		viewport:   geometry.NewViewport(camera.Size, resolution, camera),
		integrator: integrator.NewPathTracingIntegrator(rt.config.MaxDepth, rt.scene.Background),
		primitives: rt.scene.Primitives,
	}, nil
}
