package renderer

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// recordingProgress remembers every progress report
type recordingProgress struct {
	columns  []int
	total    int
	finished int
}

func (p *recordingProgress) ColumnCompleted(done, total int) {
	p.columns = append(p.columns, done)
	p.total = total
}

func (p *recordingProgress) RenderFinished(elapsed time.Duration) {
	p.finished++
}

// fillBackend paints every pixel with one color and records its params
type fillBackend struct {
	color  core.RGBA8
	params []ComputeParams
	err    error
}

func (b *fillBackend) Name() string { return "fill" }

func (b *fillBackend) Render(tex *texture.Texture, params ComputeParams) error {
	b.params = append(b.params, params)
	if b.err != nil {
		return b.err
	}
	tex.Fill(b.color)
	return nil
}

func testConfig(seed int64) Config {
	config := DefaultConfig()
	config.Seed = seed
	config.NumWorkers = 4
	config.MaxDepth = 32
	return config
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		wantErr  bool
	}{
		{"sequential", Sequential, false},
		{"single-thread", Sequential, false},
		{"parallel", Parallel, false},
		{"Multi-Thread", Parallel, false},
		{"gpu", GPU, false},
		{"vulkan", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseMode(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownMode) {
					t.Errorf("Expected ErrUnknownMode, got %v", err)
				}
				return
			}
			if err != nil || mode != tt.expected {
				t.Errorf("Expected %s, got %s (err %v)", tt.expected, mode, err)
			}
		})
	}

	for _, mode := range Modes() {
		if parsed, err := ParseMode(mode.String()); err != nil || parsed != mode {
			t.Errorf("Mode %s does not round-trip through its name", mode)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
	bad := DefaultConfig()
	bad.SamplesPerPixel = 0
	if err := bad.Validate(); !errors.Is(err, ErrInvalidSampleCount) {
		t.Errorf("Expected ErrInvalidSampleCount, got %v", err)
	}
	bad = DefaultConfig()
	bad.NumWorkers = -2
	if err := bad.Validate(); err == nil {
		t.Error("Expected error for negative worker count")
	}
	bad = DefaultConfig()
	bad.MaxDepth = -1
	if err := bad.Validate(); !errors.Is(err, ErrInvalidMaxDepth) {
		t.Errorf("Expected ErrInvalidMaxDepth, got %v", err)
	}
	zero := DefaultConfig()
	zero.MaxDepth = 0
	if err := zero.Validate(); err != nil {
		t.Errorf("Max depth 0 should be valid: %v", err)
	}
}

func TestConfig_Seed(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		fixed  bool
		want   int64
	}{
		{"explicit seed", Config{Seed: 42}, true, 42},
		{"fixed zero seed", Config{Seed: 0, FixedSeed: true}, true, 0},
		{"fixed negative seed", Config{Seed: -3, FixedSeed: true}, true, -3},
		{"unset seed uses the clock", Config{}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.config.seed()
			if tt.fixed && got != tt.want {
				t.Errorf("Expected seed %d, got %d", tt.want, got)
			}
			if !tt.fixed && got == 0 {
				t.Error("Expected a clock seed, got 0")
			}
		})
	}
}

func TestComputeParams_Binary(t *testing.T) {
	params := ComputeParams{Width: 400, Height: 225, Samples: 128}
	data, err := params.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	expected := []byte{0x90, 0x01, 0, 0, 0xE1, 0, 0, 0, 0x80, 0, 0, 0}
	if !bytes.Equal(data, expected) {
		t.Errorf("Expected %v, got %v", expected, data)
	}

	var decoded ComputeParams
	if err := decoded.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if decoded != params {
		t.Errorf("Expected %+v, got %+v", params, decoded)
	}
	if err := decoded.UnmarshalBinary(data[:8]); err == nil {
		t.Error("Expected error for a short buffer")
	}
}

func TestRender_SeededIsDeterministic(t *testing.T) {
	sc := scene.NewReferenceScene()

	first := texture.New(16, 9)
	second := texture.New(16, 9)
	if _, err := NewRaytracer(sc, testConfig(7)).Render(first, 4, Parallel); err != nil {
		t.Fatal(err)
	}
	if _, err := NewRaytracer(sc, testConfig(7)).Render(second, 4, Parallel); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("Renders with the same seed should be identical")
	}

	third := texture.New(16, 9)
	if _, err := NewRaytracer(sc, testConfig(8)).Render(third, 4, Parallel); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(first.Bytes(), third.Bytes()) {
		t.Error("Renders with different seeds should differ")
	}
}

func TestRender_NegativeMaxDepth(t *testing.T) {
	config := testConfig(1)
	config.MaxDepth = -1
	_, err := NewRaytracer(scene.NewReferenceScene(), config).Render(texture.New(2, 2), 1, Sequential)
	if !errors.Is(err, ErrInvalidMaxDepth) {
		t.Errorf("Expected ErrInvalidMaxDepth, got %v", err)
	}
}

func TestRender_FixedZeroSeed(t *testing.T) {
	sc := scene.NewReferenceScene()
	config := testConfig(0)
	config.FixedSeed = true

	first := texture.New(12, 8)
	second := texture.New(12, 8)
	stats, err := NewRaytracer(sc, config).Render(first, 2, Sequential)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Seed != 0 {
		t.Errorf("Expected seed 0 to be used, got %d", stats.Seed)
	}
	if _, err := NewRaytracer(sc, config).Render(second, 2, Parallel); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("Renders with a fixed zero seed should be identical")
	}
}

func TestRender_SequentialMatchesParallelWithSeed(t *testing.T) {
	sc := scene.NewReferenceScene()

	sequential := texture.New(20, 12)
	parallel := texture.New(20, 12)
	emulated := texture.New(20, 12)

	if _, err := NewRaytracer(sc, testConfig(99)).Render(sequential, 3, Sequential); err != nil {
		t.Fatal(err)
	}
	if _, err := NewRaytracer(sc, testConfig(99)).Render(parallel, 3, Parallel); err != nil {
		t.Fatal(err)
	}
	gpu := NewRaytracer(sc, testConfig(99), WithGPUBackend(NewEmulatedBackend(sc, testConfig(99))))
	if _, err := gpu.Render(emulated, 3, GPU); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(sequential.Bytes(), parallel.Bytes()) {
		t.Error("Sequential and parallel renders with the same seed should be identical")
	}
	if !bytes.Equal(parallel.Bytes(), emulated.Bytes()) {
		t.Error("Emulated backend should match the parallel render")
	}
}

func meanChannel(tex *texture.Texture) float64 {
	var sum float64
	for _, p := range tex.Pixels() {
		sum += float64(p.R) + float64(p.G) + float64(p.B)
	}
	return sum / float64(3*len(tex.Pixels()))
}

func TestRender_UnseededModesAreStatisticallyEquivalent(t *testing.T) {
	sc := scene.NewReferenceScene()
	config := testConfig(0)

	sequential := texture.New(32, 18)
	parallel := texture.New(32, 18)
	seqStats, err := NewRaytracer(sc, config).Render(sequential, 16, Sequential)
	if err != nil {
		t.Fatal(err)
	}
	parStats, err := NewRaytracer(sc, config).Render(parallel, 16, Parallel)
	if err != nil {
		t.Fatal(err)
	}
	if seqStats.Seed == 0 || parStats.Seed == 0 {
		t.Errorf("Expected a clock seed to be chosen, got %d and %d", seqStats.Seed, parStats.Seed)
	}

	if diff := math.Abs(meanChannel(sequential) - meanChannel(parallel)); diff > 4 {
		t.Errorf("Mean channel values differ by %.2f", diff)
	}
}

func TestRender_EmptySceneShowsBackgroundInEveryMode(t *testing.T) {
	sc := scene.NewEmptyScene()
	flat := core.NewRGB(0.5, 0.25, 0.75)
	sc.Background = integrator.Background{Sky: flat, Ground: flat}
	expected := core.RGBA8{R: 127, G: 63, B: 191, A: 255}

	for _, mode := range Modes() {
		t.Run(mode.String(), func(t *testing.T) {
			tex := texture.New(7, 5)
			rt := NewRaytracer(sc, testConfig(0), WithGPUBackend(NewEmulatedBackend(sc, testConfig(0))))
			if _, err := rt.Render(tex, 2, mode); err != nil {
				t.Fatal(err)
			}
			for i, p := range tex.Pixels() {
				if p != expected {
					t.Fatalf("Pixel %d: expected %v, got %v", i, expected, p)
				}
			}
		})
	}
}

func TestRender_GradientBackgroundVariesByRow(t *testing.T) {
	tex := texture.New(4, 20)
	if _, err := NewRaytracer(scene.NewEmptyScene(), testConfig(1)).Render(tex, 8, Sequential); err != nil {
		t.Fatal(err)
	}

	top, _ := tex.Pixel(0, 0)
	bottom, _ := tex.Pixel(0, 19)
	// The sky is bluer than the white ground, so the top row has less red
	if top.R >= bottom.R {
		t.Errorf("Expected the top row to be closer to the sky: top %v bottom %v", top, bottom)
	}
}

func TestRender_Errors(t *testing.T) {
	sc := scene.NewReferenceScene()
	degenerate := scene.NewReferenceScene()
	degenerate.Camera.LookAt = degenerate.Camera.Position

	tests := []struct {
		name     string
		scene    *scene.Scene
		tex      *texture.Texture
		samples  int
		mode     Mode
		expected error
	}{
		{"nil scene", nil, texture.New(2, 2), 1, Parallel, ErrNoScene},
		{"zero samples", sc, texture.New(2, 2), 0, Sequential, ErrInvalidSampleCount},
		{"negative samples", sc, texture.New(2, 2), -3, Parallel, ErrInvalidSampleCount},
		{"nil texture", sc, nil, 1, Sequential, ErrEmptyTexture},
		{"empty texture", sc, texture.New(0, 4), 1, Parallel, ErrEmptyTexture},
		{"no gpu backend", sc, texture.New(2, 2), 1, GPU, ErrNoGPUBackend},
		{"unknown mode", sc, texture.New(2, 2), 1, Mode(42), ErrUnknownMode},
		{"degenerate camera", degenerate, texture.New(2, 2), 1, Sequential, geometry.ErrDegenerateCamera},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRaytracer(tt.scene, testConfig(1)).Render(tt.tex, tt.samples, tt.mode)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestRender_Progress(t *testing.T) {
	for _, mode := range []Mode{Sequential, Parallel} {
		t.Run(mode.String(), func(t *testing.T) {
			progress := &recordingProgress{}
			tex := texture.New(9, 3)
			stats, err := NewRaytracer(scene.NewReferenceScene(), testConfig(5), WithProgress(progress)).Render(tex, 1, mode)
			if err != nil {
				t.Fatal(err)
			}

			if len(progress.columns) != 9 || progress.total != 9 {
				t.Fatalf("Expected 9 column reports of 9, got %v of %d", progress.columns, progress.total)
			}
			for i, done := range progress.columns {
				if done != i+1 {
					t.Errorf("Expected progress to count up, got %v", progress.columns)
					break
				}
			}
			if progress.finished != 1 {
				t.Errorf("Expected one finish report, got %d", progress.finished)
			}

			if stats.TotalSamples != 27 || stats.Columns != 9 || stats.Seed != 5 || stats.Mode != mode {
				t.Errorf("Unexpected stats %+v", stats)
			}
			if stats.TotalPixels() != 27 {
				t.Errorf("Expected 27 pixels, got %d", stats.TotalPixels())
			}
		})
	}
}

func TestRender_GPUBackend(t *testing.T) {
	backend := &fillBackend{color: core.NewRGBA8(core.Magenta8, 255)}
	progress := &recordingProgress{}
	rt := NewRaytracer(scene.NewReferenceScene(), testConfig(1), WithGPUBackend(backend), WithProgress(progress))

	tex := texture.New(6, 4)
	stats, err := rt.Render(tex, 32, GPU)
	if err != nil {
		t.Fatal(err)
	}
	if len(backend.params) != 1 || backend.params[0] != (ComputeParams{Width: 6, Height: 4, Samples: 32}) {
		t.Errorf("Unexpected compute params %+v", backend.params)
	}
	if p, _ := tex.Pixel(5, 3); p != backend.color {
		t.Errorf("Expected backend color, got %v", p)
	}
	if stats.Backend != "fill" || progress.finished != 1 {
		t.Errorf("Unexpected stats %+v / finished %d", stats, progress.finished)
	}

	backend.err = errors.New("device lost")
	if _, err := rt.Render(tex, 1, GPU); err == nil || !strings.Contains(err.Error(), "device lost") {
		t.Errorf("Expected backend error to propagate, got %v", err)
	}
}

func TestEmulatedBackend_ResolutionMismatch(t *testing.T) {
	backend := NewEmulatedBackend(scene.NewEmptyScene(), testConfig(1))
	err := backend.Render(texture.New(4, 4), ComputeParams{Width: 5, Height: 4, Samples: 1})
	if !errors.Is(err, ErrResolutionMismatch) {
		t.Errorf("Expected ErrResolutionMismatch, got %v", err)
	}
}

// oversizedJob builds a job that addresses one column and one row past the
// texture on every side.
func oversizedJob(t *testing.T, tex *texture.Texture) *renderJob {
	t.Helper()
	rt := NewRaytracer(scene.NewEmptyScene(), testConfig(3))
	job, err := rt.newJob(tex, 1)
	if err != nil {
		t.Fatal(err)
	}
	job.width = tex.Width() + 1
	job.height = tex.Height() + 1
	return job
}

func TestRenderColumn_BoundsErrorPropagates(t *testing.T) {
	tex := texture.New(3, 2)
	job := oversizedJob(t, tex)

	err := job.renderColumn(0)
	if !errors.Is(err, texture.ErrOutOfBounds) {
		t.Fatalf("Expected ErrOutOfBounds, got %v", err)
	}
	var bounds *texture.BoundsError
	if !errors.As(err, &bounds) || bounds.Axis != "y" || bounds.Value != 2 {
		t.Errorf("Expected y bound error at 2, got %v", err)
	}
	if !strings.Contains(err.Error(), "column 0") {
		t.Errorf("Expected the column in the error, got %v", err)
	}

	// Pixels before the failing row were committed
	if p, _ := tex.Pixel(0, 1); p.A != 255 {
		t.Errorf("Expected committed pixel, got %v", p)
	}
}

func TestRenderDrivers_BoundsErrorPropagates(t *testing.T) {
	for _, mode := range []Mode{Sequential, Parallel} {
		t.Run(mode.String(), func(t *testing.T) {
			tex := texture.New(3, 2)
			job := oversizedJob(t, tex)
			job.height = tex.Height()
			rt := NewRaytracer(scene.NewEmptyScene(), testConfig(3))

			var err error
			if mode == Sequential {
				err = rt.renderSequential(job)
			} else {
				err = rt.renderParallel(job, 2)
			}

			var bounds *texture.BoundsError
			if !errors.As(err, &bounds) || bounds.Axis != "x" || bounds.Value != 3 {
				t.Errorf("Expected x bound error at 3, got %v", err)
			}
		})
	}
}

func TestWorkerPool_AbortSkipsTasks(t *testing.T) {
	rendered := make(chan int, 8)
	pool := NewWorkerPool(func(column int) error {
		rendered <- column
		return nil
	}, 8, 2)

	pool.Abort()
	pool.Start()
	for i := 0; i < 8; i++ {
		pool.SubmitTask(ColumnTask{Column: i})
	}
	pool.Stop()

	skipped := 0
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Skipped {
			skipped++
		}
	}
	if skipped != 8 || len(rendered) != 0 {
		t.Errorf("Expected all 8 tasks skipped, got %d skipped and %d rendered", skipped, len(rendered))
	}
	if pool.GetNumWorkers() != 2 {
		t.Errorf("Expected 2 workers, got %d", pool.GetNumWorkers())
	}
}
