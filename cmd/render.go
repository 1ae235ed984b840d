package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/pkg/texture"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// loadScene resolves a built-in scene name or a path to a JSON scene file
func loadScene(nameOrPath string) (*scene.Scene, error) {
	if strings.EqualFold(filepath.Ext(nameOrPath), ".json") {
		return loaders.LoadScene(nameOrPath)
	}
	return scene.ByName(nameOrPath)
}

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	mode, err := renderer.ParseMode(ctx.String("mode"))
	if err != nil {
		return err
	}

	config := renderer.DefaultConfig()
	config.SamplesPerPixel = ctx.Int("samples")
	config.MaxDepth = ctx.Int("max-depth")
	config.NumWorkers = ctx.Int("workers")
	config.Seed = ctx.Int64("seed")
	config.FixedSeed = ctx.IsSet("seed")
	if err := config.Validate(); err != nil {
		return err
	}

	width, height := ctx.Int("width"), ctx.Int("height")
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", width, height)
	}

	sc, err := loadScene(ctx.String("scene"))
	if err != nil {
		return err
	}
	if err := sc.Validate(); err != nil {
		return err
	}
	logger.Noticef("rendering scene %q (%d primitives) at %dx%d with %d samples per pixel [%s]",
		sc.Name, sc.PrimitiveCount(), width, height, config.SamplesPerPixel, mode)

	opts := []renderer.Option{renderer.WithProgress(newLogProgress(5))}
	if mode == renderer.GPU {
		opts = append(opts, renderer.WithGPUBackend(renderer.NewEmulatedBackend(sc, config)))
	}

	tex := texture.New(width, height)
	stats, err := renderer.NewRaytracer(sc, config, opts...).Render(tex, config.SamplesPerPixel, mode)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if err := texture.SavePNG(out, tex); err != nil {
		return err
	}
	logger.Noticef("saved frame to %s", out)

	displayFrameStats(stats)
	return nil
}

func formatFrameStats(stats renderer.RenderStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Mode", "Resolution", "Samples/pixel", "Workers", "Seed", "Samples/sec"})

	workers := fmt.Sprintf("%d", stats.Workers)
	seed := fmt.Sprintf("%d", stats.Seed)
	if stats.Mode == renderer.GPU {
		workers = stats.Backend
		seed = "-"
	}
	table.Append([]string{
		stats.Mode.String(),
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d", stats.SamplesPerPixel),
		workers,
		seed,
		fmt.Sprintf("%.0f", stats.SamplesPerSecond()),
	})
	table.SetFooter([]string{"", "", "", "", "TOTAL", stats.Elapsed.String()})

	table.Render()
	return buf.String()
}

func displayFrameStats(stats renderer.RenderStats) {
	logger.Noticef("frame statistics\n%s", formatFrameStats(stats))
}
