package main

import (
	"fmt"
	"os"

	"github.com/df07/go-pathtracer/cmd"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-pathtracer"
	app.Usage = "render sphere scenes using path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a built-in scene or a JSON scene file and save the frame as a PNG.

The frame can be rendered on the calling goroutine (sequential), on a pool of
workers that split the image into columns (parallel) or through a GPU compute
backend (gpu). Renders with the same non-zero seed are identical across the
sequential and parallel modes.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "mode, m",
					Value: "parallel",
					Usage: "render mode: sequential, parallel or gpu",
				},
				cli.StringFlag{
					Name:  "scene",
					Value: "reference",
					Usage: "built-in scene name or path to a .json scene file",
				},
				cli.IntFlag{
					Name:  "samples, s",
					Value: 128,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 400,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 225,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "max-depth",
					Value: 1024,
					Usage: "maximum number of bounces per path (0 shades only the first hit)",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "worker count for parallel mode (0 uses all CPUs)",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "base random seed (a time based seed when unset)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "render.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:  "list-scenes",
			Usage: "list built-in scenes and JSON scenes in a directory",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir",
					Value: "scenes",
					Usage: "directory to scan for .json scene files",
				},
			},
			Action: cmd.ListScenes,
		},
		{
			Name:      "export-scene",
			Usage:     "write a scene to a JSON file",
			ArgsUsage: "scene_file.json",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene",
					Value: "reference",
					Usage: "built-in scene name or path to a .json scene file",
				},
			},
			Action: cmd.ExportScene,
		},
		{
			Name:      "compare",
			Usage:     "compare two rendered images",
			ArgsUsage: "image1.png image2.png",
			Flags: []cli.Flag{
				cli.Float64Flag{
					Name:  "tolerance",
					Value: -1,
					Usage: "fail when the mean channel difference exceeds this value (negative disables)",
				},
			},
			Action: cmd.CompareImages,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
