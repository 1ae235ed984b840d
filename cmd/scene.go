package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

func formatSceneList(infos []scene.SceneInfo) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Name", "Type", "Primitives", "Description"})
	for _, info := range infos {
		table.Append([]string{
			info.ID,
			info.Name,
			info.Type,
			fmt.Sprintf("%d", info.Primitives),
			info.Description,
		})
	}
	table.Render()
	return buf.String()
}

// List built-in scenes and JSON scenes found in the scene directory.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	infos := scene.Describe()
	found, err := scene.ListJSONScenes(ctx.String("dir"))
	if err != nil {
		return err
	}
	infos = append(infos, found...)

	fmt.Fprint(ctx.App.Writer, formatSceneList(infos))
	return nil
}

// Write a built-in scene to a JSON file.
func ExportScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing output file argument")
	}

	sc, err := loadScene(ctx.String("scene"))
	if err != nil {
		return err
	}

	out := ctx.Args().First()
	if err := loaders.SaveScene(out, sc); err != nil {
		return err
	}
	logger.Noticef("wrote scene %q to %s", sc.Name, out)
	return nil
}
