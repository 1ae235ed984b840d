package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/texture"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

var ErrImagesDiffer = errors.New("images differ more than the tolerance")

func formatComparison(cmp texture.Comparison) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Channel", "Mean abs diff", "Max abs diff"})
	for ch, name := range []string{"R", "G", "B"} {
		table.Append([]string{
			name,
			fmt.Sprintf("%.3f", cmp.MeanAbs[ch]),
			fmt.Sprintf("%d", cmp.MaxAbs[ch]),
		})
	}
	table.SetFooter([]string{"ALL", fmt.Sprintf("%.3f", cmp.Mean()), ""})
	table.Render()
	return buf.String()
}

// Compare two rendered images channel by channel.
func CompareImages(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 2 {
		return errors.New("expected two image file arguments")
	}

	a, err := loaders.LoadTexture(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	b, err := loaders.LoadTexture(ctx.Args().Get(1))
	if err != nil {
		return err
	}

	cmp, err := texture.Compare(a, b)
	if err != nil {
		return err
	}
	fmt.Fprint(ctx.App.Writer, formatComparison(cmp))

	if tolerance := ctx.Float64("tolerance"); tolerance >= 0 && cmp.Mean() > tolerance {
		return fmt.Errorf("%w: mean %.3f > %.3f", ErrImagesDiffer, cmp.Mean(), tolerance)
	}
	return nil
}
