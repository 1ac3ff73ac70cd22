package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes prints the built-in scenes and the scene files found in --dir.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	infos := scene.List()
	files, err := scene.ListSceneFiles(ctx.String("dir"))
	if err != nil {
		return err
	}
	infos = append(infos, files...)

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Type", "Description"})
	for _, info := range infos {
		table.Append([]string{info.ID, info.Name, info.Type, info.Description})
	}
	table.Render()

	logger.Infof("%d built-in scenes, %d scene files", len(infos)-len(files), len(files))
	return nil
}

// DumpScene writes a scene as a YAML or TOML scene file that loads back into the same scene.
func DumpScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene argument")
	}

	sc, err := scene.Create(ctx.Args().First(), 16.0/9.0)
	if err != nil {
		return err
	}
	desc := scene.Describe(sc)

	switch format := strings.ToLower(ctx.String("format")); format {
	case "", "yaml", "yml":
		return loaders.EncodeYAML(ctx.App.Writer, desc)
	case "toml":
		return loaders.EncodeTOML(ctx.App.Writer, desc)
	default:
		return fmt.Errorf("%q: %w", format, loaders.ErrUnsupportedFormat)
	}
}
