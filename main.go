package main

import (
	"fmt"
	"os"

	"github.com/df07/go-pathtracer/cmd"
	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "pathtracer"
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
		cli.BoolFlag{
			Name:  "quiet, q",
			Usage: "only log warnings and errors",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image file",
			Description: `
Render a built-in scene or a YAML/TOML scene file. Settings are taken from the
defaults, then the --config file, then the flags below; flags left at 0 or empty
keep the value from the layer underneath.

The output format is picked from the file extension (png, jpg, bmp, tiff, ppm).
Without --out the image goes to output/<scene>/render_<timestamp>.png.`,
			ArgsUsage: "[scene]",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Usage: "image width",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "image height",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Usage: "maximum ray bounces",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "sampler seed",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "concurrent row workers (default: one per CPU)",
				},
				cli.StringFlag{
					Name:  "scene, s",
					Usage: "built-in scene ID or scene file",
				},
				cli.StringFlag{
					Name:  "config, c",
					Usage: "TOML render config file",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "image filename for the rendered frame",
				},
				cli.BoolFlag{
					Name:  "watch, w",
					Usage: "render again whenever the scene file changes",
				},
			},
			Action: cmd.Render,
		},
		{
			Name:  "scenes",
			Usage: "list built-in scenes and scene files",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir, d",
					Value: "scenes",
					Usage: "directory to scan for scene files",
				},
			},
			Action: cmd.ListScenes,
		},
		{
			Name:        "dump",
			Usage:       "print a scene as a scene file",
			Description: `Write any scene, built-in or loaded from a file, as YAML or TOML to stdout.`,
			ArgsUsage:   "scene",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "format, f",
					Value: "yaml",
					Usage: "yaml or toml",
				},
			},
			Action: cmd.DumpScene,
		},
		{
			Name:  "serve",
			Usage: "run the preview web server",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Value: 8080,
					Usage: "port to serve on",
				},
				cli.StringFlag{
					Name:  "dir, d",
					Value: "scenes",
					Usage: "directory to serve scene files from",
				},
			},
			Action: cmd.Serve,
		},
	}

	return app
}
