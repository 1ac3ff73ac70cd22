package cmd

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a still image.
func Render(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := buildConfig(ctx)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if ctx.Bool("watch") {
		return watchAndRender(runCtx, cfg)
	}

	_, err = renderOnce(runCtx, cfg)
	return err
}

// buildConfig layers the defaults, the optional --config file, the command line flags and
// the scene argument, in that order. Zero valued flags leave the underlying value alone,
// except --depth and --seed where zero is a meaningful setting.
func buildConfig(ctx *cli.Context) (config.RenderConfig, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.RenderConfig{}, err
		}
		cfg = loaded
	}

	override := config.RenderConfig{
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		MaxDepth:        ctx.Int("depth"),
		Seed:            ctx.Int64("seed"),
		Workers:         ctx.Int("workers"),
		Scene:           ctx.String("scene"),
		Output:          ctx.String("out"),
	}
	if ctx.NArg() > 0 {
		override.Scene = ctx.Args().First()
	}

	cfg = config.Merge(cfg, override)
	if ctx.IsSet("depth") {
		cfg.MaxDepth = ctx.Int("depth")
	}
	if ctx.IsSet("seed") {
		cfg.Seed = ctx.Int64("seed")
	}
	if err := cfg.Validate(); err != nil {
		return config.RenderConfig{}, err
	}
	return cfg, nil
}

// renderOnce renders cfg and writes the image. It returns the path written.
func renderOnce(ctx context.Context, cfg config.RenderConfig) (string, error) {
	sampling := cfg.Sampling()
	sc, err := scene.Create(cfg.Scene, sampling.AspectRatio())
	if err != nil {
		return "", err
	}

	rt := renderer.NewRaytracer(sc, sampling)
	rt.OnProgress(progressLogger())

	img, stats, err := rt.Render(ctx)
	if err != nil {
		return "", err
	}

	path := cfg.Output
	if path == "" {
		path = output.DefaultPath(sceneSlug(cfg.Scene), time.Now())
	}
	written, err := output.Save(path, img)
	if err != nil {
		return "", err
	}

	logger.Noticef("render statistics\n%s", renderStatsTable(sc, img, stats))
	logger.Noticef("wrote %s", written)
	return written, nil
}

// progressLogger returns a row callback that logs every finished tenth of the image once
func progressLogger() func(renderer.RowProgress) {
	var reported atomic.Int64
	return func(p renderer.RowProgress) {
		decile := int64(p.Fraction() * 10)
		for {
			prev := reported.Load()
			if decile <= prev {
				return
			}
			if reported.CompareAndSwap(prev, decile) {
				logger.Infof("%3d%% (%d/%d rows)", decile*10, p.RowsDone, p.TotalRows)
				return
			}
		}
	}
}

// sceneSlug turns a scene ID into a directory name
func sceneSlug(id string) string {
	if scene.IsSceneFile(id) {
		base := filepath.Base(id)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return id
}

// renderStatsTable formats a finished render as a table
func renderStatsTable(sc *scene.Scene, img image.Image, stats renderer.RenderStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Spheres", "Resolution", "Workers", "Samples", "Samples/pixel", "Samples/s", "Avg luminance", "Render time"})
	table.Append([]string{
		sc.Name,
		fmt.Sprintf("%d", sc.GetPrimitiveCount()),
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%.1f", stats.AverageSamples),
		fmt.Sprintf("%.0f", stats.SamplesPerSecond()),
		fmt.Sprintf("%.3f", renderer.CalculateAverageLuminance(img)),
		stats.RenderTime.Round(time.Millisecond).String(),
	})
	table.SetFooter([]string{"", "", "", "", "", "", "", "TOTAL", stats.RenderTime.Round(time.Millisecond).String()})

	table.Render()
	return buf.String()
}
