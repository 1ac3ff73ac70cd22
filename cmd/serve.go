package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"

	"github.com/df07/go-pathtracer/web/server"
	"github.com/urfave/cli"
)

// Serve runs the preview server until interrupted.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := server.NewServer(ctx.Int("port"), ctx.String("dir")).Start(runCtx)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
