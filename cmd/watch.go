package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/fsnotify/fsnotify"
)

// Editors often write a file in several steps; wait this long after the last event.
const watchDebounce = 100 * time.Millisecond

var errWatchNeedsFile = errors.New("watch: scene must be a scene file")

// watchAndRender renders cfg, then renders again every time the scene file changes until
// ctx is cancelled. Render errors are logged and do not stop the loop.
func watchAndRender(ctx context.Context, cfg config.RenderConfig) error {
	if !scene.IsSceneFile(cfg.Scene) {
		return fmt.Errorf("%w: %q", errWatchNeedsFile, cfg.Scene)
	}
	return watchFile(ctx, cfg.Scene, func() {
		if _, err := renderOnce(ctx, cfg); err != nil && ctx.Err() == nil {
			logger.Errorf("render failed: %v", err)
		}
	})
}

// watchFile calls fn once, then again after every debounced write to path. The parent
// directory is watched so files replaced by rename are still picked up.
func watchFile(ctx context.Context, path string, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	fn()
	logger.Noticef("watching %s for changes (Ctrl-C to stop)", target)

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				debounce = time.After(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warningf("watcher: %v", err)
		case <-debounce:
			debounce = nil
			logger.Noticef("%s changed, rendering again", target)
			fn()
		}
	}
}
