package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/msto63/kairos/pkg/core/logging"
)

// ReloadFunc receives the freshly loaded configuration, or the load error
type ReloadFunc func(cfg *Config, err error)

const reloadDebounce = 250 * time.Millisecond

// Watch reloads the file at path whenever it changes and hands the result to
// fn. It returns once the watcher is installed; the watch ends with ctx.
func Watch(ctx context.Context, path string, fn ReloadFunc) error {
	path = filepath.Clean(os.ExpandEnv(path))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory: editors replace files via rename
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	logger := logging.New("config")
	logger.Info("Watching config file", "path", path)

	go watchLoop(ctx, watcher, path, fn, logger)
	return nil
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string, fn ReloadFunc, logger *logging.Logger) {
	defer watcher.Close()

	// Reload once the file has been quiet for reloadDebounce
	timer := time.NewTimer(reloadDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Stopping config watcher")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				timer.Reset(reloadDebounce)
			}

		case <-timer.C:
			cfg, err := Load(path)
			if err != nil {
				logger.Warn("Config reload failed", "path", path, "error", err)
			} else {
				logger.Info("Config reloaded", "path", path)
			}
			fn(cfg, err)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Error("Watcher error", "error", err)
		}
	}
}
