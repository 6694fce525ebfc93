package settings

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce groups the bursts of events a single save produces
const watchDebounce = 50 * time.Millisecond

// Watch reloads store and ctrl whenever the settings file changes on disk,
// e.g. when another instance saves a preference, then calls fn with the
// reloaded settings. It blocks until ctx is done.
//
// The directory is watched rather than the file, since saves replace the
// file by rename.
func Watch(ctx context.Context, store *FileStore, ctrl *Controller, logger *slog.Logger, fn func(Settings)) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create settings watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(store.Path())
	name := filepath.Base(store.Path())
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.AfterFunc(watchDebounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(watchDebounce)
			}

		case <-fire:
			if err := store.Reload(); err != nil {
				logger.Warn("failed to reload settings", "error", err)
				continue
			}
			s := ctrl.Load()
			logger.Debug("settings reloaded", "path", store.Path())
			if fn != nil {
				fn(s)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("settings watcher error", "error", err)
		}
	}
}
