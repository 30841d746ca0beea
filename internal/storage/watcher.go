package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"kintai/internal/logging"
	"kintai/internal/ui/preferences"
)

var log = logging.L("storage")

const reloadDebounce = 100 * time.Millisecond

// Watch reloads the settings file whenever it changes on disk and passes the
// result to onChange. It blocks until ctx is done.
// The parent directory is watched so editors that replace the file by
// rename are picked up.
func Watch(ctx context.Context, path string, onChange func(preferences.Settings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
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
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, func() {
				settings, err := LoadSettings(path)
				if err != nil {
					log.Warn("reload settings failed", logging.KeyError, err)
					return
				}
				log.Info("settings reloaded", "path", path)
				onChange(settings)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("settings watcher error", logging.KeyError, err)
		}
	}
}
