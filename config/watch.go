package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file on change and hands the validated result
// to a callback. The daemon applies updates between batches, never mid-run.
type Watcher struct {
	Path string
	// Cooldown suppresses the editor double-write bursts fsnotify reports.
	Cooldown time.Duration
}

// Start blocks until ctx is done, invoking onUpdate for every valid reload.
// Reloads that fail to parse or validate are skipped; the previous config
// stays in effect.
func (w Watcher) Start(ctx context.Context, onUpdate func(AppConfig)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors replace files, which breaks a direct
	// file watch.
	if err := watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}

	cooldown := w.Cooldown
	if cooldown <= 0 {
		cooldown = time.Second
	}
	var lastReload time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.Path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if time.Since(lastReload) < cooldown {
				continue
			}
			cfg, err := LoadWithEnvOverrides(w.Path)
			if err != nil {
				continue
			}
			lastReload = time.Now()
			if onUpdate != nil {
				onUpdate(cfg)
			}
		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}
