package cvstore

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"cv-builder/internal/shared/telemetry"
)

const defaultDebounce = 250 * time.Millisecond

// Loader is the part of the store the watcher drives.
type Loader interface {
	LoadResumeData(ctx context.Context) error
}

// Watch reloads l whenever the data file at path is written, created or renamed into
// place. It watches the parent directory so editors that replace the file are seen.
// Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, l Loader, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	telemetry.Info("cv.watch.start", map[string]any{"path": abs})

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			telemetry.Error("cv.watch.error", map[string]any{"error": err.Error()})
		case <-timer.C:
			telemetry.Info("cv.watch.reload", map[string]any{"path": abs})
			if err := l.LoadResumeData(ctx); err != nil {
				telemetry.Warn("cv.watch.reload_failed", map[string]any{"error": err.Error()})
			}
		}
	}
}
