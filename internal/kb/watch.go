package kb

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the knowledge file whenever it changes on disk.
// Blocks until ctx is canceled. A reload failure keeps the previous
// snapshot and logs the error; the bot keeps answering from stale data
// rather than degrading to defaults mid-flight.
//
// The parent directory is watched, not the file itself: editors and
// configmap-style mounts replace the file via rename, which drops a
// direct file watch.
func (s *Store) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := s.LoadFile(path); err != nil {
				slog.Error("knowledge file reload failed, keeping previous snapshot", "path", path, "error", err)
				continue
			}
			slog.Info("knowledge file reloaded", "path", path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("knowledge file watcher error", "error", err)
		}
	}
}
