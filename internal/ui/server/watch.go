package server

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce batches the burst of events editors emit on save.
const reloadDebounce = 250 * time.Millisecond

// watchFiles reloads the site whenever a template or the content file changes, until ctx
// is cancelled. A failed reload is logged and the previous snapshot keeps serving.
func (s *server) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dirs := []string{s.templatesDir}
	if contentDir := filepath.Dir(s.contentFile); contentDir != s.templatesDir {
		dirs = append(dirs, contentDir)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	s.logger.Info(logCategory, "watching for changes", map[string]any{"dirs": dirs})

	timer := time.NewTimer(reloadDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.relevant(event) {
				continue
			}
			s.logger.Debug(logCategory, "file changed", map[string]any{
				"path": event.Name,
				"op":   event.Op.String(),
			})
			timer.Reset(reloadDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error(logCategory, "watcher error", err, nil)

		case <-timer.C:
			if err := s.reload(); err != nil {
				s.logger.Error(logCategory, "reload failed; serving previous version", err, nil)
				continue
			}
			snap := s.snapshot()
			s.logger.Info(logCategory, "site reloaded", map[string]any{"reloads": snap.reloadCount})
			s.reportContract(snap)
		}
	}
}

func (s *server) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	name := filepath.Clean(event.Name)
	if name == s.contentFile {
		return true
	}
	return filepath.Dir(name) == s.templatesDir && strings.HasSuffix(name, ".tmpl")
}
