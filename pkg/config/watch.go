package config

import (
	"context"

	"github.com/fsnotify/fsnotify"

	"bliki-feed-api/core/interfaces"
)

// Watch monitors path for changes and calls onChange with the newly loaded
// Config each time the file is written. It runs until ctx is cancelled.
//
// A reload that fails to parse or validate is logged and the previous
// config stays active; onChange is not called for it.
func Watch(ctx context.Context, path string, logger interfaces.Logger, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	logger.Info("Watching configuration for changes", map[string]interface{}{
		"path": path,
	})

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Editors often save via rename, so create counts as a write
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := Load(path)
			if err == nil {
				err = cfg.Validate()
			}
			if err != nil {
				logger.Error("Configuration reload failed, keeping previous config", map[string]interface{}{
					"path":  path,
					"error": err.Error(),
				})
				continue
			}

			logger.Info("Configuration reloaded", map[string]interface{}{
				"path":         path,
				"feed_enabled": cfg.Feed.Enabled,
			})
			onChange(cfg)

			// Re-add the file in case an atomic save replaced the inode
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Configuration watcher error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}
