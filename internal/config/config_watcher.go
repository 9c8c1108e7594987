package config

import (
	"os"
	"path/filepath"
	"time"

	"chaton2api-go/internal/constants"
	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

func (cm *Manager) startWatcher() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.WithError(err).Warn("failed to create file watcher, falling back to polling")
		cm.startPollingWatcher()
		return
	}

	// Watch the directory so atomic renames are seen too.
	configDir := filepath.Dir(cm.configPath)
	if err := watcher.Add(configDir); err != nil {
		log.WithError(err).WithField("dir", configDir).Warn("failed to watch config directory, falling back to polling")
		watcher.Close()
		cm.startPollingWatcher()
		return
	}

	log.WithField("path", cm.configPath).Info("file watcher started using fsnotify")
	target := filepath.Clean(cm.configPath)

	go func() {
		defer watcher.Close()

		var debounceTimer *time.Timer
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(constants.ConfigReloadDebounce, cm.checkAndReload)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("file watcher error")

			case <-cm.stopCh:
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				return
			}
		}
	}()
}

// startPollingWatcher is a fallback when fsnotify is not available
func (cm *Manager) startPollingWatcher() {
	ticker := time.NewTicker(constants.ConfigPollInterval)
	log.WithField("interval", constants.ConfigPollInterval.String()).Info("file watcher started using polling")

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cm.checkAndReload()
			case <-cm.stopCh:
				return
			}
		}
	}()
}

func (cm *Manager) checkAndReload() {
	mod := modTime(cm.configPath)
	if mod.IsZero() {
		return
	}
	cm.mu.RLock()
	last := cm.lastMod
	cm.mu.RUnlock()
	if !mod.After(last) {
		return
	}
	if err := cm.Reload(); err != nil {
		log.WithError(err).WithField("path", cm.configPath).Warn("failed to reload config")
	}
}

func modTime(path string) time.Time {
	if path == "" {
		return time.Time{}
	}
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
