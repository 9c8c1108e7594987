package config

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Manager keeps the live configuration and reloads it when the file changes.
type Manager struct {
	mu         sync.RWMutex
	config     *Config
	configPath string
	stopCh     chan struct{}
	stopOnce   sync.Once
	onChange   []func(*Config)
	lastMod    time.Time
}

// NewManager loads the configuration at path and starts watching it.
func NewManager(path string) (*Manager, error) {
	cfg, err := LoadWithFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateAndExpandPaths(); err != nil {
		return nil, err
	}
	cm := &Manager{
		config:     cfg,
		configPath: path,
		stopCh:     make(chan struct{}),
	}
	cm.lastMod = modTime(path)
	if path != "" && !cm.lastMod.IsZero() {
		cm.startWatcher()
	}
	return cm, nil
}

// OnChange registers a callback for configuration changes
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.onChange = append(cm.onChange, fn)
}

// Current returns a copy of the active configuration.
func (cm *Manager) Current() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config.Clone()
}

// Close stops the watcher.
func (cm *Manager) Close() {
	cm.stopOnce.Do(func() { close(cm.stopCh) })
}

// Reload re-reads the file. An invalid file leaves the active configuration untouched.
func (cm *Manager) Reload() error {
	next, err := LoadWithFile(cm.configPath)
	if err != nil {
		return err
	}
	if err := next.ValidateAndExpandPaths(); err != nil {
		return err
	}

	cm.mu.Lock()
	old := cm.config
	cm.config = next
	cm.lastMod = modTime(cm.configPath)
	callbacks := make([]func(*Config), len(cm.onChange))
	copy(callbacks, cm.onChange)
	cm.mu.Unlock()

	logConfigChanges(old, next)
	for _, fn := range callbacks {
		fn(next.Clone())
	}
	return nil
}

func logConfigChanges(old, new *Config) {
	if old == nil || new == nil {
		return
	}
	if old.Logging.Debug != new.Logging.Debug {
		log.WithFields(log.Fields{"field": "logging.debug", "old": old.Logging.Debug, "new": new.Logging.Debug}).Info("config changed")
	}
	if old.Logging.File != new.Logging.File {
		log.WithFields(log.Fields{"field": "logging.file", "old": old.Logging.File, "new": new.Logging.File}).Info("config changed")
	}
	if old.Server.Port != new.Server.Port {
		// 端口变更需要重启进程
		log.WithFields(log.Fields{"field": "server.port", "old": old.Server.Port, "new": new.Server.Port}).Warn("config changed, restart required")
	}
	if old.Storage.Backend != new.Storage.Backend {
		log.WithFields(log.Fields{"field": "storage.backend", "old": old.Storage.Backend, "new": new.Storage.Backend}).Warn("config changed, restart required")
	}
}
