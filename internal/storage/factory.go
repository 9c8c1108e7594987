package storage

import (
	"context"
	"fmt"
	"strings"

	"chaton2api-go/internal/config"
	log "github.com/sirupsen/logrus"
)

// New builds, initializes and instruments the configured image store.
func New(ctx context.Context, cfg *config.Config) (ImageStore, error) {
	var store ImageStore
	backend := strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	switch backend {
	case "", "file":
		backend = "file"
		store = NewFileStore(cfg.Images.Dir)
	case "redis":
		store = NewRedisStore(cfg.Storage.RedisAddr, cfg.Storage.RedisPassword, cfg.Storage.RedisDB, cfg.Storage.RedisPrefix)
	case "sqlite":
		store = NewSQLiteStore(cfg.Storage.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
	if err := store.Initialize(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("initialize %s image store: %w", backend, err)
	}
	log.WithField("backend", backend).Info("image store ready")
	return WithInstrumentation(store, backend), nil
}
