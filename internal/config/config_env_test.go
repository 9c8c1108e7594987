package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"9090\"\n"), 0o644))

	t.Setenv("CHATON_SERVER_PORT", "7070")
	t.Setenv("CHATON_STORAGE_BACKEND", "redis")
	t.Setenv("CHATON_STORAGE_REDIS_ADDR", "localhost:6380")
	t.Setenv("CHATON_STORAGE_REDIS_DB", "3")
	t.Setenv("CHATON_LOG_DEBUG", "true")
	t.Setenv("CHATON_SIGNER_COMMAND", "node sign.js")

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)
	require.Equal(t, "7070", cfg.Server.Port)
	require.Equal(t, "redis", cfg.Storage.Backend)
	require.Equal(t, "localhost:6380", cfg.Storage.RedisAddr)
	require.Equal(t, 3, cfg.Storage.RedisDB)
	require.True(t, cfg.Logging.Debug)
	require.Equal(t, "node sign.js", cfg.Signer.Command)
	require.NoError(t, cfg.Validate())
}

func TestEnvRejectsBadInteger(t *testing.T) {
	t.Setenv("CHATON_UPSTREAM_STREAM_TIMEOUT_SEC", "soon")
	_, err := Load()
	require.Error(t, err)
}
