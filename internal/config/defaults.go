package config

import (
	"chaton2api-go/internal/constants"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
		},
		Upstream: UpstreamConfig{
			ChatURL:                  constants.UpstreamChatURL,
			StorageTemplate:          constants.UpstreamStorageTemplate,
			StoragePrefix:            constants.UpstreamStoragePrefix,
			DialTimeoutSec:           int(constants.DefaultDialTimeout.Seconds()),
			TLSHandshakeTimeoutSec:   int(constants.DefaultTLSHandshakeTimeout.Seconds()),
			ResponseHeaderTimeoutSec: int(constants.DefaultResponseHeaderTimeout.Seconds()),
			StreamTimeoutSec:         int(constants.UpstreamStreamTimeout.Seconds()),
			LookupTimeoutSec:         int(constants.StorageLookupTimeout.Seconds()),
			DownloadTimeoutSec:       int(constants.ImageDownloadTimeout.Seconds()),
		},
		Images: ImagesConfig{
			Dir: "images",
		},
		Storage: StorageConfig{
			Backend:     "file",
			RedisPrefix: "chaton2api:",
			SQLitePath:  "data/images.db",
		},
		Signer: SignerConfig{
			Mode:       "exec",
			TimeoutSec: int(constants.SignerTimeout.Seconds()),
		},
	}
}
