package constants

import "time"

const (
	// UpstreamStreamTimeout bounds a whole chat exchange with the vendor, stream included.
	UpstreamStreamTimeout = 10 * time.Minute
	// UpstreamGenerateTimeout bounds the image generation chat exchange.
	UpstreamGenerateTimeout = 3 * time.Minute
	// StorageLookupTimeout bounds the getUrl resolution call.
	StorageLookupTimeout = 10 * time.Second
	// ImageDownloadTimeout bounds fetching generated image bytes.
	ImageDownloadTimeout = 30 * time.Second
	// SignerTimeout bounds one run of the external signing helper.
	SignerTimeout = 15 * time.Second
	// ServerShutdownTimeout bounds graceful HTTP server shutdown.
	ServerShutdownTimeout = 30 * time.Second
	// ConfigReloadDebounce coalesces bursts of file system events.
	ConfigReloadDebounce = 100 * time.Millisecond
	// ConfigPollInterval is used when fsnotify is unavailable.
	ConfigPollInterval = 5 * time.Second
)
