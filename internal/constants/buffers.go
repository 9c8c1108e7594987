package constants

const (
	// SSEScannerInitialBufferSize defines the initial buffer for SSE scanners (64KB).
	SSEScannerInitialBufferSize = 64 * 1024
	// SSEScannerMaxBufferSize defines the max buffer size for SSE scanners (4MB).
	SSEScannerMaxBufferSize = 4 * 1024 * 1024
	// MaxRequestBodyBytes caps inbound JSON bodies; inline images make them large.
	MaxRequestBodyBytes = 64 * 1024 * 1024
	// MaxImageDownloadBytes caps a generated image download.
	MaxImageDownloadBytes = 32 * 1024 * 1024
	// MaxUpstreamErrorBody caps how much of a failed upstream body is logged.
	MaxUpstreamErrorBody = 2048
)
