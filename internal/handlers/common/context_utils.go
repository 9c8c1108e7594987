package common

import (
	"context"
	"time"

	"chaton2api-go/internal/constants"
)

// WithUpstreamTimeout bounds a whole upstream exchange. A positive override wins.
func WithUpstreamTimeout(parent context.Context, stream bool, override time.Duration) (context.Context, context.CancelFunc) {
	timeout := constants.UpstreamGenerateTimeout
	if stream {
		timeout = constants.UpstreamStreamTimeout
	}
	if override > 0 {
		timeout = override
	}
	return context.WithTimeout(parent, timeout)
}
