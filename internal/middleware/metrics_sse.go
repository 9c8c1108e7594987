package middleware

import (
	"chaton2api-go/internal/monitoring"
)

// RecordSSEFrames adds to the SSE frames counter for a path.
func RecordSSEFrames(path string, n int) {
	if n <= 0 {
		return
	}
	monitoring.SSEFramesTotal.WithLabelValues(path).Add(float64(n))
}

// RecordSSEClose increments an SSE stream-end reason counter for a path.
func RecordSSEClose(path, reason string) {
	if reason == "" {
		reason = "other"
	}
	monitoring.SSEDisconnectsTotal.WithLabelValues(path, reason).Inc()
}

// RecordSkippedLines counts upstream lines the translator dropped.
func RecordSkippedLines(reason string, n int) {
	if n <= 0 {
		return
	}
	monitoring.StreamSkippedLinesTotal.WithLabelValues(reason).Add(float64(n))
}
