package middleware

import (
	"math"
	"time"

	"chaton2api-go/internal/monitoring"
)

// RecordUpstream records upstream request duration and status classification.
func RecordUpstream(endpoint string, dur time.Duration, status int, networkErr bool) {
	cls := statusClass(status)
	if networkErr {
		cls = "network_error"
	}
	durSec := dur.Seconds()
	if math.IsNaN(durSec) || math.IsInf(durSec, 0) {
		durSec = 0
	}
	monitoring.UpstreamRequestsTotal.WithLabelValues(endpoint, cls).Inc()
	monitoring.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(durSec)
}

// RecordUpstreamError increments upstream error by reason
func RecordUpstreamError(endpoint, reason string) {
	if reason == "" {
		reason = "other"
	}
	monitoring.UpstreamErrors.WithLabelValues(endpoint, reason).Inc()
}
