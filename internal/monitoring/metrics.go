package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var latencyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60}

var (
	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaton2api_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_class"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chaton2api_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: latencyBuckets,
		},
		[]string{"method", "path", "status_class"},
	)

	// HTTP 并发请求数
	HTTPInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chaton2api_http_inflight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// 上游API调用指标
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaton2api_upstream_requests_total",
			Help: "Total number of upstream API requests",
		},
		[]string{"endpoint", "status_class"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chaton2api_upstream_request_duration_seconds",
			Help:    "Upstream time to response headers in seconds",
			Buckets: latencyBuckets,
		},
		[]string{"endpoint"},
	)

	UpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaton2api_upstream_errors_total",
			Help: "Total number of upstream errors by reason",
		},
		[]string{"endpoint", "reason"},
	)

	// 流式传输指标
	SSEFramesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaton2api_sse_frames_total",
			Help: "Total number of SSE frames written to clients",
		},
		[]string{"path"},
	)

	SSEDisconnectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaton2api_sse_disconnects_total",
			Help: "Total number of SSE stream endings by reason",
		},
		[]string{"path", "reason"},
	)

	StreamSkippedLinesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaton2api_stream_skipped_lines_total",
			Help: "Upstream event lines dropped by the stream translator",
		},
		[]string{"reason"},
	)

	// 图片相关指标
	ImagesIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaton2api_images_ingested_total",
			Help: "Inline and external images seen in chat messages",
		},
		[]string{"kind", "outcome"},
	)

	ImageStoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaton2api_image_store_operations_total",
			Help: "Image store operations by backend and outcome",
		},
		[]string{"backend", "operation", "outcome"},
	)

	ImageStoreDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chaton2api_image_store_duration_seconds",
			Help:    "Image store operation latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	ImageGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaton2api_image_generations_total",
			Help: "Image generation pipeline results by stage",
		},
		[]string{"stage", "outcome"},
	)

	// 签名
	SignerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaton2api_signer_requests_total",
			Help: "Credential signing attempts by signer and outcome",
		},
		[]string{"signer", "outcome"},
	)
)
