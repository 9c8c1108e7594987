package middleware

import (
	"time"

	"chaton2api-go/internal/monitoring"
)

// RecordImageIngest counts one image part by kind (data_uri, url) and outcome.
func RecordImageIngest(kind, outcome string) {
	monitoring.ImagesIngestedTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordImageStore tracks one image store operation.
func RecordImageStore(backend, operation string, dur time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	monitoring.ImageStoreOperationsTotal.WithLabelValues(backend, operation, outcome).Inc()
	monitoring.ImageStoreDuration.WithLabelValues(backend, operation).Observe(dur.Seconds())
}

// RecordImageGeneration tracks the image generation pipeline per stage.
func RecordImageGeneration(stage string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	monitoring.ImageGenerationsTotal.WithLabelValues(stage, outcome).Inc()
}

// RecordSigner tracks credential signing attempts.
func RecordSigner(signer string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	monitoring.SignerRequestsTotal.WithLabelValues(signer, outcome).Inc()
}
