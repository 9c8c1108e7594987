package openai

import (
	"context"
	"net/http"
	"time"

	"chaton2api-go/internal/config"
	"chaton2api-go/internal/imagegen"
	"chaton2api-go/internal/storage"
	"chaton2api-go/internal/translator"
	"chaton2api-go/internal/upstream"
	"chaton2api-go/internal/upstream/chaton"
	log "github.com/sirupsen/logrus"
)

// UpstreamClient opens the vendor event stream for a signed body.
type UpstreamClient interface {
	Stream(ctx context.Context, signed *upstream.SignedRequest) (*http.Response, error)
}

// ImageResolver turns generated markdown into base64 image data.
type ImageResolver interface {
	Resolve(ctx context.Context, text string, logger *log.Entry) (string, error)
}

var (
	_ UpstreamClient = (*chaton.Client)(nil)
	_ ImageResolver  = (*imagegen.Resolver)(nil)
)

// Deps are the shared, process-wide collaborators of the handlers.
type Deps struct {
	Config     *config.Config
	Normalizer *translator.Normalizer
	Builder    *upstream.Builder
	Client     UpstreamClient
	Resolver   ImageResolver
	Store      storage.ImageStore
}

// Handler aggregates shared dependencies for OpenAI-compatible endpoints.
type Handler struct {
	normalizer    *translator.Normalizer
	builder       *upstream.Builder
	client        UpstreamClient
	resolver      ImageResolver
	store         storage.ImageStore
	streamTimeout time.Duration
}

// New constructs a new OpenAI-compatible handler set.
func New(d Deps) *Handler {
	h := &Handler{
		normalizer: d.Normalizer,
		builder:    d.Builder,
		client:     d.Client,
		resolver:   d.Resolver,
		store:      d.Store,
	}
	if d.Config != nil && d.Config.Upstream.StreamTimeoutSec > 0 {
		h.streamTimeout = time.Duration(d.Config.Upstream.StreamTimeoutSec) * time.Second
	}
	return h
}
