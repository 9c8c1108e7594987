package server

import (
	"sync"
	"time"

	"chaton2api-go/internal/config"
	oh "chaton2api-go/internal/handlers/openai"
	"chaton2api-go/internal/imagegen"
	"chaton2api-go/internal/images"
	mw "chaton2api-go/internal/middleware"
	"chaton2api-go/internal/signer"
	"chaton2api-go/internal/storage"
	"chaton2api-go/internal/translator"
	"chaton2api-go/internal/upstream"
	"chaton2api-go/internal/upstream/chaton"
	"github.com/gin-gonic/gin"
)

// Dependencies encapsulates runtime services required to build the HTTP engine.
type Dependencies struct {
	Store  storage.ImageStore
	Signer signer.Signer
	// Client overrides the vendor client built from config.
	Client *chaton.Client
	// ImageLock serializes inline image writes; nil creates one.
	ImageLock *sync.Mutex
}

// BuildHandler wires the translation pipeline into an OpenAI handler set.
func BuildHandler(cfg *config.Config, deps Dependencies) *oh.Handler {
	client := deps.Client
	if client == nil {
		client = chaton.New(cfg.Upstream)
	}
	lock := deps.ImageLock
	if lock == nil {
		lock = &sync.Mutex{}
	}
	ingestor := images.NewIngestor(deps.Store, cfg.ImageBaseURL(), lock)
	resolver := imagegen.NewResolver(client, imagegen.Options{
		StorageTemplate: cfg.Upstream.StorageTemplate,
		StoragePrefix:   cfg.Upstream.StoragePrefix,
		LookupTimeout:   seconds(cfg.Upstream.LookupTimeoutSec),
		DownloadTimeout: seconds(cfg.Upstream.DownloadTimeoutSec),
	})
	return oh.New(oh.Deps{
		Config:     cfg,
		Normalizer: translator.NewNormalizer(ingestor),
		Builder:    upstream.NewBuilder(deps.Signer),
		Client:     client,
		Resolver:   resolver,
		Store:      deps.Store,
	})
}

// BuildEngine constructs the gin engine serving the OpenAI-compatible API.
func BuildEngine(cfg *config.Config, deps Dependencies) *gin.Engine {
	engine := gin.New()
	applyStandardEngineSettings(engine, cfg)

	handler := BuildHandler(cfg, deps)
	RegisterOpenAIRoutes(&engine.RouterGroup, handler)

	engine.GET("/healthz", healthHandler(deps.Store))
	engine.GET("/metrics", mw.MetricsHandler)
	return engine
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
