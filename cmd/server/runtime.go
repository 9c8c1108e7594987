package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"chaton2api-go/internal/config"
	"chaton2api-go/internal/constants"
	srv "chaton2api-go/internal/server"
	"chaton2api-go/internal/signer"
	"chaton2api-go/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"
)

type runtime struct {
	engine *gin.Engine
	store  storage.ImageStore
}

// buildRuntime opens the image store, prepares the signer and assembles the engine.
func buildRuntime(ctx context.Context, cfg *config.Config) (*runtime, error) {
	store, err := storage.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("image store: %w", err)
	}
	sign, err := signer.New(cfg.Signer)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("signer: %w", err)
	}
	log.WithFields(log.Fields{
		"signer":   cfg.Signer.Mode,
		"upstream": cfg.Upstream.ChatURL,
		"images":   cfg.ImageBaseURL(),
	}).Info("runtime ready")

	engine := srv.BuildEngine(cfg, srv.Dependencies{
		Store:     store,
		Signer:    sign,
		ImageLock: &sync.Mutex{},
	})
	return &runtime{engine: engine, store: store}, nil
}

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: constants.ServerReadHeaderTimeout,
		ReadTimeout:       constants.ServerReadTimeout,
		IdleTimeout:       constants.ServerIdleTimeout,
	}
}

// shutdown stops the server first, then releases the store and the tracer.
func shutdown(ctx context.Context, s *http.Server, store storage.ImageStore, traceShutdown func(context.Context) error) error {
	var result *multierror.Error
	if s != nil {
		if err := s.Shutdown(ctx); err != nil {
			result = multierror.Append(result, fmt.Errorf("http server: %w", err))
		}
	}
	if store != nil {
		if err := store.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("image store: %w", err))
		}
	}
	if traceShutdown != nil {
		if err := traceShutdown(ctx); err != nil {
			result = multierror.Append(result, fmt.Errorf("tracing: %w", err))
		}
	}
	return result.ErrorOrNil()
}
