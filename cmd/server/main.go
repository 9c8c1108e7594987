package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"chaton2api-go/internal/config"
	"chaton2api-go/internal/constants"
	"chaton2api-go/internal/logging"
	tracing "chaton2api-go/internal/monitoring/tracing"
	"chaton2api-go/internal/version"
	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	debug := flag.Bool("debug", false, "Enable debug mode")
	flag.Parse()

	cm, err := config.NewManager(*configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	defer cm.Close()

	cfg := cm.Current()
	if *debug {
		cfg.Logging.Debug = true
	}
	if err := logging.Setup(cfg); err != nil {
		log.WithError(err).Fatal("failed to configure logging")
	}
	cm.OnChange(func(next *config.Config) {
		if *debug {
			next.Logging.Debug = true
		}
		// 仅日志配置支持热更新，其余变更需重启
		if err := logging.Setup(next); err != nil {
			log.WithError(err).Warn("failed to reapply logging configuration")
		}
	})

	traceShutdown, err := tracing.Init(context.Background())
	if err != nil {
		log.WithError(err).Warn("failed to initialize tracing")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := buildRuntime(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to build runtime")
	}
	srv := newHTTPServer(cfg.Addr(), rt.engine)

	go func() {
		log.WithFields(log.Fields{"addr": srv.Addr, "version": version.Version}).Info("chaton2api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("http server: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
		log.Info("Shutdown signal received")
	case <-ctx.Done():
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), constants.ServerShutdownTimeout)
	defer cancelShutdown()
	if err := shutdown(shutdownCtx, srv, rt.store, traceShutdown); err != nil {
		log.WithError(err).Warn("shutdown finished with errors")
		return
	}
	log.Info("Server stopped")
}
