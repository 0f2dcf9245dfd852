package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/goliatone/go-postformat/internal/config"
	"github.com/goliatone/go-postformat/internal/logging"
	"github.com/goliatone/go-postformat/pkg/contenttype"
	"github.com/goliatone/go-postformat/pkg/httpapi"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	addr := flag.String("addr", "", "listen address override")
	basePath := flag.String("base-path", "", "API mount path override")
	registryPath := flag.String("registry", "", "extra content-type definitions (file or directory)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *basePath != "" {
		cfg.Server.BasePath = *basePath
	}
	if *registryPath != "" {
		cfg.Registry.Path = *registryPath
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	registry, err := contenttype.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		logger.Fatal("load content types", zap.Error(err))
	}

	component, err := httpapi.New(
		httpapi.WithRegistry(registry),
		httpapi.WithMaxMediaBytes(cfg.Media.MaxBytes),
		httpapi.WithAllowedOrigins(cfg.Server.AllowedOrigins),
		httpapi.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal("init api", zap.Error(err))
	}

	router := chi.NewRouter()
	mount, err := component.RegisterRoutes(router, cfg.Server.BasePath)
	if err != nil {
		logger.Fatal("register routes", zap.Error(err))
	}
	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("serving postformat api",
			zap.String("addr", cfg.Server.Addr),
			zap.String("mount", mount),
			zap.Strings("contentTypes", registry.IDs()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
