// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"pharmalite/internal/catalog"
	"pharmalite/internal/config"
	"pharmalite/internal/directory"
	"pharmalite/internal/identity"
	"pharmalite/internal/purchase"
	"pharmalite/internal/telemetry"
	"pharmalite/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.Telemetry.OTLPEndpoint, "pharmalite")
	if err != nil {
		baseLogger.Fatal("failed to set up tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			baseLogger.Error("failed to shut down tracing", zap.Error(err))
		}
	}()

	// Every registry is constructed here once and passed by reference; no
	// package holds hidden global state.
	catalogSvc := catalog.NewService(logger.Named(baseLogger, "catalog"))
	directorySvc := directory.NewService(logger.Named(baseLogger, "directory"))
	identitySvc := identity.NewService(logger.Named(baseLogger, "identity"), rate.Every(cfg.Login.Every), cfg.Login.Burst)
	purchaseSvc := purchase.NewService(catalogSvc, logger.Named(baseLogger, "purchase"))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Mount("/catalog", catalog.NewHandler(catalogSvc).Routes())
		r.Mount("/directory", directory.NewHandler(directorySvc).Routes())
		r.Mount("/employees", identity.NewHandler(identitySvc).Routes())
		r.Mount("/purchases", purchase.NewHandler(purchaseSvc).Routes())
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
