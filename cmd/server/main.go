package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	httpapi "primelab/internal/http"
	"primelab/internal/platform/config"
	"primelab/internal/platform/httpserver"
	"primelab/internal/platform/logger"
	"primelab/internal/primality/algorithm"
	"primelab/internal/primality/handler"
	"primelab/internal/primality/metrics"
	"primelab/internal/primality/service"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Engine logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	registry := algorithm.Default()
	svc, err := service.New(registry,
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
		service.WithParallelComparison(cfg.ParallelCompare),
	)
	if err != nil {
		log.Error("service init failed", "error", err)
		os.Exit(1)
	}

	router := httpapi.NewRouter(handler.New(svc, log))
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting primelab",
		"addr", cfg.Addr,
		"tests", registry.IDs(),
		"parallel_compare", cfg.ParallelCompare,
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
