package main

import (
	"crypto/rand"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/flouze/internal/config"
	"github.com/mmynk/flouze/internal/metrics"
	"github.com/mmynk/flouze/internal/models"
	"github.com/mmynk/flouze/internal/service"
	"github.com/mmynk/flouze/internal/storage/backends"
	"github.com/mmynk/flouze/pkg/logging"
)

func main() {
	configPath := flag.String("config", os.Getenv("FLOUZE_CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logging.Configure(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	repo, err := backends.Open(cfg.Storage)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}()
	slog.Info("Storage initialized", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)

	var (
		m   *metrics.Metrics
		reg *prometheus.Registry
	)
	if cfg.Server.Metrics {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m = metrics.New(reg)
		repo = m.Repository(repo)
	}

	svc := service.NewLedgerService(repo, models.NewGenerator(rand.Reader))
	router := newRouter(svc, m, reg)

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		slog.Info("Shutting down server")
		if err := server.Close(); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	slog.Info("Connect server starting", "address", cfg.Server.Addr, "metrics", cfg.Server.Metrics)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
