package main

import (
	"net/http"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/flouze/internal/metrics"
	"github.com/mmynk/flouze/internal/middleware"
	"github.com/mmynk/flouze/internal/service"
)

// newRouter mounts the ledger service, the health check and, when m is
// non-nil, the Prometheus endpoint gathering from reg.
func newRouter(svc *service.LedgerService, m *metrics.Metrics, reg *prometheus.Registry) http.Handler {
	interceptors := []connect.Interceptor{middleware.LoggingInterceptor()}
	if m != nil {
		interceptors = append(interceptors, middleware.MetricsInterceptor(m))
	}
	path, handler := service.NewLedgerServiceHandler(svc, connect.WithInterceptors(interceptors...))

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Mount(path, handler)

	if m != nil {
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
