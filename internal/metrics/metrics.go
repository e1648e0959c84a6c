// Package metrics exposes Prometheus instrumentation for repositories and RPCs.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mmynk/flouze/internal/storage"
)

const namespace = "flouze"

// Result label values for repository operations.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Metrics holds the collectors registered for one process.
type Metrics struct {
	repoOps      *prometheus.CounterVec
	repoDuration *prometheus.HistogramVec
	rpcs         *prometheus.CounterVec
	rpcDuration  *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		repoOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "repository",
			Name:      "operations_total",
			Help:      "Repository operations by operation and result.",
		}, []string{"op", "result"}),
		repoDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "repository",
			Name:      "operation_duration_seconds",
			Help:      "Repository operation latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"op"}),
		rpcs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "RPCs by procedure and Connect code.",
		}, []string{"procedure", "code"}),
		rpcDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "duration_seconds",
			Help:      "RPC latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
	}
}

// ObserveRPC records one completed RPC. code is "ok" or a Connect code name.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	m.rpcs.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(d.Seconds())
}

func (m *Metrics) observeRepo(op string, start time.Time, err error) {
	m.repoDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	m.repoOps.WithLabelValues(op, result(err)).Inc()
}

func result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, storage.ErrNoSuchAccount), errors.Is(err, storage.ErrNoSuchTransaction):
		return ResultNotFound
	default:
		return ResultError
	}
}
