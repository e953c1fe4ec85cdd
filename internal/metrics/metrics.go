// Package metrics exposes Prometheus counters for turns and backend traffic.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "wikibot"

var durationBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// Metrics owns a private registry so tests and multiple instances do not collide.
type Metrics struct {
	registry *prometheus.Registry

	TurnsTotal          *prometheus.CounterVec
	TurnDuration        prometheus.Histogram
	BackendCallsTotal   *prometheus.CounterVec
	BackendCallDuration *prometheus.HistogramVec
	CandidatesSkipped   *prometheus.CounterVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		TurnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Answered turns by outcome code.",
		}, []string{"outcome"}),
		TurnDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_duration_seconds",
			Help:      "Time to resolve one question.",
			Buckets:   durationBuckets,
		}),
		BackendCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_calls_total",
			Help:      "Encyclopedia backend calls by operation and outcome.",
		}, []string{"op", "outcome"}),
		BackendCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_call_duration_seconds",
			Help:      "Encyclopedia backend call latency.",
			Buckets:   durationBuckets,
		}, []string{"op"}),
		CandidatesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_skipped_total",
			Help:      "Candidates dropped during ranking by reason.",
		}, []string{"reason"}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "MediaWiki HTTP attempts by outcome.",
		}, []string{"outcome"}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "MediaWiki HTTP attempt latency.",
			Buckets:   durationBuckets,
		}),
	}

	m.registry.MustRegister(
		m.TurnsTotal,
		m.TurnDuration,
		m.BackendCallsTotal,
		m.BackendCallDuration,
		m.CandidatesSkipped,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
	)
	return m
}

func (m *Metrics) ObserveTurn(outcome string, d time.Duration) {
	m.TurnsTotal.WithLabelValues(outcome).Inc()
	m.TurnDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveBackendCall(op, outcome string, d time.Duration) {
	m.BackendCallsTotal.WithLabelValues(op, outcome).Inc()
	m.BackendCallDuration.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) CandidateSkipped(reason string) {
	m.CandidatesSkipped.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveRequest(outcome string, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(outcome).Inc()
	m.HTTPRequestDuration.Observe(d.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Metrics server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Metrics server listening", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
