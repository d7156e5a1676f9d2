// File: internal/infra/metrics/metrics.go
package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	paymentsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_ingested_total",
			Help: "Payment reports by outcome (recorded/duplicate/invalid/rate_limited).",
		},
		[]string{"outcome"},
	)

	webhookEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_webhook_events_total",
			Help: "Gateway webhook events by type and result (applied/dropped/error).",
		},
		[]string{"event", "result"},
	)

	sweepRuns = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduler_sweep_runs_total",
			Help: "Completed scheduler sweeps.",
		},
	)

	sweepMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_sweep_mutations_total",
			Help: "Subscriptions touched per sweep pass (expired_trial/renewed/reminder).",
		},
		[]string{"pass"},
	)

	httpLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_latency_ms",
			Help:    "HTTP handler latency distribution in milliseconds.",
			Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600, 3000},
		},
		[]string{"route", "method", "status"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			paymentsIngested, webhookEvents,
			sweepRuns, sweepMutations, httpLatencyMs,
		)
	})
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncPaymentIngested(outcome string) {
	paymentsIngested.WithLabelValues(norm(outcome)).Inc()
}

func IncWebhookEvent(event, result string) {
	webhookEvents.WithLabelValues(norm(event), norm(result)).Inc()
}

func SweepCompleted(expiredTrials, renewed, reminders int) {
	sweepRuns.Inc()
	sweepMutations.WithLabelValues("expired_trial").Add(float64(expiredTrials))
	sweepMutations.WithLabelValues("renewed").Add(float64(renewed))
	sweepMutations.WithLabelValues("reminder").Add(float64(reminders))
}

func ObserveHTTP(route, method, status string, latencyMs float64) {
	httpLatencyMs.WithLabelValues(route, method, status).Observe(latencyMs)
}
