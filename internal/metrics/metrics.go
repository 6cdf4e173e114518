// Package metrics
package metrics

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TasksProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolver_tasks_processed_total",
			Help: "Total number of resolution tasks finished, labeled by outcome category.",
		},
		[]string{"category"},
	)
	TaskDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resolver_task_duration_seconds",
			Help:    "Duration of a single domain resolution in seconds.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 90},
		},
	)
	TasksInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "resolver_tasks_in_flight",
			Help: "Number of resolution tasks currently being processed.",
		},
	)
	BatchesCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolver_batches_completed_total",
			Help: "Total number of batches finished, labeled by final status.",
		},
		[]string{"status"},
	)
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolver_cache_lookups_total",
			Help: "Total number of resolved-domain cache lookups, labeled by result.",
		},
		[]string{"result"},
	)
	RegistryCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resolver_registry_candidates",
			Help:    "Number of registry candidates returned per lookup.",
			Buckets: []float64{0, 1, 2, 5, 10, 20},
		},
	)
	StuckTasksFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "resolver_stuck_tasks_failed_total",
			Help: "Total number of tasks force-failed by the stuck-job sweep.",
		},
	)
	BatchesResumed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "resolver_batches_resumed_total",
			Help: "Total number of stalled batches re-run by the health sweep.",
		},
	)
)

func init() {
	prometheus.MustRegister(TasksProcessed)
	prometheus.MustRegister(TaskDuration)
	prometheus.MustRegister(TasksInFlight)
	prometheus.MustRegister(BatchesCompleted)
	prometheus.MustRegister(CacheLookups)
	prometheus.MustRegister(RegistryCandidates)
	prometheus.MustRegister(StuckTasksFailed)
	prometheus.MustRegister(BatchesResumed)
}

// Expose serves the Prometheus exposition endpoint on its own listener.
// Runs until the listener fails; meant to be started in a goroutine.
func Expose(addr string, log *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	log.Info("exposing prometheus metrics", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error("metrics server failed", slog.String("error", err.Error()))
	}
}
