// Package metrics exposes Prometheus instrumentation for experiment runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "graspsched",
		Name:      "runs_total",
		Help:      "Number of algorithm runs, by algorithm.",
	}, []string{"algorithm"})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "graspsched",
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of algorithm runs, by algorithm.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12),
	}, []string{"algorithm"})

	bestCost = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "graspsched",
		Name:      "best_cost",
		Help:      "Solution cost of the most recent run, by algorithm.",
	}, []string{"algorithm"})

	movesApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "graspsched",
		Name:      "local_search_moves_total",
		Help:      "Relocations applied by local search, by algorithm.",
	}, []string{"algorithm"})
)

// ObserveRun records one finished run.
func ObserveRun(algorithm string, cost float64, moves int, elapsed time.Duration) {
	runsTotal.WithLabelValues(algorithm).Inc()
	runDuration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
	bestCost.WithLabelValues(algorithm).Set(cost)
	movesApplied.WithLabelValues(algorithm).Add(float64(moves))
}

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
