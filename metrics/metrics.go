// Package metrics provides Prometheus metrics for the simulation daemon.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RunsStarted counts simulation runs started.
	RunsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mmsim",
		Name:      "runs_started_total",
		Help:      "Number of simulation runs started",
	})

	// RunsCompleted counts runs that produced a full trajectory.
	RunsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mmsim",
		Name:      "runs_completed_total",
		Help:      "Number of simulation runs completed",
	})

	// RunsFailed counts runs aborted by a tick error.
	RunsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mmsim",
		Name:      "runs_failed_total",
		Help:      "Number of simulation runs aborted with an error",
	})

	// Fills counts sampled fills by side.
	Fills = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mmsim",
		Name:      "fills_total",
		Help:      "Number of simulated fills by quote side",
	}, []string{"side"})

	// LastPnL is the terminal mark-to-market of the most recent run.
	LastPnL = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mmsim",
		Name:      "last_run_pnl",
		Help:      "Final mark-to-market PnL of the last completed run",
	})

	// LastInventory is the terminal inventory of the most recent run.
	LastInventory = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mmsim",
		Name:      "last_run_inventory",
		Help:      "Final inventory of the last completed run",
	})

	// RunDuration observes wall-clock run times.
	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mmsim",
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of simulation runs",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	})
)

// ObserveRunComplete records the terminal state of a completed run.
func ObserveRunComplete(finalPnL, finalInventory, seconds float64) {
	RunsCompleted.Inc()
	LastPnL.Set(finalPnL)
	LastInventory.Set(finalInventory)
	RunDuration.Observe(seconds)
}

// IncrementFills bumps the fill counter for "bid" or "ask".
func IncrementFills(side string) {
	Fills.WithLabelValues(side).Inc()
}

// StartMetricsServer 启动Prometheus指标服务器
func StartMetricsServer(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		_ = http.ListenAndServe(addr, nil)
	}()
}
