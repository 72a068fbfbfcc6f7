package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRunMetrics() {
	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moviegraph_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0, 30.0, 60.0},
		},
		[]string{"stage"},
	)

	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviegraph_runs_total",
			Help: "Total pipeline runs by final status",
		},
		[]string{"status"},
	)

	r.LastRunTimestamp = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "moviegraph_last_run_timestamp_seconds",
			Help: "Unix timestamp of the last completed run",
		},
	)

	r.LastRunRows = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "moviegraph_last_run_rows",
			Help: "Rows processed by the last completed run",
		},
	)
}
