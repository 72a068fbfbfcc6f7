package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the ETL pipeline
type Registry struct {
	// Input Metrics
	RowsReadTotal       *prometheus.CounterVec
	ParseFailuresTotal  *prometheus.CounterVec
	DefaultedCellsTotal *prometheus.CounterVec
	RowsMerged          prometheus.Gauge
	RowsUnmatched       prometheus.Gauge

	// Graph Metrics
	NodesEmitted         *prometheus.GaugeVec
	RelationshipsEmitted *prometheus.GaugeVec
	RelationshipsDropped *prometheus.CounterVec
	EntitiesSkippedTotal prometheus.Counter
	AttributeConflicts   prometheus.Counter

	// Run Metrics
	StageDuration    *prometheus.HistogramVec
	RunsTotal        *prometheus.CounterVec
	LastRunTimestamp prometheus.Gauge
	LastRunRows      prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initInputMetrics()
	r.initGraphMetrics()
	r.initRunMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
