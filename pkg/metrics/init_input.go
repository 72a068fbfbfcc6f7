package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initInputMetrics() {
	r.RowsReadTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviegraph_rows_read_total",
			Help: "Total number of rows read from the input tables",
		},
		[]string{"table"},
	)

	r.ParseFailuresTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviegraph_parse_failures_total",
			Help: "Embedded field values that could not be parsed",
		},
		[]string{"column"},
	)

	r.DefaultedCellsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviegraph_defaulted_cells_total",
			Help: "Cells filled with a default value during reconciliation",
		},
		[]string{"column"},
	)

	r.RowsMerged = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "moviegraph_rows_merged",
			Help: "Rows in the merged working table after the join",
		},
	)

	r.RowsUnmatched = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "moviegraph_rows_unmatched",
			Help: "Metadata rows with no matching credits row",
		},
	)
}
