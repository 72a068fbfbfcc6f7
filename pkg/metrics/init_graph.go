package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.NodesEmitted = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moviegraph_nodes_emitted",
			Help: "Node records emitted in the last run, by label",
		},
		[]string{"label"},
	)

	r.RelationshipsEmitted = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moviegraph_relationships_emitted",
			Help: "Relationship records emitted in the last run, by type",
		},
		[]string{"type"},
	)

	r.RelationshipsDropped = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviegraph_relationships_dropped_total",
			Help: "Relationship records dropped for referencing a missing node",
		},
		[]string{"type"},
	)

	r.EntitiesSkippedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "moviegraph_entities_skipped_total",
			Help: "Entity references skipped for lacking a usable id",
		},
	)

	r.AttributeConflicts = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "moviegraph_attribute_conflicts_total",
			Help: "Attribute values discarded for disagreeing with the kept value",
		},
	)
}
