package metrics

import (
	"time"
)

// RecordStage records one pipeline stage run with its duration
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordRun records a completed pipeline run
func (r *Registry) RecordRun(status string, rows int) {
	r.RunsTotal.WithLabelValues(status).Inc()
	r.LastRunTimestamp.Set(float64(time.Now().Unix()))
	r.LastRunRows.Set(float64(rows))
}

// RecordParseFailures adds the per-column parse failure counts from a run
func (r *Registry) RecordParseFailures(byColumn map[string]int) {
	for column, n := range byColumn {
		r.ParseFailuresTotal.WithLabelValues(column).Add(float64(n))
	}
}

// SetNodeCounts publishes the node counts of the last run
func (r *Registry) SetNodeCounts(movies, persons, genres, keywords, companies int) {
	r.NodesEmitted.WithLabelValues("Movie").Set(float64(movies))
	r.NodesEmitted.WithLabelValues("Person").Set(float64(persons))
	r.NodesEmitted.WithLabelValues("Genre").Set(float64(genres))
	r.NodesEmitted.WithLabelValues("Keyword").Set(float64(keywords))
	r.NodesEmitted.WithLabelValues("Company").Set(float64(companies))
}

// SetRelationshipCount publishes one relationship type count of the last run
func (r *Registry) SetRelationshipCount(relType string, n int) {
	r.RelationshipsEmitted.WithLabelValues(relType).Set(float64(n))
}

// RecordDroppedRelationships counts relationships removed by the
// referential integrity check
func (r *Registry) RecordDroppedRelationships(relType string, n int) {
	if n > 0 {
		r.RelationshipsDropped.WithLabelValues(relType).Add(float64(n))
	}
}
