package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Verify all metrics are initialized
	if r.RowsReadTotal == nil {
		t.Error("RowsReadTotal not initialized")
	}
	if r.ParseFailuresTotal == nil {
		t.Error("ParseFailuresTotal not initialized")
	}
	if r.NodesEmitted == nil {
		t.Error("NodesEmitted not initialized")
	}
	if r.StageDuration == nil {
		t.Error("StageDuration not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	// Should return the same instance
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordParseFailures(t *testing.T) {
	r := NewRegistry()

	r.RecordParseFailures(map[string]int{"genres": 3, "cast": 1})
	r.RecordParseFailures(map[string]int{"genres": 2})

	counter, err := r.ParseFailuresTotal.GetMetricWithLabelValues("genres")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 5 {
		t.Errorf("Counter value = %v, want 5", metric.Counter.GetValue())
	}
}

func TestSetNodeCounts(t *testing.T) {
	r := NewRegistry()

	r.SetNodeCounts(4800, 45000, 20, 9800, 5000)

	gauge, err := r.NodesEmitted.GetMetricWithLabelValues("Person")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Gauge.GetValue() != 45000 {
		t.Errorf("Gauge value = %v, want 45000", metric.Gauge.GetValue())
	}
}

func TestRecordDroppedRelationshipsIgnoresZero(t *testing.T) {
	r := NewRegistry()

	r.RecordDroppedRelationships("ACTED_IN", 0)
	r.RecordDroppedRelationships("ACTED_IN", 2)

	counter, err := r.RelationshipsDropped.GetMetricWithLabelValues("ACTED_IN")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 2 {
		t.Errorf("Counter value = %v, want 2", metric.Counter.GetValue())
	}
}

func TestRecordStageAndRun(t *testing.T) {
	r := NewRegistry()

	r.RecordStage("extract", 250*time.Millisecond)
	r.RecordRun("success", 4803)

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	found := map[string]bool{}
	for _, f := range families {
		found[f.GetName()] = true
	}
	for _, name := range []string{
		"moviegraph_stage_duration_seconds",
		"moviegraph_runs_total",
		"moviegraph_last_run_timestamp_seconds",
		"moviegraph_last_run_rows",
	} {
		if !found[name] {
			t.Errorf("metric family %s not gathered", name)
		}
	}
}
