package monitoring

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestMetricsCollectorCounts(t *testing.T) {
	mc := NewMetricsCollector()
	mc.ObservePrediction(true, 2*time.Millisecond)
	mc.ObservePrediction(false, 4*time.Millisecond)
	mc.ObservePrediction(false, time.Millisecond)
	mc.ObservePredictionError(time.Millisecond)
	mc.ObserveRejection()

	checks := map[string]float64{
		MetricPredictionsTotal:        3,
		MetricPredictionsYesTotal:     1,
		MetricPredictionsNoTotal:      2,
		MetricPredictionErrorsTotal:   1,
		MetricBoundaryRejectionsTotal: 1,
	}
	for name, want := range checks {
		if got := mc.Counter(name); got != want {
			t.Fatalf("%s: expected %v, got %v", name, want, got)
		}
	}
}

func TestMetricsCollectorSnapshotSorted(t *testing.T) {
	mc := NewMetricsCollector()
	mc.ObservePrediction(true, 10*time.Millisecond)

	snapshot := mc.Snapshot()
	for i := 1; i < len(snapshot); i++ {
		if snapshot[i-1].Name > snapshot[i].Name {
			t.Fatalf("snapshot not sorted at %d: %s > %s", i, snapshot[i-1].Name, snapshot[i].Name)
		}
	}
	var latency *Metric
	for i := range snapshot {
		if snapshot[i].Name == MetricPredictionLatency {
			latency = &snapshot[i]
		}
	}
	if latency == nil {
		t.Fatal("expected latency summary in snapshot")
	}
	if latency.Metadata["count"].(int64) != 1 || latency.Value <= 0 {
		t.Fatalf("unexpected latency summary: %+v", latency)
	}
}

func TestMetricsCollectorConcurrent(t *testing.T) {
	mc := NewMetricsCollector()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mc.ObservePrediction(i%2 == 0, time.Microsecond)
		}(i)
	}
	wg.Wait()
	if got := mc.Counter(MetricPredictionsTotal); got != 50 {
		t.Fatalf("expected 50 predictions, got %v", got)
	}
}

func TestExportPrometheus(t *testing.T) {
	mc := NewMetricsCollector()
	mc.ObservePrediction(false, time.Millisecond)
	output := mc.ExportPrometheus()
	for _, want := range []string{
		"# TYPE predictions_total counter",
		"predictions_no_total 1",
		"prediction_latency_seconds_count 1",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output:\n%s", want, output)
		}
	}
}
