package store

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewMetricsRegistersAllCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.SyncPassesTotal.Inc()
	m.ActivitiesFetched.Inc()
	m.ActivitiesFailed.Inc()
	m.QueueDepth.Set(3)
	m.FetchLatencySeconds.Observe(0.25)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(families) != 5 {
		t.Errorf("registered metric families = %d, want 5", len(families))
	}
}
