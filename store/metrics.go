package store

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the ingestion-side counter/gauge/histogram set scraped by the
// ops surface's /metrics handler (§2.1 item 11). Each Engine holds one and
// updates it inline with its own work; nothing here blocks ingestion.
type Metrics struct {
	SyncPassesTotal      prometheus.Counter
	ActivitiesFetched    prometheus.Counter
	ActivitiesFailed     prometheus.Counter
	QueueDepth           prometheus.Gauge
	FetchLatencySeconds  prometheus.Histogram
}

// NewMetrics registers a fresh Metrics set against reg. Call once per
// process; reuse the same *Metrics across every Engine.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SyncPassesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dcli",
			Subsystem: "ingest",
			Name:      "sync_passes_total",
			Help:      "Number of completed SyncMember passes.",
		}),
		ActivitiesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dcli",
			Subsystem: "ingest",
			Name:      "activities_fetched_total",
			Help:      "Number of PGCRs successfully inserted.",
		}),
		ActivitiesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dcli",
			Subsystem: "ingest",
			Name:      "activities_failed_total",
			Help:      "Number of PGCR fetch or insert failures.",
		}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dcli",
			Subsystem: "ingest",
			Name:      "queue_depth",
			Help:      "Unsynced activity_queue rows at the end of the last fetch phase.",
		}),
		FetchLatencySeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dcli",
			Subsystem: "ingest",
			Name:      "pgcr_fetch_latency_seconds",
			Help:      "Latency of a single GetPGCR call.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.SyncPassesTotal, m.ActivitiesFetched, m.ActivitiesFailed, m.QueueDepth, m.FetchLatencySeconds)

	return m
}
