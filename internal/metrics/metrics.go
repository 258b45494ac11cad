// Package metrics exposes Prometheus counters and histograms for insert,
// remove, and scan operations. The collection core and set engine do not
// update them; callers record them (s4dctl's bench command does).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the registered collectors. A nil *Metrics is not usable;
// construct one with New and register it with a prometheus.Registerer.
type Metrics struct {
	InsertTotal    prometheus.Counter
	RemoveTotal    prometheus.Counter
	ScanDuration   prometheus.Histogram
	InsertDuration prometheus.Histogram
	SetCardinality prometheus.Gauge
}

// New builds an unregistered Metrics bundle under the "s4d" namespace.
func New() *Metrics {
	return &Metrics{
		InsertTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "s4d",
			Name:      "insert_total",
			Help:      "Total number of Insert calls across all sets and maps.",
		}),
		RemoveTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "s4d",
			Name:      "remove_total",
			Help:      "Total number of Remove calls across all sets and maps.",
		}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "s4d",
			Name:      "scan_duration_seconds",
			Help:      "Latency of collection.Store.Scan calls.",
			Buckets:   prometheus.DefBuckets,
		}),
		InsertDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "s4d",
			Name:      "insert_duration_seconds",
			Help:      "Latency of normalizing Insert calls.",
			Buckets:   prometheus.DefBuckets,
		}),
		SetCardinality: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "s4d",
			Name:      "set_cardinality",
			Help:      "Number of normalized entries in the most recently measured set.",
		}),
	}
}

// MustRegister registers every collector in m with reg, panicking on a
// duplicate registration (mirrors prometheus.MustRegister's contract).
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(m.InsertTotal, m.RemoveTotal, m.ScanDuration, m.InsertDuration, m.SetCardinality)
}
