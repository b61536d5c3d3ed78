// Package metrics wires the LSM engine's observable state into Prometheus
// collectors: a gauge tracking the active memtable's approximate size, a
// freeze counter, and latency histograms for writes and reads. This is
// purely observational — it never feeds back into engine semantics — so it
// is wired regardless of the explicit functional Non-goals (compaction,
// WAL, bloom filters, MVCC) that spec.md scopes out of the core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every metric the engine reports.
type Registry struct {
	MemTableSizeBytes prometheus.Gauge
	FreezeTotal        prometheus.Counter
	WriteDuration      prometheus.Histogram
	GetDuration        prometheus.Histogram
}

// NewRegistry constructs and registers a fresh Registry against reg.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{}

	r.MemTableSizeBytes = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "lsm_memtable_size_bytes",
		Help: "Approximate size in bytes of the active memtable.",
	})

	r.FreezeTotal = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "lsm_memtable_freeze_total",
		Help: "Total number of times the active memtable was frozen.",
	})

	r.WriteDuration = promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
		Name:    "lsm_write_duration_seconds",
		Help:    "Latency of write_batch calls.",
		Buckets: prometheus.DefBuckets,
	})

	r.GetDuration = promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
		Name:    "lsm_get_duration_seconds",
		Help:    "Latency of get calls.",
		Buckets: prometheus.DefBuckets,
	})

	return r
}

// ObserveMemTableSize records the active memtable's current approximate
// size.
func (r *Registry) ObserveMemTableSize(size uint64) {
	if r == nil {
		return
	}
	r.MemTableSizeBytes.Set(float64(size))
}

// IncFreeze records one more freeze of the active memtable.
func (r *Registry) IncFreeze() {
	if r == nil {
		return
	}
	r.FreezeTotal.Inc()
}
