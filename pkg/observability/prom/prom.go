// Package prom implements the observability hooks with Prometheus metrics.
//
// Register one [Metrics] value for every hook category at startup:
//
//	m := prom.New(prometheus.DefaultRegisterer)
//	observability.SetGroupHooks(m)
//	observability.SetSearchHooks(m)
//	observability.SetCacheHooks(m)
//
// All metrics live in the "orbit" namespace. Operations are safe for
// concurrent use.
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/orbit/pkg/observability"
)

const namespace = "orbit"

// Metrics holds the collectors behind every hook.
type Metrics struct {
	// PopulateTotal counts group populations by source and result
	// (ok, error, exhausted).
	PopulateTotal *prometheus.CounterVec

	// PopulateDuration measures population time by source.
	PopulateDuration *prometheus.HistogramVec

	// Generators is the generator count of the last successful population.
	Generators prometheus.Gauge

	// DiscardedTotal counts dropped identity and invalid generators.
	DiscardedTotal prometheus.Counter

	// CanonicalizeTotal counts canonicalizations by mode and whether the
	// state changed.
	CanonicalizeTotal *prometheus.CounterVec

	// DuplicatesTotal counts states pruned as duplicates by mode.
	DuplicatesTotal *prometheus.CounterVec

	// CacheRequestsTotal counts cache lookups by key type and result.
	CacheRequestsTotal *prometheus.CounterVec

	// CacheWrittenBytes counts bytes written to the cache by key type.
	CacheWrittenBytes *prometheus.CounterVec
}

var (
	_ observability.GroupHooks  = (*Metrics)(nil)
	_ observability.SearchHooks = (*Metrics)(nil)
	_ observability.CacheHooks  = (*Metrics)(nil)
)

// New creates the metrics and registers them with reg.
// It panics if any metric is already registered, as promauto does.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PopulateTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "group",
			Name:      "populate_total",
			Help:      "Symmetry group populations by source and result",
		}, []string{"source", "result"}),
		PopulateDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "group",
			Name:      "populate_duration_seconds",
			Help:      "Symmetry group population time in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4min
		}, []string{"source"}),
		Generators: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "group",
			Name:      "generators",
			Help:      "Generators stored by the last populated group",
		}),
		DiscardedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "group",
			Name:      "discarded_generators_total",
			Help:      "Identity and invalid generators dropped during population",
		}),
		CanonicalizeTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "canonicalize_total",
			Help:      "Canonicalizations by mode and whether the state changed",
		}, []string{"mode", "changed"}),
		DuplicatesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "duplicates_total",
			Help:      "States pruned because a symmetric state was closed",
		}, []string{"mode"}),
		CacheRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "requests_total",
			Help:      "Cache lookups by key type and result",
		}, []string{"key_type", "result"}),
		CacheWrittenBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the cache by key type",
		}, []string{"key_type"}),
	}
}

// OnPopulateStart implements observability.GroupHooks.
func (m *Metrics) OnPopulateStart(context.Context, string) {}

// OnPopulateComplete implements observability.GroupHooks.
func (m *Metrics) OnPopulateComplete(_ context.Context, source string, generators, discarded int, d time.Duration, err error) {
	m.PopulateDuration.WithLabelValues(source).Observe(d.Seconds())
	if err != nil {
		m.PopulateTotal.WithLabelValues(source, "error").Inc()
		return
	}
	m.PopulateTotal.WithLabelValues(source, "ok").Inc()
	m.Generators.Set(float64(generators))
	m.DiscardedTotal.Add(float64(discarded))
}

// OnExhausted implements observability.GroupHooks.
func (m *Metrics) OnExhausted(_ context.Context, source string) {
	m.PopulateTotal.WithLabelValues(source, "exhausted").Inc()
}

// OnCanonicalize implements observability.SearchHooks.
func (m *Metrics) OnCanonicalize(mode string, changed bool) {
	label := "false"
	if changed {
		label = "true"
	}
	m.CanonicalizeTotal.WithLabelValues(mode, label).Inc()
}

// OnDuplicate implements observability.SearchHooks.
func (m *Metrics) OnDuplicate(mode string) {
	m.DuplicatesTotal.WithLabelValues(mode).Inc()
}

// OnCacheHit implements observability.CacheHooks.
func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheRequestsTotal.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheRequestsTotal.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheWrittenBytes.WithLabelValues(keyType).Add(float64(size))
}
