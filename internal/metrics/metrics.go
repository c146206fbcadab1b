// Package metrics exposes Prometheus instrumentation for the display refresh loop.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/unklstewy/gcs-pfd/pkg/lookup"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
)

// Derivation error kinds used as the "kind" label.
const (
	KindMissingTelemetry = "missing_telemetry"
	KindLookup           = "lookup"
	KindOther            = "other"
)

// Metrics holds the collectors of one refresh loop.
type Metrics struct {
	ticks            prometheus.Counter
	derivationErrors *prometheus.CounterVec
	sourceErrors     prometheus.Counter
	snapshotAge      prometheus.Gauge
	deriveDuration   prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pfd_ticks_total",
			Help: "Display refresh ticks executed.",
		}),
		derivationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pfd_derivation_errors_total",
			Help: "Ticks whose display derivation failed, by error kind.",
		}, []string{"kind"}),
		sourceErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pfd_source_errors_total",
			Help: "Ticks where no snapshot could be read from the telemetry source.",
		}),
		snapshotAge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pfd_snapshot_age_seconds",
			Help: "Age of the last derived snapshot at derivation time.",
		}),
		deriveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pfd_derive_duration_seconds",
			Help:    "Time spent deriving one display from a snapshot.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14),
		}),
	}

	reg.MustRegister(m.ticks, m.derivationErrors, m.sourceErrors, m.snapshotAge, m.deriveDuration)
	return m
}

// Tick counts one refresh attempt.
func (m *Metrics) Tick() {
	m.ticks.Inc()
}

// SourceError counts a failed snapshot read.
func (m *Metrics) SourceError() {
	m.sourceErrors.Inc()
}

// DerivationError counts a failed derivation under its kind.
func (m *Metrics) DerivationError(err error) {
	m.derivationErrors.WithLabelValues(ErrorKind(err)).Inc()
}

// Derived records a successful derivation.
func (m *Metrics) Derived(snapshotTime, now time.Time, took time.Duration) {
	m.deriveDuration.Observe(took.Seconds())
	if !snapshotTime.IsZero() {
		m.snapshotAge.Set(now.Sub(snapshotTime).Seconds())
	}
}

// ErrorKind classifies a derivation error for the "kind" label.
func ErrorKind(err error) string {
	if _, ok := telemetry.IsMissingTelemetry(err); ok {
		return KindMissingTelemetry
	}
	if _, ok := lookup.IsLookupError(err); ok {
		return KindLookup
	}
	return KindOther
}
