package trackrelay

import (
	"net/http"

	"github.com/behrlich/trackrelay/internal/telemetry"
)

// Observer is the metrics-collection contract a stage's domain workers and
// transport components call into.
type Observer interface {
	ObserveDecoded(kind string)
	ObserveDropped(reason string)
	ObserveOverflow(queue string)
	ObserveDelay(kind string, micros float64)
}

// Metrics is the Prometheus-backed Observer implementation every stage
// process constructs once at startup and threads through its receiver,
// domain worker, and sender.
type Metrics struct {
	inner *telemetry.Metrics
}

// NewMetrics constructs a Metrics instance scoped to the given stage name
// (used as the Prometheus metric subsystem).
func NewMetrics(stage string) *Metrics {
	return &Metrics{inner: telemetry.New(stage)}
}

func (m *Metrics) ObserveDecoded(kind string) {
	m.inner.Decoded.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveDropped(reason string) {
	m.inner.Dropped.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveOverflow(queue string) {
	m.inner.Overflowed.WithLabelValues(queue).Inc()
}

func (m *Metrics) ObserveDelay(kind string, micros float64) {
	m.inner.DelayMicros.WithLabelValues(kind).Observe(micros)
}

// Handler exposes this Metrics instance's registry in the Prometheus
// exposition format, for a stage process to mount on its metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return m.inner.Handler()
}
