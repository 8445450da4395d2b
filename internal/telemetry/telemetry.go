// Package telemetry exposes per-stage Prometheus counters and a delay
// histogram over HTTP, so an operator can scrape decode/drop/overflow
// rates and hop-delay distributions from each running stage process.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds one Prometheus registry per stage process, with counters
// for decoded/dropped/overflowed records and a delay histogram in
// microseconds.
type Metrics struct {
	registry *prometheus.Registry

	Decoded    *prometheus.CounterVec
	Dropped    *prometheus.CounterVec
	Overflowed *prometheus.CounterVec

	DelayMicros *prometheus.HistogramVec
}

// delayBuckets spans 100us to 1s logarithmically, covering the range from
// a clean transport hop to a badly backed-up one.
var delayBuckets = []float64{
	100, 500, 1_000, 5_000, 10_000, 50_000, 100_000, 500_000, 1_000_000,
}

// New constructs a Metrics instance registered against a fresh registry.
func New(stage string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		Decoded: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "trackrelay",
			Subsystem: stage,
			Name:      "records_decoded_total",
			Help:      "Records successfully decoded, by record kind.",
		}, []string{"kind"}),
		Dropped: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "trackrelay",
			Subsystem: stage,
			Name:      "records_dropped_total",
			Help:      "Records dropped due to decode failure or failed validation, by reason.",
		}, []string{"reason"}),
		Overflowed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "trackrelay",
			Subsystem: stage,
			Name:      "queue_overflow_total",
			Help:      "Drop-oldest overflow events, by queue role.",
		}, []string{"queue"}),
		DelayMicros: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "trackrelay",
			Subsystem: stage,
			Name:      "delay_microseconds",
			Help:      "Observed hop/total delay distribution in microseconds.",
			Buckets:   delayBuckets,
		}, []string{"kind"}),
	}
	return m
}

// Handler returns an http.Handler exposing this Metrics instance's registry
// in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
