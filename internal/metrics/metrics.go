// Package metrics exposes Prometheus counters for resolution and persistence.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the assistant's collectors. A nil *Metrics is valid and
// records nothing, so components can be built without instrumentation.
type Metrics struct {
	Resolutions       *prometheus.CounterVec
	TierFailures      *prometheus.CounterVec
	InquiryWrites     *prometheus.CounterVec
	StoreFallbacks    *prometheus.CounterVec
	CompletionLatency prometheus.Histogram
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Resolutions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_resolutions_total",
				Help: "Total number of replies produced, by resolution tier",
			},
			[]string{"source"},
		),
		TierFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_tier_failures_total",
				Help: "Total number of resolution tiers that failed and fell through",
			},
			[]string{"source"},
		),
		InquiryWrites: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_inquiry_writes_total",
				Help: "Total number of inquiry log writes, by outcome",
			},
			[]string{"outcome"},
		),
		StoreFallbacks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_store_fallbacks_total",
				Help: "Total number of store operations answered with mock semantics after a live failure",
			},
			[]string{"collection", "op"},
		),
		CompletionLatency: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assistant_completion_duration_seconds",
				Help:    "Duration of completion service calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

func (m *Metrics) Resolved(source string) {
	if m == nil {
		return
	}
	m.Resolutions.WithLabelValues(source).Inc()
}

func (m *Metrics) TierFailed(source string) {
	if m == nil {
		return
	}
	m.TierFailures.WithLabelValues(source).Inc()
}

func (m *Metrics) InquiryWritten(success bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.InquiryWrites.WithLabelValues(outcome).Inc()
}

func (m *Metrics) StoreFellBack(collection, op string) {
	if m == nil {
		return
	}
	m.StoreFallbacks.WithLabelValues(collection, op).Inc()
}

func (m *Metrics) ObserveCompletion(seconds float64) {
	if m == nil {
		return
	}
	m.CompletionLatency.Observe(seconds)
}
