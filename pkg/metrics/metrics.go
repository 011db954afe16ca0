// Package metrics exposes Prometheus collectors for dispatch outcomes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Recorder struct {
	dispatches *prometheus.CounterVec
	messages   *prometheus.CounterVec
	tokens     prometheus.Histogram
	gatherer   prometheus.Gatherer
}

// NewRecorder registers the collectors on reg. Tests pass a fresh
// prometheus.NewRegistry() to stay isolated from the default registry.
func NewRecorder(reg *prometheus.Registry) *Recorder {
	r := &Recorder{
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifier_dispatch_total",
				Help: "Trigger invocations by collection and outcome",
			},
			[]string{"collection", "outcome"},
		),
		messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifier_push_messages_total",
				Help: "Push messages reported by the gateway by collection and status",
			},
			[]string{"collection", "status"},
		),
		tokens: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "notifier_dispatch_tokens",
				Help:    "Delivery tokens targeted per broadcast",
				Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000, 10000},
			},
		),
		gatherer: reg,
	}
	reg.MustRegister(r.dispatches, r.messages, r.tokens)
	return r
}

// ObserveDispatch records one trigger invocation.
func (r *Recorder) ObserveDispatch(collection, outcome string, broadcast bool, targeted, success, failure int) {
	r.dispatches.WithLabelValues(collection, outcome).Inc()
	if broadcast && targeted > 0 {
		r.tokens.Observe(float64(targeted))
	}
	if success > 0 {
		r.messages.WithLabelValues(collection, "success").Add(float64(success))
	}
	if failure > 0 {
		r.messages.WithLabelValues(collection, "failure").Add(float64(failure))
	}
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
