// Package metrics exposes Prometheus counters for settlement outcomes and
// HTTP traffic.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder counts settlement attempts by obligation kind and outcome. It
// satisfies the settlement engine's Recorder interface.
type Recorder struct {
	settlements *prometheus.CounterVec
}

// NewRecorder registers the settlement counters on the default registry.
func NewRecorder() *Recorder {
	return &Recorder{
		settlements: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tonpay",
			Subsystem: "settlement",
			Name:      "attempts_total",
			Help:      "Settlement attempts by obligation kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
}

// RecordSettlement counts one settlement attempt.
func (r *Recorder) RecordSettlement(kind, outcome string) {
	r.settlements.WithLabelValues(kind, outcome).Inc()
}

// HTTPRequests counts handled HTTP requests by method, path and status.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "tonpay",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "HTTP requests by method, route and status code.",
}, []string{"method", "path", "status"})
