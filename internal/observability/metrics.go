package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the HTTP surface.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	SessionsLive    prometheus.GaugeFunc
	SettlementsRun  prometheus.Counter
}

// NewMetrics builds a fresh registry so tests never collide on the global one.
// liveSessions reports the current session count.
func NewMetrics(liveSessions func() float64) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		Registry: reg,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checksplit_http_requests_total",
			Help: "HTTP requests by method, route pattern, and status code.",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "checksplit_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		SettlementsRun: factory.NewCounter(prometheus.CounterOpts{
			Name: "checksplit_settlements_total",
			Help: "Finalized settlements computed.",
		}),
	}

	if liveSessions != nil {
		m.SessionsLive = factory.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "checksplit_sessions_live",
			Help: "Sessions currently held in memory.",
		}, liveSessions)
	}

	return m
}
