package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "elysee"

// Metrics groups the collectors exported at /metrics.
type Metrics struct {
	registry       *prometheus.Registry
	submissions    *prometheus.CounterVec
	viewerSessions prometheus.Gauge
	contentReloads *prometheus.CounterVec
	conciergeConns prometheus.Gauge
}

// New registers the site collectors plus the Go and process collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reservations",
			Name:      "submissions_total",
			Help:      "Reservation submissions by channel and outcome.",
		}, []string{"channel", "outcome"}),
		viewerSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "viewer",
			Name:      "open_sessions",
			Help:      "VR dish viewer websocket sessions currently open.",
		}),
		contentReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "reloads_total",
			Help:      "Catalog reload attempts by result.",
		}, []string{"result"}),
		conciergeConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "concierge",
			Name:      "connections",
			Help:      "Concierge notification streams currently attached.",
		}),
	}
	m.registry.MustRegister(
		m.submissions,
		m.viewerSessions,
		m.contentReloads,
		m.conciergeConns,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) ObserveSubmission(channel, outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(channel, outcome).Inc()
}

func (m *Metrics) ViewerOpened() {
	if m == nil {
		return
	}
	m.viewerSessions.Inc()
}

func (m *Metrics) ViewerClosed() {
	if m == nil {
		return
	}
	m.viewerSessions.Dec()
}

func (m *Metrics) ObserveReload(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.contentReloads.WithLabelValues(result).Inc()
}

func (m *Metrics) ConciergeAttached() {
	if m == nil {
		return
	}
	m.conciergeConns.Inc()
}

func (m *Metrics) ConciergeDetached() {
	if m == nil {
		return
	}
	m.conciergeConns.Dec()
}
