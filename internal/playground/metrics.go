package playground

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/formkit/pkg/formvalidate"
	"github.com/dmitrymomot/formkit/pkg/tablefilter"
)

// Metrics collects playground counters on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	events       *prometheus.CounterVec
	submits      *prometheus.CounterVec
	fieldChecks  *prometheus.CounterVec
	filterPasses *prometheus.CounterVec
	visibleRows  *prometheus.GaugeVec
	sessions     prometheus.Gauge
	reloads      *prometheus.CounterVec
}

// NewMetrics registers the playground collectors plus the Go runtime and
// process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formkit",
			Name:      "events_total",
			Help:      "Browser events dispatched into page sessions.",
		}, []string{"type"}),
		submits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formkit",
			Name:      "submits_total",
			Help:      "Form submit attempts by outcome.",
		}, []string{"form", "outcome"}),
		fieldChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formkit",
			Name:      "field_validations_total",
			Help:      "Live field re-validations by result.",
		}, []string{"form", "field", "result"}),
		filterPasses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formkit",
			Name:      "filter_passes_total",
			Help:      "Table filter passes.",
		}, []string{"table"}),
		visibleRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "formkit",
			Name:      "visible_rows",
			Help:      "Rows left visible by the latest filter pass.",
		}, []string{"table"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "formkit",
			Name:      "sessions_active",
			Help:      "Live page sessions.",
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formkit",
			Name:      "catalog_reloads_total",
			Help:      "Catalog reload attempts by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.events,
		m.submits,
		m.fieldChecks,
		m.filterPasses,
		m.visibleRows,
		m.sessions,
		m.reloads,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// FormOptions returns engine hooks feeding the form counters.
func (m *Metrics) FormOptions() []formvalidate.Option {
	return []formvalidate.Option{
		formvalidate.WithSubmitHook(func(r formvalidate.SubmitResult) {
			outcome := "blocked"
			if r.Allowed {
				outcome = "allowed"
			}
			m.submits.WithLabelValues(r.Form, outcome).Inc()
		}),
		formvalidate.WithFieldHook(func(r formvalidate.FieldResult) {
			result := "valid"
			if r.Err != nil {
				result = "invalid"
			}
			m.fieldChecks.WithLabelValues(r.Form, r.Field, result).Inc()
		}),
	}
}

// TableOptions returns engine hooks feeding the filter counters.
func (m *Metrics) TableOptions() []tablefilter.Option {
	return []tablefilter.Option{
		tablefilter.WithApplyHook(func(r tablefilter.ApplyResult) {
			m.filterPasses.WithLabelValues(r.Table).Inc()
			m.visibleRows.WithLabelValues(r.Table).Set(float64(r.Visible))
		}),
	}
}

// Event counts one dispatched browser event.
func (m *Metrics) Event(typ string) { m.events.WithLabelValues(typ).Inc() }

// SessionCount records the number of live sessions.
func (m *Metrics) SessionCount(n int) { m.sessions.Set(float64(n)) }

// CatalogReloaded counts a reload attempt.
func (m *Metrics) CatalogReloaded(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.reloads.WithLabelValues(result).Inc()
}
