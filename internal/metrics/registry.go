// Package metrics exposes the Prometheus collectors of the shield backend.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector on its own prometheus registry
type Registry struct {
	registry *prometheus.Registry

	NarrativeRequestsTotal *prometheus.CounterVec
	NarrativeDuration      *prometheus.HistogramVec

	EngineTransitionsTotal *prometheus.CounterVec
	EngineState            *prometheus.GaugeVec
	BudgetSavedTotal       prometheus.Counter

	FeedRotationsTotal prometheus.Counter
	StoreEventsTotal   *prometheus.CounterVec
	StoreVersion       prometheus.Gauge

	KafkaMessagesTotal *prometheus.CounterVec
	JournalWritesTotal *prometheus.CounterVec
}

// NewRegistry creates a registry with all collectors registered
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.registry.MustRegister(collectors.NewGoCollector())
	r.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r.initNarrativeMetrics()
	r.initEngineMetrics()
	r.initPipelineMetrics()
	return r
}

// Handler serves the registry in the text exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer exposes the underlying registry for tests and custom exporters
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

func (r *Registry) initNarrativeMetrics() {
	r.NarrativeRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "shield_narrative_requests_total",
			Help: "Narrative requests by call site and outcome",
		},
		[]string{"kind", "outcome"}, // model, fallback, error
	)

	r.NarrativeDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shield_narrative_duration_seconds",
			Help:    "Latency of generative text requests in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20},
		},
		[]string{"kind"},
	)
}

func (r *Registry) initEngineMetrics() {
	r.EngineTransitionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "shield_engine_transitions_total",
			Help: "Autonomous engine state transitions",
		},
		[]string{"from", "to"},
	)

	r.EngineState = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "shield_engine_state",
			Help: "Current autonomous engine state (1 for current state, 0 otherwise)",
		},
		[]string{"state"},
	)

	r.BudgetSavedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "shield_budget_saved_dollars_total",
			Help: "Budget saved by applied autonomous interventions",
		},
	)
}

func (r *Registry) initPipelineMetrics() {
	r.FeedRotationsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "shield_feed_rotations_total",
			Help: "Incident feed rotations",
		},
	)

	r.StoreEventsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "shield_store_events_total",
			Help: "KPI store events applied by type and origin",
		},
		[]string{"type", "origin"}, // local, remote
	)

	r.StoreVersion = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "shield_store_version",
			Help: "Current KPI store version",
		},
	)

	r.KafkaMessagesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "shield_kafka_messages_total",
			Help: "KPI event messages by direction and status",
		},
		[]string{"direction", "status"},
	)

	r.JournalWritesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "shield_journal_writes_total",
			Help: "Journal writes by collection and status",
		},
		[]string{"collection", "status"},
	)
}
