package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all custom Prometheus metrics for the application.
// Constructed once in main and injected; no package-level instance.
type Metrics struct {
	SessionsStarted    prometheus.Counter
	SessionMessages    *prometheus.CounterVec
	GenerationRequests prometheus.Counter
	GenerationFailures prometheus.Counter
	GenerationLatency  prometheus.Histogram
	DraftsSaved        prometheus.Counter
	LeadsCreated       prometheus.Counter
}

// InitMetrics registers and returns the Prometheus metrics.
func InitMetrics() *Metrics {
	return &Metrics{
		SessionsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pressmind_sessions_started_total",
			Help: "Total number of guided creation sessions started",
		}),

		SessionMessages: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pressmind_session_messages_total",
			Help: "Total number of session messages processed by stage",
		}, []string{"stage"}),

		GenerationRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pressmind_generation_requests_total",
			Help: "Total number of content generation calls placed",
		}),

		GenerationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pressmind_generation_failures_total",
			Help: "Total number of failed content generation calls",
		}),

		GenerationLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "pressmind_generation_duration_seconds",
			Help:    "Content generation latency in seconds",
			Buckets: []float64{1, 2, 5, 10, 30, 60, 120, 180}, // LLM calls are slow
		}),

		DraftsSaved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pressmind_drafts_saved_total",
			Help: "Total number of drafts persisted from completed generations",
		}),

		LeadsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pressmind_leads_created_total",
			Help: "Total number of CRM leads registered",
		}),
	}
}
