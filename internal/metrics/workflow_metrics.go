// Package metrics defines workflow-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels shared by the workflow counters
const (
	OutcomeOK           = "ok"
	OutcomeUnauthorized = "unauthorized"
	OutcomeError        = "error"
	OutcomeFound        = "found"
	OutcomeNotFound     = "not_found"
	OutcomeAborted      = "aborted"
	OutcomeConfirmed    = "confirmed"
	OutcomeCancelled    = "cancelled"
	OutcomeRejected     = "rejected"
)

// Workflow counter vectors
var (
	SearchWorkflowTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "racehub",
		Name:      "search_workflow_total",
		Help:      "Search/confirm workflow transitions by step and outcome",
	}, []string{"step", "outcome"})

	ResultLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "racehub",
		Name:      "result_lookups_total",
		Help:      "Personal result lookups by source and outcome",
	}, []string{"source", "outcome"})

	ViewRendersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "racehub",
		Name:      "view_renders_total",
		Help:      "Rendered views by mode",
	}, []string{"mode"})
)

// RecordSearchStep records a search workflow step ("search", "confirm", "cancel").
func RecordSearchStep(step, outcome string) {
	SearchWorkflowTotal.WithLabelValues(step, outcome).Inc()
}

// RecordResultLookup records a result lookup ("cache" or "remote").
func RecordResultLookup(source, outcome string) {
	ResultLookupsTotal.WithLabelValues(source, outcome).Inc()
}

// RecordRender records a rendered view.
func RecordRender(mode string) {
	ViewRendersTotal.WithLabelValues(mode).Inc()
}
