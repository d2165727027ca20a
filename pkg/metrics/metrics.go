// Package metrics defines the Prometheus instrumentation for dispatches
// and activity state.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Dispatch sources and outcomes used as label values.
const (
	SourceScheduled = "scheduled"
	SourceAdhoc     = "adhoc"

	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Metrics holds all application metrics.
type Metrics struct {
	// DispatchesTotal counts dispatch attempts by trigger source and outcome.
	DispatchesTotal *prometheus.CounterVec

	// TicksSkippedTotal counts scheduled ticks suppressed by the idle gate.
	TicksSkippedTotal prometheus.Counter

	// ActivityState is 1 while the user is classified active, 0 otherwise.
	ActivityState prometheus.Gauge

	// StatusReportsTotal counts pushes to the external status sink by outcome.
	StatusReportsTotal *prometheus.CounterVec
}

// New creates and registers all application metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		DispatchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pushel",
			Name:      "dispatches_total",
			Help:      "Total number of notification dispatch attempts",
		}, []string{"source", "status"}),
		TicksSkippedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pushel",
			Name:      "ticks_skipped_total",
			Help:      "Total number of scheduled ticks suppressed by the idle gate",
		}),
		ActivityState: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "pushel",
			Name:      "activity_state",
			Help:      "Current user activity classification (1 active, 0 inactive)",
		}),
		StatusReportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pushel",
			Name:      "status_reports_total",
			Help:      "Total number of activity status pushes to the external sink",
		}, []string{"status"}),
	}
}
