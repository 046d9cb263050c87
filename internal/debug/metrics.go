package debug

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "statekit"

// Metrics counts store and panel activity.
type Metrics struct {
	dispatches     prometheus.Counter
	refreshes      *prometheus.CounterVec
	selectorErrors *prometheus.CounterVec
	pollFailures   prometheus.Counter
	attachments    prometheus.Counter
}

// NewMetrics registers the statekit collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		dispatches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatches_total",
			Help:      "Dispatches that reached the notification pass",
		}),
		refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "panel_refreshes_total",
			Help:      "Refresh callbacks fired per panel",
		}, []string{"panel"}),
		selectorErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selector_errors_total",
			Help:      "Selector failures surfaced during render per panel",
		}, []string{"panel"}),
		pollFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_failures_total",
			Help:      "Poll attempts that ended in an error",
		}),
		attachments: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_attachments_total",
			Help:      "Stores attached to the debug server",
		}),
	}
}

// Refreshed records a refresh callback for panel.
func (m *Metrics) Refreshed(panel string) {
	m.refreshes.WithLabelValues(panel).Inc()
}

// SelectorFailed records a selector error surfaced by panel.
func (m *Metrics) SelectorFailed(panel string) {
	m.selectorErrors.WithLabelValues(panel).Inc()
}

// PollFailed records a failed poll.
func (m *Metrics) PollFailed() {
	m.pollFailures.Inc()
}
