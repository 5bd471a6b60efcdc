package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	assignmentConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "talentflow_assignment_conflicts_total",
			Help: "Ownership write conflicts rejected by conditional updates.",
		},
		[]string{"operation"},
	)

	broadcastsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "talentflow_broadcasts_total",
			Help: "Realtime fan-out attempts by event name and outcome.",
		},
		[]string{"event", "outcome"},
	)
)

func RecordAssignmentConflict(operation string) {
	assignmentConflicts.WithLabelValues(operation).Inc()
}

func RecordBroadcast(event string, delivered bool) {
	outcome := "delivered"
	if !delivered {
		outcome = "dropped"
	}
	broadcastsTotal.WithLabelValues(event, outcome).Inc()
}
