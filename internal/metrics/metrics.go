// Package metrics exposes Prometheus metrics for plan execution.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	nodeResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ccfleet",
			Subsystem: "plan",
			Name:      "node_results_total",
			Help:      "Total number of plan node executions by result",
		},
		[]string{"node", "result"},
	)

	nodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ccfleet",
			Subsystem: "plan",
			Name:      "node_duration_seconds",
			Help:      "Duration of plan node execution in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
		[]string{"node"},
	)

	registrationsApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ccfleet",
			Subsystem: "registration",
			Name:      "targets_total",
			Help:      "Total number of target registrations applied by operation",
		},
		[]string{"operation"}, // register | deregister
	)

	ignoredSlots = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ccfleet",
			Subsystem: "registration",
			Name:      "ignored_slots_total",
			Help:      "Populated address slots ignored because the size class does not consume them",
		},
	)

	validationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ccfleet",
			Subsystem: "validation",
			Name:      "failures_total",
			Help:      "Size class / compute profile compatibility failures",
		},
	)
)

func init() {
	prometheus.MustRegister(
		nodeResults,
		nodeDuration,
		registrationsApplied,
		ignoredSlots,
		validationFailures,
	)
}

// NodeFinished records the result and duration of one plan node run.
func NodeFinished(node, result string, elapsed time.Duration) {
	nodeResults.WithLabelValues(node, result).Inc()
	nodeDuration.WithLabelValues(node).Observe(elapsed.Seconds())
}

// TargetsRegistered records applied registrations.
func TargetsRegistered(n int) {
	registrationsApplied.WithLabelValues("register").Add(float64(n))
}

// TargetsDeregistered records removed registrations.
func TargetsDeregistered(n int) {
	registrationsApplied.WithLabelValues("deregister").Add(float64(n))
}

// SlotIgnored records one ignored address slot.
func SlotIgnored() {
	ignoredSlots.Inc()
}

// ValidationFailed records one compatibility-gate refusal.
func ValidationFailed() {
	validationFailures.Inc()
}
