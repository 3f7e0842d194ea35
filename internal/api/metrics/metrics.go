// Package metrics defines all custom Prometheus metrics for the hierarchy
// API. It is the single source of truth for metric names, labels, and help
// strings; metrics register themselves with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hierarchy"

// UsersRegisteredTotal counts successful registrations.
// Label:
//   - role: "Administrator" or "Regular User"
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of users registered, by role.",
	},
	[]string{"role"},
)

// AuthAttemptsTotal counts authentication attempts.
// Label:
//   - result: "ok" or "invalid_credentials"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by result.",
	},
	[]string{"result"},
)

// BossChangesTotal counts boss-reassignment requests that reached the core.
// Label:
//   - result: "ok" or "rejected"
var BossChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "boss_changes_total",
		Help:      "Total number of boss reassignments, by result.",
	},
	[]string{"result"},
)

// CycleDetectedTotal counts forest-invariant violations observed during
// traversals. Any non-zero value is a data-integrity fault.
var CycleDetectedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cycle_detected_total",
		Help:      "Total number of boss-hierarchy cycles detected during traversals.",
	},
)

// SubtreeFetchDuration measures full-subtree enumeration latency.
var SubtreeFetchDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "subtree_fetch_duration_seconds",
		Help:      "Duration of transitive subordinate enumeration.",
		Buckets:   prometheus.DefBuckets,
	},
)
