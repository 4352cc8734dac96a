// Package metrics defines and registers all custom Prometheus metrics for the
// marketplace identity API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package init
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// ── Login metrics ─────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Labels:
//   - result: "success", "invalid_credentials" or "error"
//   - role: the resolved role on success, empty otherwise
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result and role.",
	},
	[]string{"result", "role"},
)

// LoginDuration measures how long a login request takes, credential hashing
// and session creation included.
var LoginDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of login handling from request to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// LogoutsTotal counts successful logouts.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of sessions ended by logout.",
	},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of login events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of login events pending in each audit worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsDroppedTotal counts events discarded because a worker queue was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of login events dropped on a full audit queue.",
	},
)

// AuditWriteErrorsTotal counts events the audit store refused.
var AuditWriteErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_errors_total",
		Help:      "Total number of login events that failed to persist.",
	},
)
