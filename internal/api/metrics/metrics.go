// Package metrics defines and registers all custom Prometheus metrics for the
// user service. It is the single source of truth for metric names, labels and
// help strings. Collectors register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "users"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts auth operations by outcome.
// Labels:
//   - operation: "register", "login" or "change_password"
//   - result: "success" or the domain error code (e.g. "InvalidCredentials")
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// TokenValidationsTotal counts Auth Guard decisions.
// Label:
//   - result: "ok", "missing", "expired", "invalid", "user_not_found", "inactive"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of bearer token checks, by result.",
	},
	[]string{"result"},
)

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersCreatedTotal counts committed user rows.
// Labels:
//   - role: catalog role name
//   - source: "register" or "admin"
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of users created, by role and source.",
	},
	[]string{"role", "source"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts user-created notifications by delivery result.
// Label:
//   - result: "published", "failed" or "dropped"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of user-created notifications, by result.",
	},
	[]string{"result"},
)

// NotificationQueueDepth is the number of events waiting for a dispatcher worker.
var NotificationQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in the dispatcher buffer.",
	},
)

// NotificationPublishDuration measures broker publish latency.
var NotificationPublishDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_publish_duration_seconds",
		Help:      "Duration of a single broker publish.",
		Buckets:   prometheus.DefBuckets,
	},
)
