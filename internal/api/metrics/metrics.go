// Package metrics defines and registers all custom Prometheus metrics for the
// trainer API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default Prometheus registry on package init via
// promauto; /metrics exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "coach"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - op: "register" or "login"
//   - result: "success", "failure" (bad credentials) or "conflict" (duplicate username)
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts, by outcome.",
	},
	[]string{"op", "result"},
)

// ── Roster metrics ────────────────────────────────────────────────────────────

// ClientsCreatedTotal counts newly created clients.
var ClientsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clients_created_total",
		Help:      "Total number of clients created.",
	},
)

// TemplatesCreatedTotal counts newly created workout templates.
var TemplatesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "templates_created_total",
		Help:      "Total number of workout templates created.",
	},
)

// TemplateAssignmentsTotal counts template-to-client assignments.
// Label:
//   - result: "created", "replayed" (idempotency key hit) or "failed"
var TemplateAssignmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "template_assignments_total",
		Help:      "Total number of template assignments, by result.",
	},
	[]string{"result"},
)

// WorkoutUpdatesTotal counts full client-workout replacements.
// Label:
//   - result: "updated" or "failed" (transaction rolled back)
var WorkoutUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workout_updates_total",
		Help:      "Total number of client workout updates, by result.",
	},
	[]string{"result"},
)

// LogEntriesCreatedTotal counts appended client log entries.
// Label:
//   - kind: "message" or "metric"
var LogEntriesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "log_entries_created_total",
		Help:      "Total number of client messages and metrics recorded.",
	},
	[]string{"kind"},
)
