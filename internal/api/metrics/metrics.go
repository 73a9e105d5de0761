// Package metrics defines and registers the custom Prometheus metrics of the
// profile portal. It is the single source of truth for metric names, labels
// and help strings.
//
// Metrics register with the default registry on import; the HTTP layer
// exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Authentication ───────────────────────────────────────────────────────────

// AuthAttemptsTotal counts resolved login attempts.
// Labels:
//   - source: "web", "api" or "cli"
//   - outcome: "success", "unknown_identifier" or "wrong_secret"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of resolved login attempts.",
	},
	[]string{"source", "outcome"},
)

// AuthDuration measures submit-to-outcome time, simulated latency included.
var AuthDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "auth_duration_seconds",
		Help:      "Time from form submission until the authentication outcome resolved.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 1.5, 2, 5},
	},
	[]string{"source"},
)

// FormValidationErrorsTotal counts required-field failures caught before any
// authentication call.
// Label:
//   - field: "login" or "password"
var FormValidationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "form_validation_errors_total",
		Help:      "Total number of client-side validation failures, by field.",
	},
	[]string{"field"},
)

// ── Sessions ─────────────────────────────────────────────────────────────────

// SessionsIssuedTotal counts issued sessions.
// Label:
//   - remember: "true" when the user asked to keep the session
var SessionsIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of login sessions issued.",
	},
	[]string{"remember"},
)

// LogoutsTotal counts logouts.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logouts.",
	},
)

// ── Attempt journal ──────────────────────────────────────────────────────────

// JournalQueueDepth tracks pending records per journal worker.
// Label:
//   - worker_id: numeric worker index
var JournalQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "journal_queue_depth",
		Help:      "Current number of attempt records pending in each journal worker channel.",
	},
	[]string{"worker_id"},
)

// JournalDroppedTotal counts records dropped because a worker queue was full.
var JournalDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "journal_dropped_total",
		Help:      "Total number of attempt records dropped on a full queue.",
	},
)

// JournalWriteErrorsTotal counts records the repository failed to persist.
var JournalWriteErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "journal_write_errors_total",
		Help:      "Total number of attempt records that failed to persist.",
	},
)
