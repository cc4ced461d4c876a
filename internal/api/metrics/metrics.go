// Package metrics defines and registers all custom Prometheus metrics for the
// PokerFace networking API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics use promauto, so importing the package registers them with the
// default Prometheus registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pokerface"

// ── Reveal protocol metrics ───────────────────────────────────────────────────

// RevealRequestsTotal counts reveal requests by how they resolved at creation.
// Labels:
//   - result: "created" (new pending request) or "duplicate" (idempotent replay)
var RevealRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reveal_requests_total",
		Help:      "Total number of reveal requests received, by creation result.",
	},
	[]string{"result"},
)

// RevealResponsesTotal counts owner responses to reveal requests.
// Label:
//   - outcome: "accepted" or "declined"
var RevealResponsesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reveal_responses_total",
		Help:      "Total number of reveal request responses, by outcome.",
	},
	[]string{"outcome"},
)

// MatchesAnnouncedTotal counts mutual-reveal match announcements. Each user
// pair contributes at most one increment, ever.
var MatchesAnnouncedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "matches_announced_total",
		Help:      "Total number of mutual-reveal matches announced.",
	},
)

// ── Table metrics ─────────────────────────────────────────────────────────────

// TableJoinsTotal counts join attempts.
// Label:
//   - result: "joined", "full", or "closed"
var TableJoinsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "table_joins_total",
		Help:      "Total number of table join attempts, by result.",
	},
	[]string{"result"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsEmittedTotal counts notifications persisted to user feeds.
// Label:
//   - kind: notification kind (e.g. "reveal_request", "match")
var NotificationsEmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_emitted_total",
		Help:      "Total number of notifications delivered to user feeds, by kind.",
	},
	[]string{"kind"},
)

// NotificationQueueDepth tracks the number of notifications waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationDeliveryDuration measures how long one notification takes from
// dequeue to persistence.
// Label:
//   - kind: notification kind
var NotificationDeliveryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_delivery_duration_seconds",
		Help:      "Duration of notification delivery from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"kind"},
)
