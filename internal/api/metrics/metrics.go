// Package metrics defines and registers all custom Prometheus metrics for the
// resource API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at package
// init via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "resourceapi"

// AuthzDecisionsTotal counts authorization decisions.
// Labels:
//   - action: list, retrieve, create, update, delete
//   - role: admin, manager, user (or the unknown value presented)
//   - decision: "allow" or "deny"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization decisions, by action, role, and outcome.",
	},
	[]string{"action", "role", "decision"},
)

// AuthFailuresTotal counts requests rejected by the identity resolver.
// Label:
//   - reason: missing_credential, malformed_header, invalid_token,
//     wrong_token_type, inactive_account
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected during credential resolution.",
	},
	[]string{"reason"},
)

// ResourceMutationsTotal counts permitted mutations on the resource collection.
// Label:
//   - action: create, update, delete
var ResourceMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resource_mutations_total",
		Help:      "Total number of resource mutations that passed authorization.",
	},
	[]string{"action"},
)

// AuditQueueDepth tracks the number of audit events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditWriteErrorsTotal counts audit events that failed to persist.
var AuditWriteErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_errors_total",
		Help:      "Total number of audit events that could not be written to the store.",
	},
)
