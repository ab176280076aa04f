// Package metrics defines and registers all custom Prometheus metrics for
// the community API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "community"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid", "banned", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "invalid_key", "username_taken", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// KeysIssuedTotal counts registration keys issued by admins.
var KeysIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registration_keys_issued_total",
		Help:      "Total number of registration keys issued.",
	},
)

// PostsCreatedTotal counts created posts.
// Label:
//   - category: "ANNOUNCEMENT", "SCRIPT", or "MODEL"
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created, by category.",
	},
	[]string{"category"},
)

// PostsDeletedTotal counts posts removed by moderators.
var PostsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_deleted_total",
		Help:      "Total number of posts deleted by moderators.",
	},
)

// GenerationRequestsTotal counts generative content calls.
// Label:
//   - kind: "idea" or "draft"
var GenerationRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generation_requests_total",
		Help:      "Total number of generative content requests, by kind.",
	},
	[]string{"kind"},
)
