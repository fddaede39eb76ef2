// Package metrics defines and registers all custom Prometheus metrics for the
// users API. It is the single source of truth for metric names, labels, and
// help strings. Registration happens at init via promauto; the echoprometheus
// middleware adds the generic HTTP request metrics on top.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "users_api"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", or "missing_credentials"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthFailuresTotal counts rejected requests on protected routes.
// Label:
//   - code: the stable error code (e.g. "TOKEN_EXPIRED", "INVALID_API_KEY")
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of authentication rejections, by error code.",
	},
	[]string{"code"},
)

// UsersCreatedTotal counts successfully created user records.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created.",
	},
)

// UsersDeletedTotal counts deleted user records.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of users deleted.",
	},
)
