// Package metrics defines the prometheus collectors for the backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DeletionsResolved counts resolved deletion requests by entity and action.
//
// The action label holds the effective action, so a group deletion without
// dependents that collapses into a cascade is counted as "deleteAll".
var DeletionsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "centavo",
	Name:      "deletions_resolved_total",
	Help:      "Number of resolved deletion requests by entity and action.",
}, []string{"entity", "action"})
