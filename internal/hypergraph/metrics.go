package hypergraph

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "hgx"
	subsystem        = "hypergraph"
)

var (
	// OperationsTotal counts public operations by name and outcome.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "operations_total",
			Help:      "Total number of hypergraph operations",
		},
		[]string{"op", "status"}, // status: success, error
	)

	// EdgeOrder records the order of every newly inserted edge.
	EdgeOrder = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "edge_order",
			Help:      "Order of inserted hyperedges",
			Buckets:   prometheus.LinearBuckets(2, 1, 9),
		},
	)

	CascadeRemovedEdges = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "cascade_removed_edges_total",
			Help:      "Total number of edges removed by node cascades",
		},
	)

	ShrunkEdges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "shrunk_edges_total",
			Help:      "Total number of edges rewritten by node shrinks",
		},
		[]string{"outcome"}, // migrated, merged, dropped
	)
)
