package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProductsCreated is a Prometheus counter for tracking the total number of products created.
	ProductsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "The total number of products created",
	})

	// ProductsDeleted is a Prometheus counter for tracking the total number of products deleted.
	ProductsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_deleted_total",
		Help: "The total number of products deleted",
	})

	// StockUpdates is a Prometheus counter for tracking successful stock updates.
	StockUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_updates_total",
		Help: "The total number of successful stock updates",
	})

	// VersionConflicts is a Prometheus counter for tracking rejected stale stock updates.
	VersionConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "version_conflicts_total",
		Help: "The total number of stock updates rejected with a version conflict",
	})
)
