package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProductsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bakery_products_added_total",
		Help: "Total number of products added to the catalog",
	})

	ProductsUpdatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bakery_products_updated_total",
		Help: "Total number of product updates applied",
	})

	ProductsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bakery_products_deleted_total",
		Help: "Total number of products removed from the catalog",
	})

	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bakery_orders_placed_total",
		Help: "Total number of orders placed",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bakery_orders_failed_total",
		Help: "Total number of rejected orders",
	}, []string{"reason"})

	UnitsSoldTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bakery_units_sold_total",
		Help: "Total number of units recorded in the sales ledger",
	})

	StockAdjustmentsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bakery_stock_adjustments_rejected_total",
		Help: "Total number of stock adjustments refused",
	}, []string{"reason"})

	PersistenceFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bakery_persistence_failures_total",
		Help: "Total number of snapshot writes that failed",
	}, []string{"file"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
