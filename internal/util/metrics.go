package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders placed",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Total number of failed order placements",
	}, []string{"reason"})

	StockConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_conflicts_total",
		Help: "Total number of orders rejected for insufficient stock",
	})

	OrderPlacementLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_placement_latency_seconds",
		Help:    "Latency of order placement transactions",
		Buckets: prometheus.DefBuckets,
	})

	ProductViewsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "product_views_total",
		Help: "Total number of product detail views",
	})

	ViewsFlushedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "views_flushed_total",
		Help: "Total number of view counts flushed to the database",
	})

	GuardRedirectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guard_redirects_total",
		Help: "Total number of requests redirected by the route guard",
	}, []string{"target"})

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
