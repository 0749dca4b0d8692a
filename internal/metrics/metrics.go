package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestTotal counts HTTP requests by method, route pattern and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restaurant_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "restaurant_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	// InquiriesTotal counts form submissions by kind and outcome.
	InquiriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restaurant_inquiries_total",
			Help: "Total number of form submissions",
		},
		[]string{"kind", "outcome"},
	)
	// MenuQueriesTotal counts menu derivations by sort mode.
	MenuQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restaurant_menu_queries_total",
			Help: "Total number of menu queries",
		},
		[]string{"sort"},
	)
	// CatalogDishes is the number of dishes in the loaded catalog.
	CatalogDishes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "restaurant_catalog_dishes",
			Help: "Number of dishes in the loaded catalog",
		},
	)
)
