package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CatalogTotalRequests is the total number of catalog lookups.
	CatalogTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launcherbot_catalog_total_requests",
			Help: "Total number of catalog lookups",
		},
		[]string{"endpoint", "status_code"},
	)

	// CatalogLatency is the duration of catalog lookups.
	CatalogLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "launcherbot_catalog_latency",
			Help: "Duration of catalog lookups",
		},
		[]string{"endpoint"},
	)
)
