package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeRejected  = "rejected"
	OutcomeTransport = "transport_error"
)

var (
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_upstream_requests_total",
			Help: "Total number of calls to upstream services",
		},
		[]string{"service", "outcome"},
	)

	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_upstream_request_duration_seconds",
			Help:    "Duration of calls to upstream services",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2, 5, 10},
		},
		[]string{"service"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "Total number of HTTP requests served by the portal",
		},
		[]string{"method", "status"},
	)

	dashboardPartialLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_dashboard_skipped_aggregates_total",
			Help: "Dashboard aggregates left at their previous value because the fetch failed",
		},
		[]string{"aggregate"},
	)
)

// ObserveUpstream records one upstream call.
func ObserveUpstream(service, outcome string, elapsed time.Duration) {
	upstreamRequestsTotal.WithLabelValues(service, outcome).Inc()
	upstreamRequestDuration.WithLabelValues(service).Observe(elapsed.Seconds())
}

// ObserveHTTP records one served request.
func ObserveHTTP(method, status string) {
	httpRequestsTotal.WithLabelValues(method, status).Inc()
}

// SkippedAggregate records a dashboard aggregate that failed to load.
func SkippedAggregate(name string) {
	dashboardPartialLoads.WithLabelValues(name).Inc()
}
