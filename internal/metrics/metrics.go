// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nexora",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nexora",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "nexora",
		Name:      "ws_connections_active",
		Help:      "Open realtime connections.",
	})

	WSFrames = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nexora",
		Name:      "ws_frames_total",
		Help:      "Inbound realtime frames by type.",
	}, []string{"type"})

	WSTerminations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "nexora",
		Name:      "ws_liveness_terminations_total",
		Help:      "Connections closed because a liveness probe went unanswered.",
	})
)
