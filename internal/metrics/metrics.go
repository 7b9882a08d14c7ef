package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swn_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "swn_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	OCRJobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swn_ocr_jobs_total",
		Help: "Receipt extraction jobs by outcome.",
	}, []string{"outcome"})

	WebsocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "swn_websocket_clients",
		Help: "Connected notification websocket clients.",
	})
)
