package tmdb

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marquee",
		Subsystem: "tmdb",
		Name:      "requests_total",
		Help:      "Upstream TMDB requests by endpoint and response code.",
	}, []string{"endpoint", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "marquee",
		Subsystem: "tmdb",
		Name:      "request_duration_seconds",
		Help:      "Latency of upstream TMDB requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marquee",
		Subsystem: "tmdb",
		Name:      "cache_hits_total",
		Help:      "TMDB calls answered from the freshness cache.",
	}, []string{"endpoint"})
)
