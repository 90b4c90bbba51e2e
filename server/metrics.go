package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marquee",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Requests served, by route template and status code.",
	}, []string{"route", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "marquee",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Time spent serving requests, by route template.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)
