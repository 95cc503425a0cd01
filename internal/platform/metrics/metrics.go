package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsAdmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rgbfaucet_requests_admitted_total",
			Help: "Total number of distribution requests accepted into the queue",
		},
		[]string{"asset_group"},
	)

	RequestsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rgbfaucet_requests_rejected_total",
			Help: "Total number of distribution requests rejected at admission",
		},
		[]string{"reason"},
	)

	BatchesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rgbfaucet_batches_sent_total",
		Help: "Total number of on-chain send batches dispatched",
	})

	RequestsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rgbfaucet_requests_sent_total",
		Help: "Total number of requests moved from pending to sent",
	})

	CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rgbfaucet_cycle_duration_seconds",
		Help:    "Duration of one scheduler cycle (send plus reconcile)",
		Buckets: prometheus.DefBuckets,
	})

	SchedulerPaused = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rgbfaucet_scheduler_paused",
		Help: "Whether the batch scheduler is paused (1=paused, 0=running)",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rgbfaucet_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "status"},
	)
)
