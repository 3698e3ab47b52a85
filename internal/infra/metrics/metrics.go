package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_updates_total",
		Help: "Processed Telegram updates by kind.",
	}, []string{"kind"})

	ReportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_reports_total",
		Help: "Sales report requests by outcome.",
	}, []string{"outcome"})

	ReportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bot_report_duration_seconds",
		Help:    "Time to fetch and aggregate one sales report.",
		Buckets: prometheus.DefBuckets,
	})
)
