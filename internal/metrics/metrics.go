package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Метрики приема отчетов
	ReportsMerged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wellsfug_reports_merged_total",
			Help: "Total number of position reports merged into the snapshot store",
		},
	)

	ReportsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wellsfug_reports_skipped_total",
			Help: "Total number of malformed position reports skipped",
		},
	)

	// Метрики загрузки из внешних источников
	FetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellsfug_fetch_errors_total",
			Help: "Total number of upstream fetch errors",
		},
		[]string{"source"},
	)

	FetchedReports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellsfug_fetched_reports_total",
			Help: "Total number of position reports fetched from upstream sources",
		},
		[]string{"source"},
	)

	// Метрики запусков анализа
	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wellsfug_run_duration_seconds",
			Help:    "Duration of a full batch run in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RigsAnalyzed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wellsfug_rigs_analyzed",
			Help: "Number of rigs in the latest analysis document",
		},
	)

	WellsTracked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wellsfug_wells_tracked",
			Help: "Number of wellbores in the latest registry fetch",
		},
	)

	// HTTP метрики сервера отображения
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wellsfug_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellsfug_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
)
