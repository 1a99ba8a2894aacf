package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	lectureAPI = "lecture_api"

	lecturesProcessedTotal     = "lectures_processed_total"
	lectureProcessingSeconds   = "lecture_processing_duration_seconds"
	enrichmentTaskFailuresName = "enrichment_task_failures_total"

	statusLabel = "status"
	taskLabel   = "task"
)

var lecturesProcessedTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: lectureAPI,
		Name:      lecturesProcessedTotal,
		Help:      "number of lecture jobs that reached a terminal state",
	},
	[]string{statusLabel},
)

var lectureProcessingSecondsMetric = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Subsystem: lectureAPI,
		Name:      lectureProcessingSeconds,
		Help:      "time spent processing one lecture from extraction through enrichment",
		Buckets:   []float64{1, 5, 15, 30, 60, 120, 300},
	},
	[]string{statusLabel},
)

var enrichmentTaskFailuresMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: lectureAPI,
		Name:      enrichmentTaskFailuresName,
		Help:      "number of enrichment sub-task failures partitioned by task",
	},
	[]string{taskLabel},
)

func IncreaseLecturesProcessedTotalMetric(status string) {
	lecturesProcessedTotalMetric.With(prometheus.Labels{statusLabel: status}).Inc()
}

func ObserveLectureProcessingDuration(status string, seconds float64) {
	lectureProcessingSecondsMetric.With(prometheus.Labels{statusLabel: status}).Observe(seconds)
}

func IncreaseEnrichmentTaskFailureMetric(task string) {
	enrichmentTaskFailuresMetric.With(prometheus.Labels{taskLabel: task}).Inc()
}

// NewPrometheusMetricsHandler serves the default registry.
func NewPrometheusMetricsHandler() http.Handler {
	return promhttp.Handler()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(lecturesProcessedTotalMetric)
	prometheus.MustRegister(lectureProcessingSecondsMetric)
	prometheus.MustRegister(enrichmentTaskFailuresMetric)
}
