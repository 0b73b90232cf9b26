// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	IntentService    = "service"
	IntentNotService = "not_service"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "neptune_searches_total",
			Help: "Searches handled by the facade, by detected intent",
		},
		[]string{"intent"},
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "neptune_search_duration_seconds",
			Help:    "Wall time of a facade search including the simulated delay",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 1.5, 2, 5},
		},
	)

	NeptuneScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "neptune_score",
			Help:    "Distribution of computed Neptune Scores",
			Buckets: []float64{40, 55, 70, 85, 95, 100},
		},
	)
)

// IntentLabel maps a classifier verdict to the SearchesTotal label.
func IntentLabel(isServiceQuery bool) string {
	if isServiceQuery {
		return IntentService
	}
	return IntentNotService
}
