// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Surfaces an estimate can be requested through.
const (
	SurfaceWorker = "worker"
	SurfaceHTTP   = "http"
	SurfaceCLI    = "cli"
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

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	EstimatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "housing_estimates_total",
			Help: "Total number of price estimates by strategy and surface",
		},
		[]string{"strategy", "surface"},
	)

	EstimatedPrice = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "housing_estimated_price_dollars",
			Help:    "Distribution of point estimates in dollars",
			Buckets: prometheus.LinearBuckets(50000, 100000, 15),
		},
		[]string{"strategy"},
	)

	ArtifactLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_artifact_loads_total",
			Help: "Model artifact load attempts by source type and outcome",
		},
		[]string{"source", "status"},
	)
)

// ObserveEstimate records one completed estimate.
func ObserveEstimate(strategy, surface string, price int) {
	EstimatesTotal.WithLabelValues(strategy, surface).Inc()
	EstimatedPrice.WithLabelValues(strategy).Observe(float64(price))
}
