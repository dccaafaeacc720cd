package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(renderJobsTotal) }

var renderJobsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "render_jobs_total",
		Help: "Total number of async render jobs, labeled by final status.",
	},
	[]string{"status"}, // 'completed', 'failed'
)

func IncRenderJob(status string) {
	renderJobsTotal.WithLabelValues(norm(status)).Inc()
}
