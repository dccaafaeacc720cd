package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		editRetriesTotal,
		videoPollsTotal,
		operationLatencyMs,
	)
}

var (
	editRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genmedia_edit_retries_total",
			Help: "Edit attempts that came back without an image part, per operation.",
		},
		[]string{"op"},
	)

	videoPollsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "genmedia_video_polls_total",
			Help: "Status polls issued against in-flight video jobs.",
		},
	)

	operationLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "genmedia_operation_latency_ms",
			Help:    "End-to-end operation latency in milliseconds, including retries and polling.",
			Buckets: []float64{250, 500, 1000, 2500, 5000, 15000, 30000, 60000, 180000, 600000},
		},
		[]string{"op", "success"},
	)
)

func IncEditRetry(op string) {
	editRetriesTotal.WithLabelValues(norm(op)).Inc()
}

func IncVideoPoll() {
	videoPollsTotal.Inc()
}

func ObserveOperation(op string, elapsed time.Duration, success bool) {
	operationLatencyMs.WithLabelValues(norm(op), strconv.FormatBool(success)).
		Observe(float64(elapsed / time.Millisecond))
}
