package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MessagesAppended = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "zip_messages_appended_total",
			Help: "Total chat messages appended",
		},
	)

	SummariesRequested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "zip_summaries_requested_total",
			Help: "Total summarizations dispatched to the engine",
		},
	)

	SummariesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zip_summaries_rejected_total",
			Help: "Summarization submissions that were not dispatched",
		},
		[]string{"reason"}, // "parse", "busy", "no_engine", "empty"
	)

	SummariesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zip_summaries_completed_total",
			Help: "Summarizations completed",
		},
		[]string{"status"}, // "ok" or "error"
	)

	InferenceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "zip_inference_duration_seconds",
			Help:    "Time spent waiting for the engine",
			Buckets: []float64{.5, 1, 2, 5, 10, 20, 40, 80, 160},
		},
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
