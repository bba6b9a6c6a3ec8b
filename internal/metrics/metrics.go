package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// confidenceBuckets is part of the exported metric contract; dashboards
// depend on these exact bounds.
var confidenceBuckets = []float64{0.1, 0.3, 0.5, 0.7, 0.9, 1.0}

// Recorder owns every metric the service exports. One instance is built at
// startup and shared by all requests; tests build their own so observations
// don't leak between cases. The prometheus types handle concurrent updates.
type Recorder struct {
	registry *prometheus.Registry

	Requests    prometheus.Counter
	Errors      prometheus.Counter
	FeedbackYes prometheus.Counter
	FeedbackNo  prometheus.Counter
	Latency     prometheus.Histogram
	Confidence  prometheus.Histogram
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		Requests: factory.NewCounter(prometheus.CounterOpts{
			Name: "prediction_requests_total",
			Help: "Total number of prediction requests",
		}),
		Errors: factory.NewCounter(prometheus.CounterOpts{
			Name: "prediction_errors_total",
			Help: "Total number of failed prediction requests",
		}),
		FeedbackYes: factory.NewCounter(prometheus.CounterOpts{
			Name: "feedback_yes_total",
			Help: "Total number of positive feedback responses",
		}),
		FeedbackNo: factory.NewCounter(prometheus.CounterOpts{
			Name: "feedback_no_total",
			Help: "Total number of negative feedback responses",
		}),
		Latency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "prediction_latency_seconds",
			Help:    "Time taken to run prediction",
			Buckets: prometheus.DefBuckets,
		}),
		Confidence: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "prediction_confidence",
			Help:    "Top-1 confidence of predictions",
			Buckets: confidenceBuckets,
		}),
	}
}

// Handler serves the registry in Prometheus text exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
