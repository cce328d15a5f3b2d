package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	predictions     *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	scalingWarnings *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	latency         *prometheus.HistogramVec
}

// New creates a Prometheus metrics recorder registered on reg. A nil reg
// uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		predictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditlens_predictions_total",
				Help: "Total number of predictions by model and label",
			},
			[]string{"model", "label"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditlens_errors_total",
				Help: "Total number of pipeline errors by kind",
			},
			[]string{"type"},
		),
		scalingWarnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditlens_scaling_warnings_total",
				Help: "Predictions made with unscaled input for a model that expects scaling",
			},
			[]string{"model"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditlens_prediction_cache_lookups_total",
				Help: "Prediction cache lookups by result",
			},
			[]string{"result"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "creditlens_operation_duration_seconds",
				Help:    "Duration of pipeline operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
	reg.MustRegister(r.predictions, r.errorsTotal, r.scalingWarnings, r.cacheLookups, r.latency)
	return r
}

// RecordPrediction counts a prediction.
func (r *Recorder) RecordPrediction(model, label string) {
	r.predictions.WithLabelValues(model, label).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordScalingWarning counts a prediction served without the scaler a model expects.
func (r *Recorder) RecordScalingWarning(model string) {
	r.scalingWarnings.WithLabelValues(model).Inc()
}

// RecordCacheResult counts a prediction cache lookup.
func (r *Recorder) RecordCacheResult(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// LabelString formats a class label for metric labels.
func LabelString(label int) string { return strconv.Itoa(label) }
