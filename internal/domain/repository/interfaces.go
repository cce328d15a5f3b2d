package repository

// Metrics records pipeline outcomes.
type Metrics interface {
	RecordPrediction(model, label string)
	RecordError(kind string)
	RecordScalingWarning(model string)
	RecordCacheResult(hit bool)
	RecordLatency(op string, seconds float64)
}
