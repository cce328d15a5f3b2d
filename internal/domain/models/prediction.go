package models

import "time"

// Verdicts rendered for the two binary classes of each pipeline.
const (
	VerdictLowRisk      = "low_risk"
	VerdictHighRisk     = "high_risk"
	VerdictAuthentic    = "authentic"
	VerdictNotAuthentic = "not_authentic"
)

// Probability sources.
const (
	ProbabilityFromModel   = "model"
	ProbabilitySynthesized = "synthesized"
)

// FeatureVector is the exact row handed to the classifier.
type FeatureVector struct {
	Columns []string  `json:"columns"`
	Values  []float64 `json:"values"`
}

// PredictionResult is the verdict for a single request. Never persisted.
type PredictionResult struct {
	ID                string         `json:"id"`
	Model             string         `json:"model"`
	ModelKind         string         `json:"model_kind"`
	Pipeline          string         `json:"pipeline"`
	Label             int            `json:"label"`
	Verdict           string         `json:"verdict"`
	Probabilities     [2]float64     `json:"probabilities"`
	ProbabilitySource string         `json:"probability_source"`
	Confidence        float64        `json:"confidence"`
	RawScore          float64        `json:"raw_score"`
	DTI               *float64       `json:"dti,omitempty"`
	Grade             string         `json:"grade,omitempty"`
	SubGrade          string         `json:"sub_grade,omitempty"`
	Features          *FeatureVector `json:"features,omitempty"`
	Warnings          []string       `json:"warnings,omitempty"`
	Cached            bool           `json:"cached"`
	Timestamp         time.Time      `json:"timestamp"`
}

// ModelInfo describes a configured model variant and whether it can serve requests.
type ModelInfo struct {
	Name            string `json:"name"`
	File            string `json:"file"`
	Kind            string `json:"kind,omitempty"`
	Pipeline        string `json:"pipeline"`
	Capability      string `json:"capability,omitempty"`
	NumFeatures     int    `json:"num_features,omitempty"`
	RequiresScaling bool   `json:"requires_scaling"`
	ScalingEnabled  bool   `json:"scaling_enabled"`
	Ready           bool   `json:"ready"`
	Error           string `json:"error,omitempty"`
	Default         bool   `json:"default"`
}

// GradeResult is the derived grade for a debt-to-income ratio.
type GradeResult struct {
	DTI             float64 `json:"dti"`
	Grade           string  `json:"grade"`
	SubGrade        string  `json:"sub_grade"`
	GradeOrdinal    int     `json:"grade_ordinal"`
	SubGradeOrdinal int     `json:"sub_grade_ordinal"`
}
