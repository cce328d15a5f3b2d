package scoring

import (
	"context"
	"fmt"
)

// Model is a pre-trained estimator over a fixed-width feature vector. Predict returns
// the class label for classifiers and a continuous score for regressors.
type Model interface {
	Name() string
	Kind() string
	NumFeatures() int
	FeatureNames() []string
	RequiresScaling() bool
	Predict(ctx context.Context, x []float64) (float64, error)
}

// ProbabilityModel is a Model that can also return class probabilities.
type ProbabilityModel interface {
	Model
	PredictProba(ctx context.Context, x []float64) ([]float64, error)
}

// Evaluator is a ProbabilityModel that answers class and probabilities from a
// single inference.
type Evaluator interface {
	ProbabilityModel
	Evaluate(ctx context.Context, x []float64) (class float64, proba []float64, err error)
}

// Capability records whether a model exposes class probabilities.
type Capability int

const (
	ScoreOnly Capability = iota
	SupportsProbability
)

func (c Capability) String() string {
	if c == SupportsProbability {
		return "probability"
	}
	return "score_only"
}

// CapabilityOf resolves the capability of m.
func CapabilityOf(m Model) Capability {
	if _, ok := m.(ProbabilityModel); ok {
		return SupportsProbability
	}
	return ScoreOnly
}

// Label is the binary class of a prediction.
type Label int

const (
	LabelNegative Label = 0
	LabelPositive Label = 1
)

// Outcome is the full result of evaluating one vector.
type Outcome struct {
	Label         Label
	Probabilities [2]float64
	RawScore      float64
	// Synthesized is set when the pair was derived from a raw score.
	Synthesized bool
}

// meta carries the fields every model asset declares.
type meta struct {
	KindName  string   `json:"kind"`
	ModelName string   `json:"name"`
	Features  []string `json:"features,omitempty"`
	Width     int      `json:"num_features,omitempty"`
	Scaled    bool     `json:"requires_scaling"`
}

func (m *meta) Name() string           { return m.ModelName }
func (m *meta) Kind() string           { return m.KindName }
func (m *meta) NumFeatures() int       { return m.Width }
func (m *meta) RequiresScaling() bool  { return m.Scaled }
func (m *meta) FeatureNames() []string { return m.Features }

// resolve settles the declared width against the feature list and the parameter count.
func (m *meta) resolve(name string, params int) error {
	if m.ModelName == "" {
		m.ModelName = name
	}
	if len(m.Features) > 0 {
		if m.Width != 0 && m.Width != len(m.Features) {
			return fmt.Errorf("%s: num_features %d but %d feature names", m.KindName, m.Width, len(m.Features))
		}
		m.Width = len(m.Features)
	}
	if params > 0 {
		if m.Width != 0 && m.Width != params {
			return fmt.Errorf("%s: num_features %d but %d coefficients", m.KindName, m.Width, params)
		}
		m.Width = params
	}
	if m.Width <= 0 {
		return fmt.Errorf("%s: feature count is unknown", m.KindName)
	}
	return nil
}

func (m *meta) checkWidth(x []float64) error {
	if len(x) != m.Width {
		return fmt.Errorf("%s %q expects %d features, got %d", m.KindName, m.ModelName, m.Width, len(x))
	}
	return nil
}
