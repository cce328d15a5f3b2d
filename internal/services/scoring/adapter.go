package scoring

import (
	"context"
	"fmt"
	"math"

	"CreditLens/internal/domain/models"
	"CreditLens/internal/services/features"
	"CreditLens/pkg/util"
)

// DefaultThreshold separates the classes of a score-only model.
const DefaultThreshold = 0.5

// Adapter gives every model the same classify/score interface. The model's capability
// is resolved once at construction.
type Adapter struct {
	model      Model
	proba      ProbabilityModel
	eval       Evaluator
	capability Capability
	threshold  float64
}

// NewAdapter wraps m.
func NewAdapter(m Model) *Adapter {
	a := &Adapter{model: m, capability: ScoreOnly, threshold: DefaultThreshold}
	if p, ok := m.(ProbabilityModel); ok {
		a.proba = p
		a.capability = SupportsProbability
	}
	if e, ok := m.(Evaluator); ok {
		a.eval = e
	}
	return a
}

func (a *Adapter) Model() Model           { return a.model }
func (a *Adapter) Capability() Capability { return a.capability }

// Check verifies that v has the shape the model was trained on.
func (a *Adapter) Check(v features.Vector) error {
	if len(v.Values) != a.model.NumFeatures() {
		return fmt.Errorf("%w: model %q expects %d features, vector has %d (%s)",
			models.ErrSchemaMismatch, a.model.Name(), a.model.NumFeatures(), len(v.Values), models.SchemaMismatchHint)
	}
	names := a.model.FeatureNames()
	if len(names) == 0 || len(v.Columns) == 0 {
		return nil
	}
	if len(names) != len(v.Columns) {
		return fmt.Errorf("%w: model %q declares %d column names, vector has %d (%s)",
			models.ErrSchemaMismatch, a.model.Name(), len(names), len(v.Columns), models.SchemaMismatchHint)
	}
	for i := range names {
		if names[i] != v.Columns[i] {
			return fmt.Errorf("%w: model %q column %d is %q, vector has %q (%s)",
				models.ErrSchemaMismatch, a.model.Name(), i, names[i], v.Columns[i], models.SchemaMismatchHint)
		}
	}
	return nil
}

// Classify returns the predicted class. Probability models report their own label;
// other models are thresholded at DefaultThreshold.
func (a *Adapter) Classify(ctx context.Context, v features.Vector) (Label, error) {
	if err := a.Check(v); err != nil {
		return 0, err
	}
	s, err := a.model.Predict(ctx, v.Values)
	if err != nil {
		return 0, fmt.Errorf("predict: %w", err)
	}
	return a.label(s)
}

// Score returns [p0, p1]. Models without probabilities get [1-clip(s), clip(s)].
func (a *Adapter) Score(ctx context.Context, v features.Vector) ([2]float64, error) {
	if err := a.Check(v); err != nil {
		return [2]float64{}, err
	}
	if a.proba != nil {
		return a.modelPair(ctx, v.Values)
	}
	s, err := a.model.Predict(ctx, v.Values)
	if err != nil {
		return [2]float64{}, fmt.Errorf("predict: %w", err)
	}
	if math.IsNaN(s) {
		return [2]float64{}, fmt.Errorf("model %q returned NaN", a.model.Name())
	}
	return SynthesizePair(s), nil
}

// Evaluate returns label and probabilities together.
func (a *Adapter) Evaluate(ctx context.Context, v features.Vector) (Outcome, error) {
	if err := a.Check(v); err != nil {
		return Outcome{}, err
	}
	if a.eval != nil {
		return a.evaluateOnce(ctx, v.Values)
	}
	s, err := a.model.Predict(ctx, v.Values)
	if err != nil {
		return Outcome{}, fmt.Errorf("predict: %w", err)
	}
	label, err := a.label(s)
	if err != nil {
		return Outcome{}, err
	}
	if a.proba == nil {
		return Outcome{Label: label, Probabilities: SynthesizePair(s), RawScore: s, Synthesized: true}, nil
	}
	pair, err := a.modelPair(ctx, v.Values)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Label: label, Probabilities: pair, RawScore: pair[1]}, nil
}

func (a *Adapter) evaluateOnce(ctx context.Context, x []float64) (Outcome, error) {
	s, p, err := a.eval.Evaluate(ctx, x)
	if err != nil {
		return Outcome{}, fmt.Errorf("evaluate: %w", err)
	}
	label, err := a.label(s)
	if err != nil {
		return Outcome{}, err
	}
	pair, err := a.normalizePair(p)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Label: label, Probabilities: pair, RawScore: pair[1]}, nil
}

func (a *Adapter) label(s float64) (Label, error) {
	if math.IsNaN(s) {
		return 0, fmt.Errorf("model %q returned NaN", a.model.Name())
	}
	if a.capability == ScoreOnly {
		if s >= a.threshold {
			return LabelPositive, nil
		}
		return LabelNegative, nil
	}
	switch s {
	case 0:
		return LabelNegative, nil
	case 1:
		return LabelPositive, nil
	default:
		return 0, fmt.Errorf("model %q returned class %v, want 0 or 1", a.model.Name(), s)
	}
}

func (a *Adapter) modelPair(ctx context.Context, x []float64) ([2]float64, error) {
	p, err := a.proba.PredictProba(ctx, x)
	if err != nil {
		return [2]float64{}, fmt.Errorf("predict proba: %w", err)
	}
	return a.normalizePair(p)
}

// normalizePair clips p to [0,1] and rescales it to sum to 1.
func (a *Adapter) normalizePair(p []float64) ([2]float64, error) {
	if len(p) != 2 {
		return [2]float64{}, fmt.Errorf("model %q returned %d probabilities, want 2", a.model.Name(), len(p))
	}
	p0, p1 := clip(p[0]), clip(p[1])
	if math.IsNaN(p[0]) || math.IsNaN(p[1]) || p0+p1 == 0 {
		return [2]float64{}, fmt.Errorf("model %q returned invalid probabilities %v", a.model.Name(), p)
	}
	sum := p0 + p1
	return [2]float64{p0 / sum, 1 - p0/sum}, nil
}

// SynthesizePair turns a raw score into a probability pair.
func SynthesizePair(s float64) [2]float64 {
	c := clip(s)
	return [2]float64{1 - c, c}
}

func clip(v float64) float64 { return util.Clamp(v, 0, 1) }
