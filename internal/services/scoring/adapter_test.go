package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"CreditLens/internal/domain/models"
	"CreditLens/internal/services/features"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct {
	name   string
	width  int
	names  []string
	score  float64
	scaled bool
	err    error
}

func (m *stubModel) Name() string           { return m.name }
func (m *stubModel) Kind() string           { return "stub" }
func (m *stubModel) NumFeatures() int       { return m.width }
func (m *stubModel) FeatureNames() []string { return m.names }
func (m *stubModel) RequiresScaling() bool  { return m.scaled }
func (m *stubModel) Predict(context.Context, []float64) (float64, error) {
	return m.score, m.err
}

type stubProbaModel struct {
	stubModel
	proba []float64
}

func (m *stubProbaModel) PredictProba(context.Context, []float64) ([]float64, error) {
	return m.proba, m.err
}

func vec(n int) features.Vector {
	v := features.Vector{Columns: make([]string, n), Values: make([]float64, n)}
	for i := range v.Columns {
		v.Columns[i] = fmt.Sprintf("f%d", i)
	}
	return v
}

func TestCapabilityResolvedOnce(t *testing.T) {
	assert.Equal(t, ScoreOnly, NewAdapter(&stubModel{width: 1}).Capability())
	assert.Equal(t, SupportsProbability, NewAdapter(&stubProbaModel{stubModel: stubModel{width: 1}}).Capability())
	assert.Equal(t, "probability", SupportsProbability.String())
	assert.Equal(t, "score_only", ScoreOnly.String())
}

func TestThresholdFallback(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		score float64
		label Label
		pair  [2]float64
	}{
		{score: -0.3, label: LabelNegative, pair: [2]float64{1, 0}},
		{score: 0.2, label: LabelNegative, pair: [2]float64{0.8, 0.2}},
		{score: 0.5, label: LabelPositive, pair: [2]float64{0.5, 0.5}},
		{score: 0.75, label: LabelPositive, pair: [2]float64{0.25, 0.75}},
		{score: 1.8, label: LabelPositive, pair: [2]float64{0, 1}},
	}
	for _, tc := range cases {
		a := NewAdapter(&stubModel{name: "lin", width: 3, score: tc.score})

		label, err := a.Classify(ctx, vec(3))
		require.NoError(t, err)
		assert.Equal(t, tc.label, label, "score %v", tc.score)

		pair, err := a.Score(ctx, vec(3))
		require.NoError(t, err)
		assert.InDelta(t, tc.pair[0], pair[0], 1e-12)
		assert.InDelta(t, tc.pair[1], pair[1], 1e-12)
		assert.InDelta(t, 1.0, pair[0]+pair[1], 1e-9)

		out, err := a.Evaluate(ctx, vec(3))
		require.NoError(t, err)
		assert.True(t, out.Synthesized)
		assert.Equal(t, tc.score, out.RawScore)
		assert.Equal(t, tc.label, out.Label)
	}
}

func TestProbabilityModelPair(t *testing.T) {
	a := NewAdapter(&stubProbaModel{stubModel: stubModel{width: 2, score: 1}, proba: []float64{0.2, 0.8}})
	out, err := a.Evaluate(context.Background(), vec(2))
	require.NoError(t, err)
	assert.False(t, out.Synthesized)
	assert.Equal(t, LabelPositive, out.Label)
	assert.InDelta(t, 0.8, out.Probabilities[1], 1e-12)
	assert.InDelta(t, 1.0, out.Probabilities[0]+out.Probabilities[1], 1e-9)
}

func TestProbabilityPairIsRenormalised(t *testing.T) {
	a := NewAdapter(&stubProbaModel{stubModel: stubModel{width: 1}, proba: []float64{0.3, 0.9}})
	pair, err := a.Score(context.Background(), vec(1))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, pair[0]+pair[1], 1e-9)
	assert.InDelta(t, 0.75, pair[1], 1e-12)
}

func TestProbabilityModelBadOutput(t *testing.T) {
	ctx := context.Background()

	a := NewAdapter(&stubProbaModel{stubModel: stubModel{width: 1}, proba: []float64{1}})
	_, err := a.Score(ctx, vec(1))
	assert.Error(t, err)

	a = NewAdapter(&stubProbaModel{stubModel: stubModel{width: 1, score: 2}, proba: []float64{0, 1}})
	_, err = a.Classify(ctx, vec(1))
	assert.Error(t, err, "a classifier must return 0 or 1")
}

type stubEvaluator struct {
	stubProbaModel
	evaluations int
}

func (m *stubEvaluator) Evaluate(context.Context, []float64) (float64, []float64, error) {
	m.evaluations++
	return m.score, m.proba, m.err
}

func TestEvaluatorIsPreferred(t *testing.T) {
	m := &stubEvaluator{stubProbaModel: stubProbaModel{stubModel: stubModel{width: 1, score: 1}, proba: []float64{0.3, 0.9}}}
	out, err := NewAdapter(m).Evaluate(context.Background(), vec(1))
	require.NoError(t, err)
	assert.Equal(t, 1, m.evaluations)
	assert.Equal(t, LabelPositive, out.Label)
	assert.InDelta(t, 0.75, out.Probabilities[1], 1e-12)
	assert.False(t, out.Synthesized)

	m.score = 0.5
	_, err = NewAdapter(m).Evaluate(context.Background(), vec(1))
	assert.Error(t, err, "a classifier must return 0 or 1")
}

func TestNaNScoreIsRejected(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(&stubModel{name: "lin", width: 1, score: math.NaN()})

	_, err := a.Score(ctx, vec(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NaN")

	_, err = a.Classify(ctx, vec(1))
	require.Error(t, err)

	_, err = a.Evaluate(ctx, vec(1))
	require.Error(t, err)
}

func TestShapeMismatch(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(&stubModel{name: "m", width: 4})

	_, err := a.Classify(ctx, vec(3))
	require.ErrorIs(t, err, models.ErrSchemaMismatch)
	assert.Contains(t, err.Error(), models.SchemaMismatchHint)

	_, err = a.Score(ctx, vec(5))
	require.ErrorIs(t, err, models.ErrSchemaMismatch)

	_, err = a.Evaluate(ctx, vec(0))
	require.ErrorIs(t, err, models.ErrSchemaMismatch)
}

func TestColumnNameMismatch(t *testing.T) {
	a := NewAdapter(&stubModel{name: "m", width: 2, names: []string{"f0", "dti"}})
	_, err := a.Classify(context.Background(), vec(2))
	require.ErrorIs(t, err, models.ErrSchemaMismatch)
	assert.Contains(t, err.Error(), `"dti"`)

	a = NewAdapter(&stubModel{name: "m", width: 2, names: []string{"f0", "f1"}})
	_, err = a.Classify(context.Background(), vec(2))
	require.NoError(t, err)
}

func TestPredictErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	a := NewAdapter(&stubModel{width: 1, err: boom})
	_, err := a.Evaluate(context.Background(), vec(1))
	require.ErrorIs(t, err, boom)
}

func TestSynthesizePairClips(t *testing.T) {
	assert.Equal(t, [2]float64{1, 0}, SynthesizePair(-5))
	assert.Equal(t, [2]float64{0, 1}, SynthesizePair(5))
}
