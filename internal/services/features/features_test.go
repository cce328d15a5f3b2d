package features

import (
	"testing"

	"CreditLens/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEncoder(t *testing.T) *OneHotEncoder {
	t.Helper()
	enc, err := NewOneHotEncoder(
		[]string{ColHomeOwnership, ColVerificationStatus, ColPurpose},
		[][]string{
			{"MORTGAGE", "NONE", "OTHER", "OWN", "RENT"},
			{"Not Verified", "Source Verified", "Verified"},
			{"car", "credit_card", "debt_consolidation"},
		},
		"",
	)
	require.NoError(t, err)
	return enc
}

func testScaler(n int) *Scaler {
	s := &Scaler{Kind: ScalerStandard, Mean: make([]float64, n), Scale: make([]float64, n)}
	for i := 0; i < n; i++ {
		s.Mean[i] = 1
		s.Scale[i] = 2
	}
	return s
}

func testRecord() Record {
	r := NewRecord()
	for i, c := range ManualOrdinalSchema().Numeric {
		r.Numeric[c] = float64(i + 1)
	}
	r.Categorical[ColHomeOwnership] = "RENT"
	r.Categorical[ColVerificationStatus] = "Verified"
	r.Categorical[ColPurpose] = "car"
	return r
}

func TestEncoderFeatureNamesFollowFittedOrder(t *testing.T) {
	enc := testEncoder(t)
	names := enc.FeatureNames()
	require.Len(t, names, 11)
	assert.Equal(t, "home_ownership_MORTGAGE", names[0])
	assert.Equal(t, "home_ownership_RENT", names[4])
	assert.Equal(t, "verification_status_Not Verified", names[5])
	assert.Equal(t, "purpose_debt_consolidation", names[10])
}

func TestEncoderTransform(t *testing.T) {
	enc := testEncoder(t)
	got, err := enc.Transform([]string{"OWN", "Source Verified", "credit_card"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0}, got)
}

func TestEncoderUnseenCategory(t *testing.T) {
	enc := testEncoder(t)
	_, err := enc.Transform([]string{"OWN", "Verified", "wedding"})
	require.ErrorIs(t, err, models.ErrUnseenCategory)
	assert.Contains(t, err.Error(), "wedding")
}

func TestEncoderIgnoreUnknown(t *testing.T) {
	enc, err := NewOneHotEncoder([]string{"c"}, [][]string{{"x", "y"}}, HandleUnknownIgnore)
	require.NoError(t, err)
	got, err := enc.Transform([]string{"z"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, got)
}

func TestEncoderRejectsBadFit(t *testing.T) {
	_, err := NewOneHotEncoder([]string{"a", "b"}, [][]string{{"x"}}, "")
	assert.Error(t, err)
	_, err = NewOneHotEncoder([]string{"a"}, [][]string{{"x", "x"}}, "")
	assert.Error(t, err)
	_, err = NewOneHotEncoder([]string{"a"}, [][]string{{"x"}}, "bucket")
	assert.Error(t, err)
}

func TestScalerStandardAndMinMax(t *testing.T) {
	std := &Scaler{Kind: ScalerStandard, Mean: []float64{10, 0}, Scale: []float64{5, 0}}
	require.NoError(t, std.Init())
	x := []float64{20, 3}
	require.NoError(t, std.Transform(x))
	assert.Equal(t, []float64{2, 3}, x, "zero scale behaves as 1")

	mm := &Scaler{Kind: ScalerMinMax, Min: []float64{-1}, Scale: []float64{0.5}}
	require.NoError(t, mm.Init())
	y := []float64{4}
	require.NoError(t, mm.Transform(y))
	assert.Equal(t, []float64{1}, y)

	assert.Error(t, (&Scaler{Kind: "robust", Scale: []float64{1}}).Init())
	assert.Error(t, (&Scaler{Kind: ScalerStandard, Scale: []float64{1}}).Init())
}

func TestAssembleWidthAndOrder(t *testing.T) {
	enc := testEncoder(t)
	a, err := NewAssembler(ManualOrdinalSchema(), enc, ScalingDisabled())
	require.NoError(t, err)

	v, err := a.Assemble(testRecord())
	require.NoError(t, err)

	numeric := ManualOrdinalSchema().Numeric
	require.Len(t, v.Values, len(numeric)+len(enc.FeatureNames()))
	require.Len(t, v.Columns, len(v.Values))
	assert.Equal(t, numeric, v.Columns[:len(numeric)])
	assert.Equal(t, enc.FeatureNames(), v.Columns[len(numeric):])
	for i := range numeric {
		assert.Equal(t, float64(i+1), v.Values[i])
	}
	// RENT, Verified, car
	assert.Equal(t, []float64{0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0}, v.Values[len(numeric):])
}

func TestAssembleIsDeterministic(t *testing.T) {
	n := len(ManualOrdinalSchema().Numeric)
	a, err := NewAssembler(ManualOrdinalSchema(), testEncoder(t), ScalingEnabled(testScaler(n)))
	require.NoError(t, err)

	rec := testRecord()
	first, err := a.Assemble(rec)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := a.Assemble(rec)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	// the record itself is never mutated by scaling
	assert.Equal(t, 1.0, rec.Numeric[ColLoanAmount])
}

func TestAssembleScalesNumericOnly(t *testing.T) {
	n := len(ManualOrdinalSchema().Numeric)
	a, err := NewAssembler(ManualOrdinalSchema(), testEncoder(t), ScalingEnabled(testScaler(n)))
	require.NoError(t, err)
	assert.True(t, a.Scaling().Enabled())

	v, err := a.Assemble(testRecord())
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		assert.InDelta(t, (float64(i+1)-1)/2, v.Values[i], 1e-12)
	}
	for _, x := range v.Values[n:] {
		assert.True(t, x == 0 || x == 1, "indicator columns stay 0/1")
	}
}

func TestAssembleMissingField(t *testing.T) {
	a, err := NewAssembler(ManualOrdinalSchema(), testEncoder(t), ScalingDisabled())
	require.NoError(t, err)

	rec := testRecord()
	delete(rec.Numeric, ColRevolvingUtil)
	_, err = a.Assemble(rec)
	require.ErrorIs(t, err, models.ErrMissingField)

	rec = testRecord()
	delete(rec.Categorical, ColPurpose)
	_, err = a.Assemble(rec)
	require.ErrorIs(t, err, models.ErrMissingField)
}

func TestAssembleUnseenCategoryPropagates(t *testing.T) {
	a, err := NewAssembler(ManualOrdinalSchema(), testEncoder(t), ScalingDisabled())
	require.NoError(t, err)
	rec := testRecord()
	rec.Categorical[ColHomeOwnership] = "BOAT"
	_, err = a.Assemble(rec)
	require.ErrorIs(t, err, models.ErrUnseenCategory)
}

func TestNewAssemblerRejectsMismatchedAssets(t *testing.T) {
	// encoder fitted for the manual pipeline cannot serve the derived one
	_, err := NewAssembler(DerivedLetterSchema(), testEncoder(t), ScalingDisabled())
	require.ErrorIs(t, err, models.ErrSchemaMismatch)

	_, err = NewAssembler(ManualOrdinalSchema(), testEncoder(t), ScalingEnabled(testScaler(3)))
	require.ErrorIs(t, err, models.ErrSchemaMismatch)

	_, err = NewAssembler(ManualOrdinalSchema(), nil, ScalingDisabled())
	require.ErrorIs(t, err, models.ErrSchemaMismatch)
}

func TestBanknoteNeedsNoEncoder(t *testing.T) {
	a, err := NewAssembler(BanknoteSchema(), nil, ScalingDisabled())
	require.NoError(t, err)
	r := NewRecord()
	r.SetNumeric(ColVariance, models.Float(3.6))
	r.SetNumeric(ColSkewness, models.Float(8.6))
	r.SetNumeric(ColCurtosis, models.Float(-2.8))
	r.SetNumeric(ColEntropy, models.Float(-0.4))
	v, err := a.Assemble(r)
	require.NoError(t, err)
	assert.Equal(t, []float64{3.6, 8.6, -2.8, -0.4}, v.Values)
	assert.Equal(t, 4, a.Width())
}

func TestSchemas(t *testing.T) {
	assert.Len(t, ManualOrdinalSchema().Numeric, 17)
	assert.Len(t, DerivedLetterSchema().Numeric, 15)
	assert.Len(t, DerivedLetterSchema().Categorical, 5)
	_, ok := SchemaFor("v3")
	assert.False(t, ok)
	s, ok := SchemaFor(PipelineBanknote)
	require.True(t, ok)
	assert.Empty(t, s.Categorical)
}
