package grading

import (
	"math"
	"testing"

	"CreditLens/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveFromDTIBandA(t *testing.T) {
	for v := 0.0; v < 5; v += 0.25 {
		got := DeriveFromDTI(v)
		want := int(math.Floor(v)) + 1
		if want > 5 {
			want = 5
		}
		assert.Equal(t, A, got.Grade, "dti=%v", v)
		assert.Equal(t, want, got.Index, "dti=%v", v)
	}
}

func TestDeriveFromDTIAboveTwentyIsE(t *testing.T) {
	for _, v := range []float64{20, 20.01, 23, 24.99, 25, 40, 99.9, 1e6, math.Inf(1)} {
		got := DeriveFromDTI(v)
		assert.Equal(t, E, got.Grade, "dti=%v", v)
		assert.GreaterOrEqual(t, got.Index, 1)
		assert.LessOrEqual(t, got.Index, 5)
	}
}

func TestDeriveFromDTIBands(t *testing.T) {
	cases := []struct {
		dti  float64
		want string
	}{
		{0, "A1"},
		{4.99, "A5"},
		{5, "B1"},
		{7.5, "B3"},
		{9.99, "B5"},
		{10, "C1"},
		{14.2, "C5"},
		{15, "D1"},
		{19.99, "D5"},
		{20, "E1"},
		{23, "E4"},
		{31, "E5"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DeriveFromDTI(tc.dti).String(), "dti=%v", tc.dti)
	}
}

func TestDeriveFromDTINegativeAndNaN(t *testing.T) {
	assert.Equal(t, "A1", DeriveFromDTI(-3).String())
	assert.Equal(t, "A1", DeriveFromDTI(math.NaN()).String())
}

func TestComputeDTIScenario(t *testing.T) {
	dti := ComputeDTI(625, 50000)
	require.Equal(t, 15.0, dti)

	sg := DeriveFromDTI(dti)
	assert.Equal(t, D, sg.Grade)
	assert.Equal(t, "D1", sg.String())
}

func TestComputeDTIZeroIncome(t *testing.T) {
	assert.Equal(t, 0.0, ComputeDTI(500, 0))
	assert.Equal(t, 0.0, ComputeDTI(500, -10))
}

func TestOrdinals(t *testing.T) {
	assert.Equal(t, 1, A.Ordinal())
	assert.Equal(t, 7, G.Ordinal())

	a1, err := NewSubGrade(A, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, a1.Ordinal())

	g5, err := NewSubGrade(G, 5)
	require.NoError(t, err)
	assert.Equal(t, 35, g5.Ordinal())

	c3, err := NewSubGrade(C, 3)
	require.NoError(t, err)
	assert.Equal(t, 13, c3.Ordinal())
}

func TestParseGrade(t *testing.T) {
	g, err := ParseGrade("F")
	require.NoError(t, err)
	assert.Equal(t, F, g)

	for _, bad := range []string{"", "H", "a", "AB"} {
		_, err := ParseGrade(bad)
		assert.ErrorIs(t, err, models.ErrInvalidGrade, "input %q", bad)
	}
}

func TestNewSubGradeRejectsOutOfRange(t *testing.T) {
	_, err := NewSubGrade(B, 0)
	assert.ErrorIs(t, err, models.ErrInvalidGrade)
	_, err = NewSubGrade(B, 6)
	assert.ErrorIs(t, err, models.ErrInvalidGrade)
	_, err = NewSubGrade(Grade('Z'), 1)
	assert.ErrorIs(t, err, models.ErrInvalidGrade)
}

func TestResult(t *testing.T) {
	r := Result(23, DeriveFromDTI(23))
	assert.Equal(t, "E", r.Grade)
	assert.Equal(t, "E4", r.SubGrade)
	assert.Equal(t, 5, r.GradeOrdinal)
	assert.Equal(t, 24, r.SubGradeOrdinal)
}
