// Package grading maps debt-to-income ratios and manual selections to the
// ordinal A-G grade and 1-5 sub-grade used as model features.
package grading

import (
	"fmt"
	"math"

	"CreditLens/internal/domain/models"
	"CreditLens/pkg/util"
)

// Grade is an ordinal risk tier, A (best) to G.
type Grade byte

const (
	A Grade = 'A'
	B Grade = 'B'
	C Grade = 'C'
	D Grade = 'D'
	E Grade = 'E'
	F Grade = 'F'
	G Grade = 'G'
)

// Sub-grade index bounds within a grade.
const (
	MinSubGrade = 1
	MaxSubGrade = 5
)

// band is a half-open DTI interval [floor, next band floor) mapped to a grade.
type band struct {
	floor float64
	grade Grade
}

// bands are ordered by descending floor. DTI values at or above 20 all collapse to E;
// F and G can only be chosen manually.
var bands = []band{
	{floor: 20, grade: E},
	{floor: 15, grade: D},
	{floor: 10, grade: C},
	{floor: 5, grade: B},
	{floor: 0, grade: A},
}

func (g Grade) String() string { return string(g) }

// Valid reports whether g is one of A-G.
func (g Grade) Valid() bool { return g >= A && g <= G }

// Ordinal maps A..G to 1..7.
func (g Grade) Ordinal() int { return int(g-A) + 1 }

// ParseGrade parses a single letter A-G.
func ParseGrade(s string) (Grade, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidGrade, s)
	}
	g := Grade(s[0])
	if !g.Valid() {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidGrade, s)
	}
	return g, nil
}

// SubGrade is a grade refined into one of five bands.
type SubGrade struct {
	Grade Grade
	Index int
}

// NewSubGrade builds a manually selected sub-grade.
func NewSubGrade(g Grade, index int) (SubGrade, error) {
	if !g.Valid() {
		return SubGrade{}, fmt.Errorf("%w: grade %q", models.ErrInvalidGrade, string(g))
	}
	if index < MinSubGrade || index > MaxSubGrade {
		return SubGrade{}, fmt.Errorf("%w: sub-grade index %d outside [%d,%d]", models.ErrInvalidGrade, index, MinSubGrade, MaxSubGrade)
	}
	return SubGrade{Grade: g, Index: index}, nil
}

// String renders the sub-grade code, e.g. "D1".
func (s SubGrade) String() string { return fmt.Sprintf("%c%d", s.Grade, s.Index) }

// Ordinal maps A1..G5 to 1..35.
func (s SubGrade) Ordinal() int { return (s.Grade.Ordinal()-1)*MaxSubGrade + s.Index }

// DeriveFromDTI selects the grade band for a debt-to-income percentage and the
// sub-grade from the remainder within the band: floor(dti - bandFloor) + 1, clamped to [1,5].
// Negative and NaN inputs are treated as 0.
func DeriveFromDTI(dti float64) SubGrade {
	if math.IsNaN(dti) || dti < 0 {
		dti = 0
	}
	for _, b := range bands {
		if dti >= b.floor {
			idx := subGradeIndex(dti - b.floor)
			return SubGrade{Grade: b.grade, Index: idx}
		}
	}
	// unreachable: the last band has floor 0
	return SubGrade{Grade: A, Index: MinSubGrade}
}

func subGradeIndex(remainder float64) int {
	if math.IsInf(remainder, 1) {
		return MaxSubGrade
	}
	return util.ClampInt(int(math.Floor(remainder))+1, MinSubGrade, MaxSubGrade)
}

// ComputeDTI returns monthly debt as a percentage of monthly income. It is 0 when
// there is no income to compare against.
func ComputeDTI(monthlyDebt, annualIncome float64) float64 {
	if annualIncome <= 0 {
		return 0
	}
	// monthlyDebt / (annualIncome/12) * 100, arranged to keep exact inputs exact
	return monthlyDebt * 1200 / annualIncome
}

// Result renders a derived sub-grade for API responses.
func Result(dti float64, sg SubGrade) models.GradeResult {
	return models.GradeResult{
		DTI:             dti,
		Grade:           sg.Grade.String(),
		SubGrade:        sg.String(),
		GradeOrdinal:    sg.Grade.Ordinal(),
		SubGradeOrdinal: sg.Ordinal(),
	}
}
