package features

import (
	"fmt"

	"CreditLens/internal/domain/models"
)

// Record is one applicant's raw attributes keyed by training column name.
type Record struct {
	Numeric     map[string]float64
	Categorical map[string]string
}

// NewRecord returns an empty record.
func NewRecord() Record {
	return Record{
		Numeric:     make(map[string]float64),
		Categorical: make(map[string]string),
	}
}

// SetNumeric stores v under col. A nil pointer leaves the column absent.
func (r Record) SetNumeric(col string, v *float64) {
	if v != nil {
		r.Numeric[col] = *v
	}
}

func (r Record) numeric(cols []string) ([]float64, error) {
	out := make([]float64, len(cols))
	for i, c := range cols {
		v, ok := r.Numeric[c]
		if !ok {
			return nil, fmt.Errorf("%w: numeric column %q", models.ErrMissingField, c)
		}
		out[i] = v
	}
	return out, nil
}

func (r Record) categorical(cols []string) ([]string, error) {
	out := make([]string, len(cols))
	for i, c := range cols {
		v, ok := r.Categorical[c]
		if !ok || v == "" {
			return nil, fmt.Errorf("%w: categorical column %q", models.ErrMissingField, c)
		}
		out[i] = v
	}
	return out, nil
}
