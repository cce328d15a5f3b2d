package features

import (
	"fmt"

	"CreditLens/internal/domain/models"
)

// Schema is the training-time column layout: numeric columns first, then the
// one-hot block of the categorical columns.
type Schema struct {
	Version     string
	Numeric     []string
	Categorical []string
}

// Vector is an assembled feature row.
type Vector struct {
	Columns []string
	Values  []float64
}

// Model converts the vector for API responses.
func (v Vector) Model() *models.FeatureVector {
	return &models.FeatureVector{Columns: v.Columns, Values: v.Values}
}

// Assembler turns raw records into the fixed-width vector a classifier was trained on.
// It is immutable after construction and safe for concurrent use.
type Assembler struct {
	schema  Schema
	encoder *OneHotEncoder
	scaling Scaling
	columns []string
}

// NewAssembler checks that the encoder and scaler line up with the schema.
func NewAssembler(schema Schema, encoder *OneHotEncoder, scaling Scaling) (*Assembler, error) {
	if len(schema.Categorical) > 0 {
		if encoder == nil {
			return nil, fmt.Errorf("%w: schema %q has categorical columns but no encoder", models.ErrSchemaMismatch, schema.Version)
		}
		if !equalStrings(encoder.Columns, schema.Categorical) {
			return nil, fmt.Errorf("%w: encoder columns %v, schema %q expects %v",
				models.ErrSchemaMismatch, encoder.Columns, schema.Version, schema.Categorical)
		}
	} else {
		encoder = nil
	}
	if s := scaling.Scaler(); s != nil {
		if s.Width() != len(schema.Numeric) {
			return nil, fmt.Errorf("%w: scaler fitted on %d columns, schema %q has %d numeric columns",
				models.ErrSchemaMismatch, s.Width(), schema.Version, len(schema.Numeric))
		}
		if s.Columns != nil && !equalStrings(s.Columns, schema.Numeric) {
			return nil, fmt.Errorf("%w: scaler columns %v differ from schema %q", models.ErrSchemaMismatch, s.Columns, schema.Version)
		}
	}

	columns := make([]string, 0, len(schema.Numeric)+encoderWidth(encoder))
	columns = append(columns, schema.Numeric...)
	if encoder != nil {
		columns = append(columns, encoder.FeatureNames()...)
	}
	return &Assembler{schema: schema, encoder: encoder, scaling: scaling, columns: columns}, nil
}

// Schema returns the schema the assembler was built for.
func (a *Assembler) Schema() Schema { return a.schema }

// Scaling returns the scaling mode.
func (a *Assembler) Scaling() Scaling { return a.scaling }

// Columns returns the output column names in order.
func (a *Assembler) Columns() []string {
	out := make([]string, len(a.columns))
	copy(out, a.columns)
	return out
}

// Width is the number of output columns.
func (a *Assembler) Width() int { return len(a.columns) }

// Assemble encodes the categorical columns, scales the numeric block when scaling is
// enabled and concatenates numeric then encoded columns. Encoder errors are returned as is.
func (a *Assembler) Assemble(rec Record) (Vector, error) {
	num, err := rec.numeric(a.schema.Numeric)
	if err != nil {
		return Vector{}, err
	}
	if s := a.scaling.Scaler(); s != nil {
		if err := s.Transform(num); err != nil {
			return Vector{}, fmt.Errorf("%w: %v", models.ErrSchemaMismatch, err)
		}
	}

	values := make([]float64, 0, len(a.columns))
	values = append(values, num...)

	if a.encoder != nil {
		raw, err := rec.categorical(a.schema.Categorical)
		if err != nil {
			return Vector{}, err
		}
		enc, err := a.encoder.Transform(raw)
		if err != nil {
			return Vector{}, err
		}
		values = append(values, enc...)
	}

	return Vector{Columns: a.Columns(), Values: values}, nil
}

func encoderWidth(e *OneHotEncoder) int {
	if e == nil {
		return 0
	}
	return e.Width()
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
