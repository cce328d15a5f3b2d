package scoring

import (
	"context"
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const KindLinearRegression = "linear_regression"

// LinearRegression is a regressor used as a classifier. It has no probability
// interface; the adapter thresholds and clips its score.
type LinearRegression struct {
	meta
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`

	coef *mat.VecDense
}

func decodeLinear(data []byte, opts Options) (Model, error) {
	var m LinearRegression
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KindLinearRegression, err)
	}
	if len(m.Coefficients) == 0 {
		return nil, fmt.Errorf("%s: no coefficients", KindLinearRegression)
	}
	if err := m.resolve(opts.Name, len(m.Coefficients)); err != nil {
		return nil, err
	}
	m.coef = mat.NewVecDense(len(m.Coefficients), m.Coefficients)
	return &m, nil
}

func (m *LinearRegression) Predict(_ context.Context, x []float64) (float64, error) {
	if err := m.checkWidth(x); err != nil {
		return 0, err
	}
	return mat.Dot(m.coef, mat.NewVecDense(len(x), x)) + m.Intercept, nil
}
