package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const KindLogisticRegression = "logistic_regression"

// LogisticRegression is a binary logistic model: p1 = sigmoid(w.x + b).
type LogisticRegression struct {
	meta
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`

	coef *mat.VecDense
}

func decodeLogistic(data []byte, opts Options) (Model, error) {
	var m LogisticRegression
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KindLogisticRegression, err)
	}
	if len(m.Coefficients) == 0 {
		return nil, fmt.Errorf("%s: no coefficients", KindLogisticRegression)
	}
	if err := m.resolve(opts.Name, len(m.Coefficients)); err != nil {
		return nil, err
	}
	m.coef = mat.NewVecDense(len(m.Coefficients), m.Coefficients)
	return &m, nil
}

func (m *LogisticRegression) margin(x []float64) (float64, error) {
	if err := m.checkWidth(x); err != nil {
		return 0, err
	}
	return mat.Dot(m.coef, mat.NewVecDense(len(x), x)) + m.Intercept, nil
}

// Predict returns 1 when the decision function is positive.
func (m *LogisticRegression) Predict(_ context.Context, x []float64) (float64, error) {
	z, err := m.margin(x)
	if err != nil {
		return 0, err
	}
	if z > 0 {
		return 1, nil
	}
	return 0, nil
}

func (m *LogisticRegression) PredictProba(_ context.Context, x []float64) ([]float64, error) {
	z, err := m.margin(x)
	if err != nil {
		return nil, err
	}
	p := sigmoid(z)
	return []float64{1 - p, p}, nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
