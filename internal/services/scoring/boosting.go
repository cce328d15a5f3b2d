package scoring

import (
	"context"
	"encoding/json"
	"fmt"
)

const KindGradientBoosting = "gradient_boosting"

// GradientBoosting is a binary:logistic tree ensemble. The margin is BaseMargin plus
// the leaf values of every tree; p1 = sigmoid(margin).
type GradientBoosting struct {
	meta
	BaseMargin float64 `json:"base_margin"`
	Trees      []Tree  `json:"trees"`
}

func decodeBoosting(data []byte, opts Options) (Model, error) {
	var m GradientBoosting
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KindGradientBoosting, err)
	}
	if err := m.resolve(opts.Name, 0); err != nil {
		return nil, err
	}
	if len(m.Trees) == 0 {
		return nil, fmt.Errorf("%s: no trees", KindGradientBoosting)
	}
	for i, t := range m.Trees {
		if err := t.validate(m.Width); err != nil {
			return nil, fmt.Errorf("%s tree %d: %w", KindGradientBoosting, i, err)
		}
	}
	return &m, nil
}

func (m *GradientBoosting) margin(x []float64) (float64, error) {
	if err := m.checkWidth(x); err != nil {
		return 0, err
	}
	z := m.BaseMargin
	for _, t := range m.Trees {
		z += t.walk(x, true).Leaf
	}
	return z, nil
}

func (m *GradientBoosting) Predict(_ context.Context, x []float64) (float64, error) {
	z, err := m.margin(x)
	if err != nil {
		return 0, err
	}
	if z > 0 {
		return 1, nil
	}
	return 0, nil
}

func (m *GradientBoosting) PredictProba(_ context.Context, x []float64) ([]float64, error) {
	z, err := m.margin(x)
	if err != nil {
		return nil, err
	}
	p := sigmoid(z)
	return []float64{1 - p, p}, nil
}
