package scoring

import (
	"context"
	"encoding/json"
	"fmt"
)

const KindRandomForest = "random_forest"

// RandomForest averages the normalised class distributions of its trees' leaves.
type RandomForest struct {
	meta
	Trees []Tree `json:"trees"`
}

func decodeForest(data []byte, opts Options) (Model, error) {
	var m RandomForest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KindRandomForest, err)
	}
	if err := m.resolve(opts.Name, 0); err != nil {
		return nil, err
	}
	if len(m.Trees) == 0 {
		return nil, fmt.Errorf("%s: no trees", KindRandomForest)
	}
	for i, t := range m.Trees {
		if err := t.validate(m.Width); err != nil {
			return nil, fmt.Errorf("%s tree %d: %w", KindRandomForest, i, err)
		}
		for j, n := range t.Nodes {
			if n.isLeaf() && len(n.Value) != 2 {
				return nil, fmt.Errorf("%s tree %d leaf %d: want 2 class weights, got %d", KindRandomForest, i, j, len(n.Value))
			}
		}
	}
	return &m, nil
}

func (m *RandomForest) PredictProba(_ context.Context, x []float64) ([]float64, error) {
	if err := m.checkWidth(x); err != nil {
		return nil, err
	}
	var p0, p1 float64
	for _, t := range m.Trees {
		leaf := t.walk(x, false)
		total := leaf.Value[0] + leaf.Value[1]
		if total <= 0 {
			continue
		}
		p0 += leaf.Value[0] / total
		p1 += leaf.Value[1] / total
	}
	n := float64(len(m.Trees))
	return []float64{p0 / n, p1 / n}, nil
}

// Predict returns the class with the highest mean probability; ties go to class 0.
func (m *RandomForest) Predict(ctx context.Context, x []float64) (float64, error) {
	p, err := m.PredictProba(ctx, x)
	if err != nil {
		return 0, err
	}
	if p[1] > p[0] {
		return 1, nil
	}
	return 0, nil
}
