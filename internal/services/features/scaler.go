package features

import "fmt"

// Scaler kinds.
const (
	ScalerStandard = "standard"
	ScalerMinMax   = "minmax"
)

// Scaler is a pre-fitted numeric transform over the numeric block.
//
//	standard: (x - Mean) / Scale
//	minmax:   x*Scale + Min
type Scaler struct {
	Kind    string    `json:"kind"`
	Columns []string  `json:"columns,omitempty"`
	Mean    []float64 `json:"mean,omitempty"`
	Min     []float64 `json:"min,omitempty"`
	Scale   []float64 `json:"scale"`
}

// Init validates a decoded scaler.
func (s *Scaler) Init() error {
	n := len(s.Scale)
	if n == 0 {
		return fmt.Errorf("scaler: empty scale")
	}
	if s.Columns != nil && len(s.Columns) != n {
		return fmt.Errorf("scaler: %d columns but %d scale entries", len(s.Columns), n)
	}
	switch s.Kind {
	case ScalerStandard:
		if len(s.Mean) != n {
			return fmt.Errorf("scaler: %d mean entries, want %d", len(s.Mean), n)
		}
	case ScalerMinMax:
		if len(s.Min) != n {
			return fmt.Errorf("scaler: %d min entries, want %d", len(s.Min), n)
		}
	default:
		return fmt.Errorf("scaler: unknown kind %q", s.Kind)
	}
	return nil
}

// Width is the number of numeric columns the scaler was fitted on.
func (s *Scaler) Width() int { return len(s.Scale) }

// Transform scales x in place.
func (s *Scaler) Transform(x []float64) error {
	if len(x) != len(s.Scale) {
		return fmt.Errorf("scaler expects %d values, got %d", len(s.Scale), len(x))
	}
	for i := range x {
		scale := s.Scale[i]
		switch s.Kind {
		case ScalerStandard:
			if scale == 0 {
				scale = 1
			}
			x[i] = (x[i] - s.Mean[i]) / scale
		case ScalerMinMax:
			x[i] = x[i]*scale + s.Min[i]
		}
	}
	return nil
}

// Scaling says whether the numeric block is normalised before scoring. Construct
// it with ScalingEnabled or ScalingDisabled; the zero value is disabled.
type Scaling struct {
	scaler *Scaler
}

// ScalingEnabled scales the numeric block with s.
func ScalingEnabled(s *Scaler) Scaling { return Scaling{scaler: s} }

// ScalingDisabled passes numeric columns through unchanged.
func ScalingDisabled() Scaling { return Scaling{} }

// Enabled reports whether a scaler is attached.
func (s Scaling) Enabled() bool { return s.scaler != nil }

// Scaler returns the attached scaler, or nil when disabled.
func (s Scaling) Scaler() *Scaler { return s.scaler }

func (s Scaling) String() string {
	if s.Enabled() {
		return "enabled"
	}
	return "disabled"
}
