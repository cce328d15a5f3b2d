package features

import (
	"fmt"

	"CreditLens/internal/domain/models"
)

// Unknown-category policies of a fitted encoder.
const (
	HandleUnknownError  = "error"
	HandleUnknownIgnore = "ignore"
)

// OneHotEncoder is a pre-fitted one-hot transform. Categories[i] holds the fitted
// category order for Columns[i]; output columns follow that order exactly.
type OneHotEncoder struct {
	Columns       []string   `json:"columns"`
	Categories    [][]string `json:"categories"`
	HandleUnknown string     `json:"handle_unknown,omitempty"`

	index []map[string]int
	names []string
	width int
}

// NewOneHotEncoder validates a fitted encoder and builds its lookup tables.
func NewOneHotEncoder(columns []string, categories [][]string, handleUnknown string) (*OneHotEncoder, error) {
	e := &OneHotEncoder{Columns: columns, Categories: categories, HandleUnknown: handleUnknown}
	if err := e.init(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *OneHotEncoder) init() error {
	if len(e.Columns) != len(e.Categories) {
		return fmt.Errorf("encoder: %d columns but %d category lists", len(e.Columns), len(e.Categories))
	}
	switch e.HandleUnknown {
	case "":
		e.HandleUnknown = HandleUnknownError
	case HandleUnknownError, HandleUnknownIgnore:
	default:
		return fmt.Errorf("encoder: unknown handle_unknown %q", e.HandleUnknown)
	}
	e.index = make([]map[string]int, len(e.Columns))
	e.names = e.names[:0]
	e.width = 0
	for i, col := range e.Columns {
		if len(e.Categories[i]) == 0 {
			return fmt.Errorf("encoder: column %q has no fitted categories", col)
		}
		m := make(map[string]int, len(e.Categories[i]))
		for j, cat := range e.Categories[i] {
			if _, dup := m[cat]; dup {
				return fmt.Errorf("encoder: column %q has duplicate category %q", col, cat)
			}
			m[cat] = j
			e.names = append(e.names, col+"_"+cat)
		}
		e.index[i] = m
		e.width += len(e.Categories[i])
	}
	return nil
}

// Init must be called after decoding an encoder from an asset file.
func (e *OneHotEncoder) Init() error { return e.init() }

// FeatureNames returns the indicator column names in fitted order.
func (e *OneHotEncoder) FeatureNames() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// Width is the number of indicator columns produced.
func (e *OneHotEncoder) Width() int { return e.width }

// Transform encodes one row of raw categorical values given in Columns order.
func (e *OneHotEncoder) Transform(values []string) ([]float64, error) {
	if len(values) != len(e.Columns) {
		return nil, fmt.Errorf("%w: encoder expects %d categorical columns, got %d",
			models.ErrSchemaMismatch, len(e.Columns), len(values))
	}
	out := make([]float64, e.width)
	offset := 0
	for i, v := range values {
		j, ok := e.index[i][v]
		if !ok {
			if e.HandleUnknown == HandleUnknownError {
				return nil, fmt.Errorf("%w: %q for column %q", models.ErrUnseenCategory, v, e.Columns[i])
			}
		} else {
			out[offset+j] = 1
		}
		offset += len(e.Categories[i])
	}
	return out, nil
}
