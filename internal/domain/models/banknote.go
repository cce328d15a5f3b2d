package models

// Banknote holds the four wavelet-transformed image statistics of a scanned note.
type Banknote struct {
	Variance *float64 `json:"variance" validate:"required"`
	Skewness *float64 `json:"skewness" validate:"required"`
	Curtosis *float64 `json:"curtosis" validate:"required"`
	Entropy  *float64 `json:"entropy" validate:"required"`
}
