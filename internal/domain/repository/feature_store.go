package repository

import (
	"context"

	"CreditLens/internal/services/features"
	"CreditLens/internal/services/scoring"
)

// AssetStore provides read-only access to the pre-fitted pipeline artifacts.
// A file that cannot be located yields models.ErrAssetMissing.
type AssetStore interface {
	LoadModel(ctx context.Context, file string, opts scoring.Options) (scoring.Model, error)
	LoadEncoder(ctx context.Context, file string) (*features.OneHotEncoder, error)
	LoadScaler(ctx context.Context, file string) (*features.Scaler, error)
}
