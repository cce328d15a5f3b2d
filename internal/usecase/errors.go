package usecase

import (
	"errors"

	"CreditLens/internal/domain/models"
)

// ErrorKind classifies a pipeline error for metrics and logs.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, models.ErrAssetMissing):
		return "asset_missing"
	case errors.Is(err, models.ErrSchemaMismatch):
		return "schema_mismatch"
	case errors.Is(err, models.ErrUnseenCategory):
		return "unseen_category"
	case errors.Is(err, models.ErrMissingField):
		return "missing_field"
	case errors.Is(err, models.ErrModelNotFound):
		return "model_not_found"
	case errors.Is(err, models.ErrInvalidGrade):
		return "invalid_grade"
	default:
		return "model"
	}
}
