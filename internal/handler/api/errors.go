package api

import (
	"errors"
	"net/http"

	"CreditLens/internal/domain/models"
	xhttp "CreditLens/pkg/http"
)

// toAppError maps pipeline failures onto HTTP statuses. Input problems are the
// caller's to fix (4xx); asset and schema problems belong to the deployment (5xx).
func toAppError(err error) *xhttp.AppError {
	var appErr *xhttp.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, models.ErrModelNotFound):
		return xhttp.NewAppError("ERR_MODEL_NOT_FOUND", "model", err.Error(), http.StatusNotFound).WithError(err)
	case errors.Is(err, models.ErrUnseenCategory):
		return xhttp.UnprocessableError("ERR_UNSEEN_CATEGORY", "", err.Error()).WithError(err)
	case errors.Is(err, models.ErrMissingField):
		return xhttp.UnprocessableError("ERR_MISSING_FIELD", "", err.Error()).WithError(err)
	case errors.Is(err, models.ErrInvalidGrade):
		return xhttp.UnprocessableError("ERR_INVALID_GRADE", "grade", err.Error()).WithError(err)
	case errors.Is(err, models.ErrAssetMissing):
		return xhttp.ServiceUnavailableError("ERR_ASSET_MISSING", err.Error()).WithError(err)
	case errors.Is(err, models.ErrSchemaMismatch):
		return xhttp.NewAppError("ERR_SCHEMA_MISMATCH", "", err.Error(), http.StatusInternalServerError).
			WithParam("hint", models.SchemaMismatchHint).
			WithError(err)
	default:
		return xhttp.NewAppError("ERR_PREDICTION_FAILED", "", "prediction failed", http.StatusInternalServerError).WithError(err)
	}
}
