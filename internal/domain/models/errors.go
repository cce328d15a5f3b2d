package models

import "errors"

// Pipeline error taxonomy. Every error is terminal for the current request only.
var (
	// ErrAssetMissing: a model, encoder or scaler file cannot be located.
	ErrAssetMissing = errors.New("asset missing")

	// ErrSchemaMismatch: the assembled vector disagrees with what the classifier was trained on.
	ErrSchemaMismatch = errors.New("feature schema mismatch")

	// ErrUnseenCategory: a categorical value was not present when the encoder was fitted.
	ErrUnseenCategory = errors.New("unseen category")

	// ErrMissingField: a column required by the schema is absent from the record.
	ErrMissingField = errors.New("missing field")
)

var (
	ErrModelNotFound = errors.New("model not found")
	ErrInvalidGrade  = errors.New("invalid grade")
)

// SchemaMismatchHint is shown next to schema mismatch failures.
const SchemaMismatchHint = "check that the assembled column count matches the columns used at training time"
