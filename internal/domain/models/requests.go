package models

// Query parameters for the HTTP endpoints.

type ScoreQuery struct {
	Model         string `query:"model"`
	IncludeVector bool   `query:"include_vector"`
}

type GradeRequest struct {
	DTI          *float64 `query:"dti" validate:"omitempty,gte=0"`
	AnnualIncome *float64 `query:"annual_income" validate:"omitempty,gt=0"`
	MonthlyDebt  *float64 `query:"monthly_debt" validate:"omitempty,gte=0"`
}
