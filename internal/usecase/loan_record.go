package usecase

import (
	"fmt"

	"CreditLens/internal/domain/models"
	"CreditLens/internal/services/features"
	"CreditLens/internal/services/grading"
)

// loanInputs is the record of an application plus the grade it was scored with.
type loanInputs struct {
	record   features.Record
	dti      float64
	subGrade grading.SubGrade
}

// buildLoanRecord maps an application onto the columns of a loan pipeline.
func buildLoanRecord(app *models.LoanApplication, pipeline string) (loanInputs, error) {
	if app.AnnualIncome == nil {
		return loanInputs{}, fmt.Errorf("%w: %s", models.ErrMissingField, features.ColAnnualIncome)
	}
	if app.TermMonths == 0 {
		return loanInputs{}, fmt.Errorf("%w: %s", models.ErrMissingField, features.ColTermMonths)
	}

	rec := features.NewRecord()
	rec.SetNumeric(features.ColLoanAmount, app.LoanAmount)
	rec.SetNumeric(features.ColInterestRate, app.InterestRate)
	rec.SetNumeric(features.ColInstallment, app.Installment)
	rec.SetNumeric(features.ColAnnualIncome, app.AnnualIncome)
	rec.SetNumeric(features.ColDelinquencies2y, app.Delinquencies2y)
	rec.SetNumeric(features.ColInquiries6m, app.Inquiries6m)
	rec.SetNumeric(features.ColOpenAccounts, app.OpenAccounts)
	rec.SetNumeric(features.ColPublicRecords, app.PublicRecords)
	rec.SetNumeric(features.ColRevolvingBalance, app.RevolvingBalance)
	rec.SetNumeric(features.ColRevolvingUtil, app.RevolvingUtil)
	rec.SetNumeric(features.ColTotalAccounts, app.TotalAccounts)
	rec.SetNumeric(features.ColLastPaymentAmount, app.LastPaymentAmount)
	rec.SetNumeric(features.ColEmploymentYears, app.EmploymentYears)
	rec.Numeric[features.ColTermMonths] = float64(app.TermMonths)
	rec.Categorical[features.ColHomeOwnership] = app.HomeOwnership
	rec.Categorical[features.ColVerificationStatus] = app.VerificationStatus
	rec.Categorical[features.ColPurpose] = app.Purpose

	in := loanInputs{record: rec}
	switch pipeline {
	case features.PipelineManualOrdinal:
		if app.Installment == nil {
			return loanInputs{}, fmt.Errorf("%w: %s", models.ErrMissingField, features.ColInstallment)
		}
		if app.Grade == "" || app.SubGrade == 0 {
			return loanInputs{}, fmt.Errorf("%w: grade and sub_grade", models.ErrMissingField)
		}
		g, err := grading.ParseGrade(app.Grade)
		if err != nil {
			return loanInputs{}, err
		}
		sg, err := grading.NewSubGrade(g, app.SubGrade)
		if err != nil {
			return loanInputs{}, err
		}
		in.dti = grading.ComputeDTI(*app.Installment, *app.AnnualIncome)
		in.subGrade = sg
		rec.Numeric[features.ColGrade] = float64(g.Ordinal())
		rec.Numeric[features.ColSubGrade] = float64(sg.Ordinal())

	case features.PipelineDerivedLetter:
		if app.MonthlyDebt == nil {
			return loanInputs{}, fmt.Errorf("%w: monthly_debt", models.ErrMissingField)
		}
		in.dti = grading.ComputeDTI(*app.MonthlyDebt, *app.AnnualIncome)
		in.subGrade = grading.DeriveFromDTI(in.dti)
		rec.Categorical[features.ColGrade] = in.subGrade.Grade.String()
		rec.Categorical[features.ColSubGrade] = in.subGrade.String()

	default:
		return loanInputs{}, fmt.Errorf("%w: pipeline %q is not a loan pipeline", models.ErrSchemaMismatch, pipeline)
	}
	rec.Numeric[features.ColDTI] = in.dti
	return in, nil
}
