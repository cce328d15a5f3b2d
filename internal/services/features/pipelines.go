package features

// Pipeline versions. The two loan conventions encode grade differently and are
// not interchangeable: each needs an encoder and model fitted for it.
const (
	// PipelineManualOrdinal takes a manually chosen grade/sub-grade, maps them to
	// ordinals (1..7 and 1..35) and places them in the numeric block.
	PipelineManualOrdinal = "manual-ordinal"
	// PipelineDerivedLetter derives grade/sub-grade from DTI and one-hot encodes
	// them as letters alongside the other categorical columns.
	PipelineDerivedLetter = "derived-letter"
	PipelineBanknote      = "banknote"
)

// Loan column names as used at training time.
const (
	ColLoanAmount         = "loan_amnt"
	ColInterestRate       = "int_rate"
	ColInstallment        = "installment"
	ColAnnualIncome       = "annual_inc"
	ColDTI                = "dti"
	ColDelinquencies2y    = "delinq_2yrs"
	ColInquiries6m        = "inq_last_6mths"
	ColOpenAccounts       = "open_acc"
	ColPublicRecords      = "pub_rec"
	ColRevolvingBalance   = "revol_bal"
	ColRevolvingUtil      = "revol_util"
	ColTotalAccounts      = "total_acc"
	ColLastPaymentAmount  = "last_pymnt_amnt"
	ColTermMonths         = "term_numeric"
	ColEmploymentYears    = "emp_length"
	ColGrade              = "grade"
	ColSubGrade           = "sub_grade"
	ColHomeOwnership      = "home_ownership"
	ColVerificationStatus = "verification_status"
	ColPurpose            = "purpose"
)

// Banknote column names.
const (
	ColVariance = "variance"
	ColSkewness = "skewness"
	ColCurtosis = "curtosis"
	ColEntropy  = "entropy"
)

var loanNumeric = []string{
	ColLoanAmount, ColInterestRate, ColInstallment, ColAnnualIncome, ColDTI,
	ColDelinquencies2y, ColInquiries6m, ColOpenAccounts, ColPublicRecords,
	ColRevolvingBalance, ColRevolvingUtil, ColTotalAccounts, ColLastPaymentAmount,
	ColTermMonths, ColEmploymentYears,
}

var loanCategorical = []string{ColHomeOwnership, ColVerificationStatus, ColPurpose}

// ManualOrdinalSchema is the layout of the manual-ordinal loan pipeline.
func ManualOrdinalSchema() Schema {
	return Schema{
		Version:     PipelineManualOrdinal,
		Numeric:     concat(loanNumeric, []string{ColGrade, ColSubGrade}),
		Categorical: concat(loanCategorical),
	}
}

// DerivedLetterSchema is the layout of the derived-letter loan pipeline.
func DerivedLetterSchema() Schema {
	return Schema{
		Version:     PipelineDerivedLetter,
		Numeric:     concat(loanNumeric),
		Categorical: concat(loanCategorical, []string{ColGrade, ColSubGrade}),
	}
}

// BanknoteSchema is the layout of the banknote authentication pipeline.
func BanknoteSchema() Schema {
	return Schema{
		Version: PipelineBanknote,
		Numeric: []string{ColVariance, ColSkewness, ColCurtosis, ColEntropy},
	}
}

// SchemaFor returns the schema of a pipeline version.
func SchemaFor(version string) (Schema, bool) {
	switch version {
	case PipelineManualOrdinal:
		return ManualOrdinalSchema(), true
	case PipelineDerivedLetter:
		return DerivedLetterSchema(), true
	case PipelineBanknote:
		return BanknoteSchema(), true
	default:
		return Schema{}, false
	}
}

func concat(parts ...[]string) []string {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]string, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
