package models

// LoanApplication is the raw applicant form. Numeric inputs are pointers so that an
// absent field can be told apart from a zero value; absence is a fatal input error.
type LoanApplication struct {
	LoanAmount        *float64 `json:"loan_amnt" validate:"required,gte=500"`
	InterestRate      *float64 `json:"int_rate" validate:"required,gte=0"`
	Installment       *float64 `json:"installment" validate:"required,gte=0"`
	AnnualIncome      *float64 `json:"annual_inc" validate:"required,gte=1000"`
	MonthlyDebt       *float64 `json:"monthly_debt,omitempty" validate:"omitempty,gte=0"`
	Delinquencies2y   *float64 `json:"delinq_2yrs" validate:"required,gte=0"`
	Inquiries6m       *float64 `json:"inq_last_6mths" validate:"required,gte=0"`
	OpenAccounts      *float64 `json:"open_acc" validate:"required,gte=0"`
	PublicRecords     *float64 `json:"pub_rec" validate:"required,gte=0"`
	RevolvingBalance  *float64 `json:"revol_bal" validate:"required,gte=0"`
	RevolvingUtil     *float64 `json:"revol_util" validate:"required,gte=0"`
	TotalAccounts     *float64 `json:"total_acc" validate:"required,gte=0"`
	LastPaymentAmount *float64 `json:"last_pymnt_amnt" validate:"required,gte=0"`
	TermMonths        int      `json:"term_numeric" validate:"omitempty,oneof=36 60"`
	EmploymentYears   *float64 `json:"emp_length" validate:"required,gte=0,lte=40"`

	// Manual grade selection, required by the manual-ordinal pipeline only.
	Grade    string `json:"grade,omitempty" validate:"omitempty,oneof=A B C D E F G"`
	SubGrade int    `json:"sub_grade,omitempty" validate:"omitempty,gte=1,lte=5"`

	// Categorical inputs are checked by the fitted encoder, not here.
	HomeOwnership      string `json:"home_ownership" validate:"required"`
	VerificationStatus string `json:"verification_status" validate:"required"`
	Purpose            string `json:"purpose" validate:"required"`
}

// Float is a convenience for building applications in code.
func Float(v float64) *float64 { return &v }
