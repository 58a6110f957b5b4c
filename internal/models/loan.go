package models

// LoanStatus is the server-side lifecycle state of a loan.
type LoanStatus string

const (
	LoanPending  LoanStatus = "pending"
	LoanApproved LoanStatus = "approved"
	LoanActive   LoanStatus = "active"
	LoanRepaid   LoanStatus = "repaid"
	LoanRejected LoanStatus = "rejected"
)

var loanStatusLabels = map[LoanStatus]string{
	LoanPending:  "На рассмотрении",
	LoanApproved: "Одобрен",
	LoanActive:   "Активный",
	LoanRepaid:   "Погашен",
	LoanRejected: "Отклонен",
}

// Known reports whether the status is one of the closed set above.
func (s LoanStatus) Known() bool {
	_, ok := loanStatusLabels[s]
	return ok
}

// Badge returns the display label. Unknown statuses render as pending.
func (s LoanStatus) Badge() string {
	if label, ok := loanStatusLabels[s]; ok {
		return label
	}
	return loanStatusLabels[LoanPending]
}

// Loan is a read-only loan record owned by the loan service.
type Loan struct {
	ID             int64      `json:"id"`
	Amount         float64    `json:"amount"`
	TermDays       int        `json:"term_days"`
	InterestRate   float64    `json:"interest_rate"`
	InterestAmount float64    `json:"interest_amount"`
	TotalRepayment float64    `json:"total_repayment"`
	PaidAmount     float64    `json:"paid_amount"`
	Purpose        string     `json:"purpose"`
	Status         LoanStatus `json:"status"`
	CreatedAt      string     `json:"created_at"`
	DueDate        string     `json:"due_date"`
	ApprovedAt     *string    `json:"approved_at,omitempty"`
	DisbursedAt    *string    `json:"disbursed_at,omitempty"`
	RepaidAt       *string    `json:"repaid_at,omitempty"`
}

// LoanStats is the server-computed loan aggregate shown on the overview tab.
type LoanStats struct {
	ActiveLoans    int     `json:"active_loans"`
	ActiveAmount   float64 `json:"active_amount"`
	TotalLoans     int     `json:"total_loans"`
	CompletedLoans int     `json:"completed_loans"`
}
