package dto

import "github.com/hongminglow/labubu-portal/internal/models"

type CreateLoanRequest struct {
	Action   string  `json:"action"`
	Amount   float64 `json:"amount"`
	TermDays int     `json:"term_days"`
	Purpose  string  `json:"purpose"`
}

type CreateLoanResult struct {
	Status
	Loan *models.Loan `json:"loan,omitempty"`
}

type LoanListResult struct {
	Status
	Loans []models.Loan `json:"loans"`
}

type LoanResult struct {
	Status
	Loan *models.Loan `json:"loan,omitempty"`
}

type LoanStatsResult struct {
	Status
	Stats *models.LoanStats `json:"stats,omitempty"`
}
