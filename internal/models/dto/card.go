package dto

import "github.com/hongminglow/labubu-portal/internal/models"

type TransferRequest struct {
	Action  string  `json:"action"`
	Phone   string  `json:"phone"`
	Amount  float64 `json:"amount"`
	Comment string  `json:"comment"`
}

// TransferReceipt is the upstream confirmation of a completed transfer.
type TransferReceipt struct {
	ID         int64   `json:"id"`
	Amount     float64 `json:"amount"`
	Phone      string  `json:"phone"`
	NewBalance float64 `json:"new_balance"`
	CreatedAt  string  `json:"created_at"`
}

type TransferResult struct {
	Status
	Transaction *TransferReceipt `json:"transaction,omitempty"`
}

type CardResult struct {
	Status
	Card *models.VirtualCard `json:"card,omitempty"`
}

type TransactionsResult struct {
	Status
	Transactions []models.CardTransaction `json:"transactions"`
}
