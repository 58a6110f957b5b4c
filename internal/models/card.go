package models

// TransactionSBPTransfer is the only debit transaction type; every other type credits the card.
const TransactionSBPTransfer = "sbp_transfer"

// VirtualCard is the single card issued to a user.
type VirtualCard struct {
	ID               int64   `json:"id"`
	CardNumber       string  `json:"card_number"`
	CardNumberMasked string  `json:"card_number_masked"`
	Balance          float64 `json:"balance"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"created_at"`
}

type CardTransaction struct {
	ID        int64   `json:"id"`
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	Phone     *string `json:"phone,omitempty"`
	Comment   *string `json:"comment,omitempty"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

// IsDebit reports whether the transaction reduces the displayed balance.
func (t CardTransaction) IsDebit() bool {
	return t.Type == TransactionSBPTransfer
}
