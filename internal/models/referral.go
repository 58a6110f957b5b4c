package models

type ReferralStats struct {
	TotalReferrals int     `json:"total_referrals"`
	TotalBonus     float64 `json:"total_bonus"`
	AvailableBonus float64 `json:"available_bonus"`
}

// Referral is a user who registered with the caller's referral code.
type Referral struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	CreatedAt  string  `json:"created_at"`
	TotalLoans float64 `json:"total_loans"`
}

// ReferralBonus is one entry of the bonus history.
type ReferralBonus struct {
	ID            int64   `json:"id"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	Source        string  `json:"source"`
	CreatedAt     string  `json:"created_at"`
	ReferralName  *string `json:"referral_name,omitempty"`
	ReferralEmail *string `json:"referral_email,omitempty"`
}
