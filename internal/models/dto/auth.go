package dto

import "github.com/hongminglow/labubu-portal/internal/models"

// Status is embedded by every upstream response body.
type Status struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

type RegisterRequest struct {
	Action       string  `json:"action"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Phone        string  `json:"phone"`
	Name         string  `json:"name"`
	ReferralCode *string `json:"referral_code,omitempty"`
}

type LoginRequest struct {
	Action   string `json:"action"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by register, login, and profile refresh.
type AuthResult struct {
	Status
	Token string       `json:"token,omitempty"`
	User  *models.User `json:"user,omitempty"`
}

// Result exposes the embedded status to generic decoders.
func (s Status) Result() Status {
	return s
}
