package models

// User captures the profile the auth service returns on register, login, and profile refresh.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	ReferralCode string `json:"referral_code"`
}

// Session pairs the auth token with the user it was issued for.
// It is passed explicitly into every upstream call.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}
