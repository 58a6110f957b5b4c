package remote

import "net/http"

// Endpoints are the upstream service URLs.
type Endpoints struct {
	Auth      string
	Loans     string
	Referrals string
	Card      string
}

// Clients bundles one client per upstream service.
type Clients struct {
	Auth      *AuthClient
	Loans     *LoanClient
	Referrals *ReferralClient
	Card      *CardClient
}

// New builds all clients on a shared *http.Client. A nil client means http.DefaultClient.
func New(httpClient *http.Client, endpoints Endpoints) Clients {
	return Clients{
		Auth:      NewAuthClient(httpClient, endpoints.Auth),
		Loans:     NewLoanClient(httpClient, endpoints.Loans),
		Referrals: NewReferralClient(httpClient, endpoints.Referrals),
		Card:      NewCardClient(httpClient, endpoints.Card),
	}
}
