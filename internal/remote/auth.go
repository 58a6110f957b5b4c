package remote

import (
	"context"
	"net/http"

	"github.com/hongminglow/labubu-portal/internal/models/dto"
)

// AuthClient talks to the authentication service.
type AuthClient struct {
	ep endpoint
}

func NewAuthClient(httpClient *http.Client, baseURL string) *AuthClient {
	return &AuthClient{ep: newEndpoint(httpClient, baseURL, "auth")}
}

// Register creates an account. An empty referralCode is omitted from the request.
func (c *AuthClient) Register(ctx context.Context, email, password, phone, name, referralCode string) (dto.AuthResult, error) {
	req := dto.RegisterRequest{
		Action:   "register",
		Email:    email,
		Password: password,
		Phone:    phone,
		Name:     name,
	}
	if referralCode != "" {
		req.ReferralCode = &referralCode
	}
	var out dto.AuthResult
	err := c.ep.post(ctx, "", req, &out)
	return out, err
}

func (c *AuthClient) Login(ctx context.Context, email, password string) (dto.AuthResult, error) {
	var out dto.AuthResult
	err := c.ep.post(ctx, "", dto.LoginRequest{Action: "login", Email: email, Password: password}, &out)
	return out, err
}

// GetProfile fetches the user that token was issued for.
func (c *AuthClient) GetProfile(ctx context.Context, token string) (dto.AuthResult, error) {
	var out dto.AuthResult
	err := c.ep.get(ctx, token, nil, &out)
	return out, err
}
