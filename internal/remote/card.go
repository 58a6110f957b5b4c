package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hongminglow/labubu-portal/internal/models"
	"github.com/hongminglow/labubu-portal/internal/models/dto"
)

// CardClient talks to the virtual card service.
type CardClient struct {
	ep endpoint
}

func NewCardClient(httpClient *http.Client, baseURL string) *CardClient {
	return &CardClient{ep: newEndpoint(httpClient, baseURL, "card")}
}

// Card returns the caller's card. The service issues one on first access.
func (c *CardClient) Card(ctx context.Context, sess models.Session) (dto.CardResult, error) {
	var out dto.CardResult
	err := c.ep.get(ctx, sess.Token, nil, &out)
	return out, err
}

func (c *CardClient) Transactions(ctx context.Context, sess models.Session) (dto.TransactionsResult, error) {
	var out dto.TransactionsResult
	err := c.ep.get(ctx, sess.Token, url.Values{"transactions": {"true"}}, &out)
	return out, err
}

// CreateTransfer sends amount from the card to phone over SBP.
func (c *CardClient) CreateTransfer(ctx context.Context, sess models.Session, phone string, amount float64, comment string) (dto.TransferResult, error) {
	var out dto.TransferResult
	err := c.ep.post(ctx, sess.Token, dto.TransferRequest{
		Action:  models.TransactionSBPTransfer,
		Phone:   phone,
		Amount:  amount,
		Comment: comment,
	}, &out)
	return out, err
}
