package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hongminglow/labubu-portal/internal/models"
	"github.com/hongminglow/labubu-portal/internal/models/dto"
)

// LoanClient talks to the loan service.
type LoanClient struct {
	ep endpoint
}

func NewLoanClient(httpClient *http.Client, baseURL string) *LoanClient {
	return &LoanClient{ep: newEndpoint(httpClient, baseURL, "loans")}
}

// Create submits a loan application.
func (c *LoanClient) Create(ctx context.Context, sess models.Session, amount float64, termDays int, purpose string) (dto.CreateLoanResult, error) {
	var out dto.CreateLoanResult
	err := c.ep.post(ctx, sess.Token, dto.CreateLoanRequest{
		Action:   "create",
		Amount:   amount,
		TermDays: termDays,
		Purpose:  purpose,
	}, &out)
	return out, err
}

// List returns the caller's loans, optionally filtered by status.
func (c *LoanClient) List(ctx context.Context, sess models.Session, status models.LoanStatus) (dto.LoanListResult, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": {string(status)}}
	}
	var out dto.LoanListResult
	err := c.ep.get(ctx, sess.Token, query, &out)
	return out, err
}

func (c *LoanClient) GetByID(ctx context.Context, sess models.Session, id int64) (dto.LoanResult, error) {
	var out dto.LoanResult
	err := c.ep.get(ctx, sess.Token, url.Values{"loan_id": {strconv.FormatInt(id, 10)}}, &out)
	return out, err
}

func (c *LoanClient) Stats(ctx context.Context, sess models.Session) (dto.LoanStatsResult, error) {
	var out dto.LoanStatsResult
	err := c.ep.get(ctx, sess.Token, url.Values{"stats": {"true"}}, &out)
	return out, err
}
