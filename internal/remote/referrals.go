package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hongminglow/labubu-portal/internal/models"
	"github.com/hongminglow/labubu-portal/internal/models/dto"
)

// ReferralClient talks to the referral service.
type ReferralClient struct {
	ep endpoint
}

func NewReferralClient(httpClient *http.Client, baseURL string) *ReferralClient {
	return &ReferralClient{ep: newEndpoint(httpClient, baseURL, "referrals")}
}

func (c *ReferralClient) Stats(ctx context.Context, sess models.Session) (dto.ReferralStatsResult, error) {
	var out dto.ReferralStatsResult
	err := c.ep.get(ctx, sess.Token, url.Values{"stats": {"true"}}, &out)
	return out, err
}

func (c *ReferralClient) List(ctx context.Context, sess models.Session) (dto.ReferralListResult, error) {
	var out dto.ReferralListResult
	err := c.ep.get(ctx, sess.Token, url.Values{"list": {"true"}}, &out)
	return out, err
}

func (c *ReferralClient) BonusHistory(ctx context.Context, sess models.Session) (dto.BonusHistoryResult, error) {
	var out dto.BonusHistoryResult
	err := c.ep.get(ctx, sess.Token, url.Values{"bonuses": {"true"}}, &out)
	return out, err
}
