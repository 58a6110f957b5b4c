// Package remote wraps the upstream auth, loan, referral, and card services.
// Every call is attempted exactly once.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hongminglow/labubu-portal/internal/metrics"
	"github.com/hongminglow/labubu-portal/internal/models/dto"
)

// HeaderAuthToken carries the session token on every upstream request.
const HeaderAuthToken = "X-Auth-Token"

// ErrTransport indicates the upstream could not be reached or answered with something
// other than a well-formed response.
var ErrTransport = errors.New("upstream unavailable")

// Rejection is a domain-level failure reported by an upstream service.
type Rejection struct {
	Service string
	Status  int
	Message string
	Code    string
}

func (r *Rejection) Error() string {
	if r.Message == "" {
		return fmt.Sprintf("%s rejected request (status %d)", r.Service, r.Status)
	}
	return fmt.Sprintf("%s rejected request: %s", r.Service, r.Message)
}

// AsRejection unwraps a *Rejection from err.
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

type resultCarrier interface {
	Result() dto.Status
}

// endpoint performs JSON requests against one upstream URL.
type endpoint struct {
	http    *http.Client
	baseURL string
	service string
}

func newEndpoint(httpClient *http.Client, baseURL, service string) endpoint {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return endpoint{http: httpClient, baseURL: baseURL, service: service}
}

func (e endpoint) get(ctx context.Context, token string, query url.Values, out resultCarrier) error {
	return e.do(ctx, http.MethodGet, token, query, nil, out)
}

func (e endpoint) post(ctx context.Context, token string, payload any, out resultCarrier) error {
	return e.do(ctx, http.MethodPost, token, nil, payload, out)
}

func (e endpoint) do(ctx context.Context, method, token string, query url.Values, payload any, out resultCarrier) error {
	started := time.Now()
	err := e.roundTrip(ctx, method, token, query, payload, out)
	outcome := metrics.OutcomeOK
	switch {
	case errors.Is(err, ErrTransport):
		outcome = metrics.OutcomeTransport
	case err != nil:
		outcome = metrics.OutcomeRejected
	}
	metrics.ObserveUpstream(e.service, outcome, time.Since(started))
	return err
}

func (e endpoint) roundTrip(ctx context.Context, method, token string, query url.Values, payload any, out resultCarrier) error {
	target := e.baseURL
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", e.service, err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", e.service, err)
	}
	req.Header.Set(HeaderAuthToken, token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", e.service, ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%s: %w: status %d", e.service, ErrTransport, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: decode response: %v", e.service, ErrTransport, err)
	}

	status := out.Result()
	if !status.Success || resp.StatusCode >= http.StatusBadRequest {
		return &Rejection{
			Service: e.service,
			Status:  resp.StatusCode,
			Message: status.Error,
			Code:    status.Code,
		}
	}
	return nil
}
