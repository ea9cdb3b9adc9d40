package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// ErrRateUnavailable marks a failed exchange-rate lookup. Stays priced in
// the affected currency must be blocked from posting — never posted with a
// substituted 1:1 rate.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// FXAPI resolves a conversion rate from one currency into another.
type FXAPI interface {
	GetRate(ctx context.Context, base, target string) (decimal.Decimal, error)
}

type fxClient struct {
	baseURL string
	http    *http.Client
}

// NewFXClient builds an HTTP client for the exchange-rate service. Single
// bounded attempt per lookup, no retry.
func NewFXClient(baseURL string) FXAPI {
	return &fxClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *fxClient) GetRate(ctx context.Context, base, target string) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("base", base)
	q.Set("target", target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rates?"+q.Encode(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: build request: %v", ErrRateUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s->%s: %v", ErrRateUnavailable, base, target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: %s->%s: status %d", ErrRateUnavailable, base, target, resp.StatusCode)
	}

	var payload struct {
		Rate decimal.Decimal `json:"rate"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s->%s: decode: %v", ErrRateUnavailable, base, target, err)
	}

	if payload.Rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: %s->%s: non-positive rate %s", ErrRateUnavailable, base, target, payload.Rate)
	}

	return payload.Rate, nil
}
