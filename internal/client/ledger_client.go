package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"backend/internal/model"
)

// ErrRemotePost marks a failed submission to the remote ledger. Callers
// treat it as non-fatal for the run: the stay is recorded as failed and
// the audit continues with the next one.
var ErrRemotePost = errors.New("remote ledger post failed")

// LedgerAPI is the write side of the remote ledger service.
type LedgerAPI interface {
	PostTransaction(ctx context.Context, tx model.LedgerTransaction) error
}

type ledgerClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewLedgerClient builds an HTTP client for the remote ledger. Each call is
// a single bounded attempt; there is no retry.
func NewLedgerClient(baseURL, apiKey string) LedgerAPI {
	return &ledgerClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *ledgerClient) PostTransaction(ctx context.Context, tx model.LedgerTransaction) error {
	body, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("%w: encode transaction: %v", ErrRemotePost, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transactions", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrRemotePost, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemotePost, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrRemotePost, resp.StatusCode, string(msg))
	}

	return nil
}
