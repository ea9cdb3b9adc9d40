package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFXClient_GetRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rates", r.URL.Path)
		assert.Equal(t, "EUR", r.URL.Query().Get("base"))
		assert.Equal(t, "USD", r.URL.Query().Get("target"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rate": "1.0842"}`))
	}))
	defer srv.Close()

	rate, err := NewFXClient(srv.URL).GetRate(context.Background(), "EUR", "USD")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("1.0842")), "got %s", rate)
}

func TestFXClient_GetRate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewFXClient(srv.URL).GetRate(context.Background(), "EUR", "USD")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateUnavailable)
	assert.Contains(t, err.Error(), "EUR->USD")
}

func TestFXClient_GetRate_RejectsNonPositiveRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rate": "0"}`))
	}))
	defer srv.Close()

	_, err := NewFXClient(srv.URL).GetRate(context.Background(), "JPY", "USD")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateUnavailable)
}

func TestFXClient_GetRate_UnreachableHost(t *testing.T) {
	_, err := NewFXClient("http://127.0.0.1:1").GetRate(context.Background(), "EUR", "USD")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateUnavailable)
}
