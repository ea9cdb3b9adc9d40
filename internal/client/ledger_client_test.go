package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransaction() model.LedgerTransaction {
	return model.LedgerTransaction{
		StayID:        uuid.New(),
		ReservationID: uuid.New(),
		PostingDate:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Currency:      "USD",
		Lines: []model.LedgerLine{
			{AccountCode: "GL-GUEST", Memo: "guest ledger", Debit: decimal.RequireFromString("118.80")},
			{AccountCode: "REV-ROOM", Memo: "room revenue", Credit: decimal.RequireFromString("118.80")},
		},
	}
}

func TestLedgerClient_PostTransaction(t *testing.T) {
	tx := sampleTransaction()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transactions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var got model.LedgerTransaction
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, tx.StayID, got.StayID)
		require.Len(t, got.Lines, 2)
		assert.Equal(t, "GL-GUEST", got.Lines[0].AccountCode)
		assert.True(t, got.Lines[0].Debit.Equal(decimal.RequireFromString("118.80")))

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := NewLedgerClient(srv.URL, "test-key").PostTransaction(context.Background(), tx)
	require.NoError(t, err)
}

func TestLedgerClient_PostTransaction_NoAuthHeaderWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewLedgerClient(srv.URL, "").PostTransaction(context.Background(), sampleTransaction())
	require.NoError(t, err)
}

func TestLedgerClient_PostTransaction_RejectedByServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`unbalanced transaction`))
	}))
	defer srv.Close()

	err := NewLedgerClient(srv.URL, "test-key").PostTransaction(context.Background(), sampleTransaction())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemotePost)
	assert.Contains(t, err.Error(), "status 422")
	assert.Contains(t, err.Error(), "unbalanced transaction")
}

func TestLedgerClient_PostTransaction_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewLedgerClient(srv.URL, "test-key").PostTransaction(ctx, sampleTransaction())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemotePost)
}
