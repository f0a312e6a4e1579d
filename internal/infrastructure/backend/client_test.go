package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	"github.com/sangkips/phonehub-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL+"/api/", 2*time.Second, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestFetchCatalog(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/items", r.URL.Path)
		w.Write([]byte(`[{"id": 1}]`))
	})

	raw, err := c.FetchCatalog(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id": 1}]`, string(raw))
}

func TestCreateSale(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/pos/sales", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data": {"id": 88, "total_amount": 477}}`))
	})

	payload := &entity.SalePayload{
		Items: []entity.SaleLine{
			{ItemID: "1", Category: enum.CategoryPhone, Quantity: 2, UnitPrice: decimal.NewFromInt(250)},
		},
		TotalAmount:   decimal.RequireFromString("477"),
		PaidAmount:    decimal.RequireFromString("500"),
		PaymentMethod: enum.PaymentCash,
		WorkerID:      "7",
	}
	result, err := c.CreateSale(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, "88", result.ID)

	assert.Equal(t, float64(477), got["total_amount"])
	assert.Equal(t, "cash", got["payment_method"])
	items := got["items"].([]any)
	require.Len(t, items, 1)
	line := items[0].(map[string]any)
	assert.Equal(t, "phone", line["type"])
	assert.Equal(t, float64(250), line["price"])
}

func TestStatusErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "week", r.URL.Query().Get("filter"))
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message": "Insufficient stock for item 12"}`))
	})

	_, err := c.FetchTransactions(context.Background(), repository.FilterWeek)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.Status)
	assert.Contains(t, err.Error(), "Insufficient stock for item 12")
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient("localhost:3000", time.Second, zap.NewNop())
	assert.Error(t, err)
}
