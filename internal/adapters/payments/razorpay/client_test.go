package razorpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-hub/internal/platform/httpclient"
	"petcare-hub/internal/ports/payments"
)

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test", user)
		assert.Equal(t, "s3cr3t", pass)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 49900, body["amount"])
		assert.Equal(t, "INR", body["currency"])
		assert.Equal(t, "order-1", body["receipt"])

		_, _ = w.Write([]byte(`{"id":"order_Abc","amount":49900,"currency":"INR","receipt":"order-1","status":"created"}`))
	}))
	defer srv.Close()

	c, err := New(Config{KeyID: "rzp_test", KeySecret: "s3cr3t", BaseURL: srv.URL})
	require.NoError(t, err)

	o, err := c.CreateOrder(context.Background(), payments.OrderRequest{Amount: 49900, Currency: "inr", Receipt: "order-1"})
	require.NoError(t, err)
	assert.Equal(t, "order_Abc", o.ID)
	assert.Equal(t, "created", o.Status)
}

func TestCreateOrder_UpstreamErrorIsRelayed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"description":"amount too small"}}`))
	}))
	defer srv.Close()

	c, err := New(Config{KeyID: "k", KeySecret: "s", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.CreateOrder(context.Background(), payments.OrderRequest{Amount: 1})
	require.Error(t, err)
	st, ok := httpclient.StatusOf(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, st)
}

func TestCreateOrder_NotConfigured(t *testing.T) {
	c, err := New(Config{})
	require.NoError(t, err)
	_, err = c.CreateOrder(context.Background(), payments.OrderRequest{Amount: 100})
	assert.ErrorIs(t, err, httpclient.ErrNotConfigured)
}

func TestVerifyPayment(t *testing.T) {
	c, err := New(Config{KeyID: "k", KeySecret: "s"})
	require.NoError(t, err)

	sig := Sign("s", "order_1", "pay_1")
	assert.True(t, c.VerifyPayment("order_1", "pay_1", sig))
	assert.False(t, c.VerifyPayment("order_1", "pay_2", sig))
	assert.False(t, c.VerifyPayment("order_1", "pay_1", ""))
}
