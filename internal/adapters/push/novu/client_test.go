package novu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-hub/internal/ports/notify"
)

func TestTrigger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/events/trigger", r.URL.Path)
		assert.Equal(t, "ApiKey nv", r.Header.Get("Authorization"))

		var body triggerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "booking-confirmed", body.Name)
		assert.Equal(t, "user-1", body.To.SubscriberID)
		assert.Equal(t, "Milo", body.Payload["pet"])

		_, _ = w.Write([]byte(`{"data":{"acknowledged":true,"status":"processed","transactionId":"tx-1"}}`))
	}))
	defer srv.Close()

	c, err := New(Config{APIKey: "nv", BaseURL: srv.URL})
	require.NoError(t, err)

	res, err := c.Trigger(context.Background(), notify.Trigger{
		Workflow:     "booking-confirmed",
		SubscriberID: "user-1",
		Payload:      map[string]any{"pet": "Milo"},
	})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.Equal(t, "tx-1", res.TransactionID)
}

func TestTrigger_RequiresSubscriber(t *testing.T) {
	c, err := New(Config{APIKey: "nv"})
	require.NoError(t, err)
	_, err = c.Trigger(context.Background(), notify.Trigger{Workflow: "w"})
	assert.Error(t, err)
}
