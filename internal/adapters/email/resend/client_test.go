package resend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-hub/internal/platform/httpclient"
	"petcare-hub/internal/ports/notify"
)

func TestSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_123", r.Header.Get("Authorization"))

		var body sendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "PetCare <no-reply@petcare.local>", body.From)
		assert.Equal(t, []string{"vet@clinic.io"}, body.To)

		_, _ = w.Write([]byte(`{"id":"msg_1"}`))
	}))
	defer srv.Close()

	c, err := New(Config{APIKey: "re_123", From: "PetCare <no-reply@petcare.local>", BaseURL: srv.URL})
	require.NoError(t, err)

	id, err := c.Send(context.Background(), notify.Email{To: []string{"vet@clinic.io"}, Subject: "Hi", HTML: "<p>x</p>"})
	require.NoError(t, err)
	assert.Equal(t, "msg_1", id)
}

func TestSend_Validation(t *testing.T) {
	c, err := New(Config{})
	require.NoError(t, err)
	_, err = c.Send(context.Background(), notify.Email{To: []string{"a@b.c"}, Subject: "s"})
	assert.ErrorIs(t, err, httpclient.ErrNotConfigured)

	c, err = New(Config{APIKey: "k", From: "f@x.io"})
	require.NoError(t, err)
	_, err = c.Send(context.Background(), notify.Email{Subject: "s"})
	assert.Error(t, err)
}
