package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_JoinsParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "g-key", r.Header.Get("x-goog-api-key"))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Brush "},{"text":"weekly."}]}}]}`))
	}))
	defer srv.Close()

	c, err := New(Config{APIKey: "g-key", BaseURL: srv.URL})
	require.NoError(t, err)

	text, err := c.Generate(context.Background(), "grooming tips for a husky")
	require.NoError(t, err)
	assert.Equal(t, "Brush weekly.", text)
}

func TestGenerate_Blocked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"promptFeedback":{"blockReason":"SAFETY"}}`))
	}))
	defer srv.Close()

	c, err := New(Config{APIKey: "g-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "something")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
	assert.Contains(t, err.Error(), "SAFETY")
}

func TestGenerate_EmptyPrompt(t *testing.T) {
	c, err := New(Config{APIKey: "k"})
	require.NoError(t, err)
	_, err = c.Generate(context.Background(), "   ")
	assert.Error(t, err)
}
