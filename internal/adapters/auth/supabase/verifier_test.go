package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestVerifier_LocalJWT(t *testing.T) {
	v, err := NewVerifier(Config{JWTSecret: testSecret})
	require.NoError(t, err)

	tok := sign(t, testSecret, jwt.MapClaims{
		"sub":          "user-1",
		"email":        "Owner@Example.com",
		"exp":          time.Now().Add(time.Hour).Unix(),
		"app_metadata": map[string]any{"role": "admin"},
	})

	c, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", c.UserID)
	assert.Equal(t, "owner@example.com", c.Email)
	assert.True(t, c.IsPlatformAdmin())
}

func TestVerifier_RejectsExpiredAndWrongSecret(t *testing.T) {
	v, err := NewVerifier(Config{JWTSecret: testSecret})
	require.NoError(t, err)

	expired := sign(t, testSecret, jwt.MapClaims{"sub": "u", "exp": time.Now().Add(-time.Minute).Unix()})
	_, err = v.Verify(context.Background(), expired)
	assert.Error(t, err)

	wrong := sign(t, "another-secret-another-secret-another", jwt.MapClaims{"sub": "u", "exp": time.Now().Add(time.Hour).Unix()})
	_, err = v.Verify(context.Background(), wrong)
	assert.Error(t, err)

	noExp := sign(t, testSecret, jwt.MapClaims{"sub": "u"})
	_, err = v.Verify(context.Background(), noExp)
	assert.Error(t, err)

	_, err = v.Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}

func TestVerifier_FallsBackToAuthAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":"user-9","email":"vet@clinic.io","app_metadata":{"provider":"email"}}`))
	}))
	defer srv.Close()

	v, err := NewVerifier(Config{URL: srv.URL, AnonKey: "anon", JWTSecret: testSecret})
	require.NoError(t, err)

	c, err := v.Verify(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "user-9", c.UserID)
	assert.Equal(t, "", c.Role)

	_, err = v.Verify(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestNewVerifier_RequiresSomething(t *testing.T) {
	_, err := NewVerifier(Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
