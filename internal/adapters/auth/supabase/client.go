package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"petcare-hub/internal/platform/httpclient"
	"petcare-hub/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("supabase auth not configured")
	ErrUnauthorized  = errors.New("supabase unauthorized")
	ErrUpstream      = errors.New("supabase upstream error")
)

type Config struct {
	URL       string
	AnonKey   string
	JWTSecret string
	Timeout   time.Duration
}

// Client consulta GET /auth/v1/user. Se usa cuando no hay JWT secret local
// o la verificación local falla (p.ej. tokens firmados con otra clave).
type Client struct {
	http    *httpclient.Client
	anonKey string
}

func NewClient(cfg Config) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	hc, err := httpclient.New(strings.TrimSpace(cfg.URL), timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, anonKey: strings.TrimSpace(cfg.AnonKey)}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http.BaseURL != "" && c.anonKey != ""
}

type userResponse struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	AppMetadata map[string]any `json:"app_metadata"`
}

func (c *Client) FetchUser(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}

	var out userResponse
	err := c.http.DoJSON(ctx, http.MethodGet, "/auth/v1/user", map[string]string{
		"apikey":        c.anonKey,
		"Authorization": "Bearer " + token,
	}, nil, &out)
	if err != nil {
		if st, ok := httpclient.StatusOf(err); ok && (st == http.StatusUnauthorized || st == http.StatusForbidden) {
			return auth.Claims{}, ErrUnauthorized
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if strings.TrimSpace(out.ID) == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing id", ErrUpstream)
	}
	return auth.Claims{
		UserID: strings.TrimSpace(out.ID),
		Email:  strings.ToLower(strings.TrimSpace(out.Email)),
		Role:   stringFrom(out.AppMetadata, "role"),
	}, nil
}

func stringFrom(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}
