package resend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"petcare-hub/internal/platform/httpclient"
	"petcare-hub/internal/ports/notify"
)

type Config struct {
	APIKey  string
	From    string
	BaseURL string
	Timeout time.Duration
}

// Client implementa notify.Mailer con POST /emails.
type Client struct {
	http   *httpclient.Client
	apiKey string
	from   string
}

func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = "https://api.resend.com"
	}
	hc, err := httpclient.New(base, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	c := &Client{http: hc, apiKey: strings.TrimSpace(cfg.APIKey), from: strings.TrimSpace(cfg.From)}
	hc.Headers["Authorization"] = "Bearer " + c.apiKey
	return c, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != "" && c.from != ""
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (c *Client) Send(ctx context.Context, in notify.Email) (string, error) {
	if !c.IsConfigured() {
		return "", httpclient.ErrNotConfigured
	}
	if len(in.To) == 0 || strings.TrimSpace(in.Subject) == "" {
		return "", errors.New("to and subject are required")
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := c.http.DoJSON(ctx, http.MethodPost, "/emails", nil, sendRequest{
		From:    c.from,
		To:      in.To,
		Subject: in.Subject,
		HTML:    in.HTML,
	}, &out); err != nil {
		return "", fmt.Errorf("resend send: %w", err)
	}
	return out.ID, nil
}
