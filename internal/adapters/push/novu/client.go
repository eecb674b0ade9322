package novu

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
	BaseURL string
	Timeout time.Duration
}

// Client implementa notify.Pusher con POST /v1/events/trigger.
type Client struct {
	http   *httpclient.Client
	apiKey string
}

func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = "https://api.novu.co"
	}
	hc, err := httpclient.New(base, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	c := &Client{http: hc, apiKey: strings.TrimSpace(cfg.APIKey)}
	hc.Headers["Authorization"] = "ApiKey " + c.apiKey
	return c, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

type triggerRequest struct {
	Name    string         `json:"name"`
	To      triggerTo      `json:"to"`
	Payload map[string]any `json:"payload"`
}

type triggerTo struct {
	SubscriberID string `json:"subscriberId"`
}

func (c *Client) Trigger(ctx context.Context, in notify.Trigger) (notify.TriggerResult, error) {
	if !c.IsConfigured() {
		return notify.TriggerResult{}, httpclient.ErrNotConfigured
	}
	if strings.TrimSpace(in.Workflow) == "" || strings.TrimSpace(in.SubscriberID) == "" {
		return notify.TriggerResult{}, errors.New("workflow and subscriber id are required")
	}
	payload := in.Payload
	if payload == nil {
		payload = map[string]any{}
	}

	var out struct {
		Data struct {
			Acknowledged  bool   `json:"acknowledged"`
			TransactionID string `json:"transactionId"`
		} `json:"data"`
	}
	if err := c.http.DoJSON(ctx, http.MethodPost, "/v1/events/trigger", nil, triggerRequest{
		Name:    in.Workflow,
		To:      triggerTo{SubscriberID: in.SubscriberID},
		Payload: payload,
	}, &out); err != nil {
		return notify.TriggerResult{}, fmt.Errorf("novu trigger: %w", err)
	}
	return notify.TriggerResult{
		Acknowledged:  out.Data.Acknowledged,
		TransactionID: out.Data.TransactionID,
	}, nil
}
