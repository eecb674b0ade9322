package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"petcare-hub/internal/platform/httpclient"
)

var ErrEmptyCompletion = errors.New("gemini returned no text")

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client implementa textgen.Generator con generateContent.
type Client struct {
	http   *httpclient.Client
	apiKey string
	model  string
}

func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = "https://generativelanguage.googleapis.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	hc, err := httpclient.New(base, timeout)
	if err != nil {
		return nil, err
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-1.5-flash"
	}
	c := &Client{http: hc, apiKey: strings.TrimSpace(cfg.APIKey), model: model}
	hc.Headers["x-goog-api-key"] = c.apiKey
	return c, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.IsConfigured() {
		return "", httpclient.ErrNotConfigured
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt is required")
	}

	path := fmt.Sprintf("/v1beta/models/%s:generateContent", url.PathEscape(c.model))
	raw, err := c.http.Do(ctx, http.MethodPost, path, nil, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	// La respuesta trae varias partes; concatenamos las del primer candidato.
	var sb strings.Builder
	gjson.GetBytes(raw, "candidates.0.content.parts.#.text").ForEach(func(_, v gjson.Result) bool {
		sb.WriteString(v.String())
		return true
	})
	text := strings.TrimSpace(sb.String())
	if text == "" {
		if reason := gjson.GetBytes(raw, "promptFeedback.blockReason").String(); reason != "" {
			return "", fmt.Errorf("%w: blocked (%s)", ErrEmptyCompletion, reason)
		}
		return "", ErrEmptyCompletion
	}
	return text, nil
}
