package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"petcare-hub/internal/platform/httpclient"
	"petcare-hub/internal/ports/payments"
)

type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Timeout   time.Duration
}

// Client crea órdenes de pago (POST /v1/orders) y valida la firma del checkout.
type Client struct {
	http   *httpclient.Client
	keyID  string
	secret string
}

func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = "https://api.razorpay.com"
	}
	hc, err := httpclient.New(base, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	c := &Client{
		http:   hc,
		keyID:  strings.TrimSpace(cfg.KeyID),
		secret: strings.TrimSpace(cfg.KeySecret),
	}
	hc.Headers["Authorization"] = httpclient.BasicAuth(c.keyID, c.secret)
	return c, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.keyID != "" && c.secret != ""
}

type orderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt,omitempty"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

func (c *Client) CreateOrder(ctx context.Context, in payments.OrderRequest) (payments.Order, error) {
	if !c.IsConfigured() {
		return payments.Order{}, httpclient.ErrNotConfigured
	}
	if in.Amount <= 0 {
		return payments.Order{}, errors.New("amount must be positive")
	}
	cur := strings.ToUpper(strings.TrimSpace(in.Currency))
	if cur == "" {
		cur = "INR"
	}

	var out orderResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/v1/orders", nil, orderRequest{
		Amount:   in.Amount,
		Currency: cur,
		Receipt:  in.Receipt,
		Notes:    in.Notes,
	}, &out)
	if err != nil {
		return payments.Order{}, fmt.Errorf("razorpay create order: %w", err)
	}
	return payments.Order{
		ID:       out.ID,
		Amount:   out.Amount,
		Currency: out.Currency,
		Receipt:  out.Receipt,
		Status:   out.Status,
	}, nil
}

// VerifyPayment: firma = HMAC-SHA256(order_id + "|" + payment_id, key_secret) en hex.
func (c *Client) VerifyPayment(orderID, paymentID, signature string) bool {
	if !c.IsConfigured() || orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(c.secret, orderID, paymentID)), []byte(strings.ToLower(signature)))
}

// Sign calcula la firma esperada; exportado para tests y fakes.
func Sign(secret, orderID, paymentID string) string {
	m := hmac.New(sha256.New, []byte(secret))
	m.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(m.Sum(nil))
}
