// Package integrations expone los proxies a proveedores externos (texto,
// pagos, email, push). Arma el request, llama al adapter y devuelve la
// respuesta o el error tal cual; no reintenta.
package integrations

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"petcare-hub/internal/domain/organizations"
	"petcare-hub/internal/platform/httpclient"
	"petcare-hub/internal/platform/logger"
	"petcare-hub/internal/platform/metrics"
	"petcare-hub/internal/ports/auth"
	"petcare-hub/internal/ports/notify"
	"petcare-hub/internal/ports/payments"
	"petcare-hub/internal/ports/textgen"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	// ErrNotConfigured es el mismo error que devuelven los adapters sin credenciales.
	ErrNotConfigured = httpclient.ErrNotConfigured
)

const (
	maxPromptLen   = 8000
	maxRecipients  = 50
	maxReceiptLen  = 40
	maxSubjectLen  = 200
	maxWorkflowLen = 100
)

// Memberships lo implementa organizations.Service.
type Memberships interface {
	MemberRole(ctx context.Context, orgID, userID string) (organizations.Role, error)
}

// Providers: cualquiera puede ser nil (=> ErrNotConfigured).
type Providers struct {
	Text     textgen.Generator
	Payments payments.Gateway
	Mailer   notify.Mailer
	Pusher   notify.Pusher
}

type Service struct {
	providers Providers
	members   Memberships
	metrics   *metrics.Metrics
	log       logger.Logger
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(p Providers, members Memberships, opts ...Option) *Service {
	s := &Service{
		providers: p,
		members:   members,
		log:       logger.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" || utf8.RuneCountInString(prompt) > maxPromptLen {
		return "", fmt.Errorf("%w: prompt must be 1-%d chars", ErrInvalidInput, maxPromptLen)
	}
	if s.providers.Text == nil {
		return "", ErrNotConfigured
	}
	text, err := s.providers.Text.Generate(ctx, prompt)
	s.observe(ctx, "gemini", err)
	return text, err
}

type PaymentOrderInput struct {
	Amount   int64
	Currency string
	Receipt  string
}

// CreatePaymentOrder: amount en unidades menores. Sin receipt se genera uno.
func (s *Service) CreatePaymentOrder(ctx context.Context, userID string, in PaymentOrderInput) (payments.Order, error) {
	if in.Amount <= 0 {
		return payments.Order{}, fmt.Errorf("%w: amount must be a positive integer in minor units", ErrInvalidInput)
	}
	cur := strings.ToUpper(strings.TrimSpace(in.Currency))
	if cur == "" {
		cur = "INR"
	}
	if len(cur) != 3 {
		return payments.Order{}, fmt.Errorf("%w: currency must be an ISO 4217 code", ErrInvalidInput)
	}
	receipt := strings.TrimSpace(in.Receipt)
	if receipt == "" {
		receipt = "rcpt_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
	}
	if len(receipt) > maxReceiptLen {
		return payments.Order{}, fmt.Errorf("%w: receipt must be at most %d chars", ErrInvalidInput, maxReceiptLen)
	}
	if s.providers.Payments == nil {
		return payments.Order{}, ErrNotConfigured
	}

	o, err := s.providers.Payments.CreateOrder(ctx, payments.OrderRequest{
		Amount:   in.Amount,
		Currency: cur,
		Receipt:  receipt,
		Notes:    map[string]string{"user_id": userID},
	})
	s.observe(ctx, "razorpay", err)
	return o, err
}

type EmailInput struct {
	OrganizationID string
	To             []string
	Subject        string
	HTML           string
}

// SendEmail: admin de plataforma, u owner/admin de la organización indicada.
func (s *Service) SendEmail(ctx context.Context, claims auth.Claims, in EmailInput) (string, error) {
	if !claims.IsPlatformAdmin() {
		orgID := strings.TrimSpace(in.OrganizationID)
		if orgID == "" {
			return "", fmt.Errorf("%w: organization_id is required", ErrForbidden)
		}
		role, err := s.members.MemberRole(ctx, orgID, claims.UserID)
		if err != nil {
			return "", err
		}
		if !role.CanManage() {
			return "", ErrForbidden
		}
	}

	if len(in.To) == 0 || len(in.To) > maxRecipients {
		return "", fmt.Errorf("%w: to must have 1-%d recipients", ErrInvalidInput, maxRecipients)
	}
	to := make([]string, 0, len(in.To))
	for _, raw := range in.To {
		addr, err := mail.ParseAddress(strings.TrimSpace(raw))
		if err != nil {
			return "", fmt.Errorf("%w: invalid recipient %q", ErrInvalidInput, raw)
		}
		to = append(to, addr.Address)
	}
	subject := strings.TrimSpace(in.Subject)
	if subject == "" || len(subject) > maxSubjectLen {
		return "", fmt.Errorf("%w: subject must be 1-%d chars", ErrInvalidInput, maxSubjectLen)
	}
	if strings.TrimSpace(in.HTML) == "" {
		return "", fmt.Errorf("%w: html is required", ErrInvalidInput)
	}
	if s.providers.Mailer == nil {
		return "", ErrNotConfigured
	}

	id, err := s.providers.Mailer.Send(ctx, notify.Email{To: to, Subject: subject, HTML: in.HTML})
	s.observe(ctx, "resend", err)
	return id, err
}

// TriggerNotification: cada usuario se notifica a sí mismo; a otros
// suscriptores solo el admin de plataforma.
func (s *Service) TriggerNotification(ctx context.Context, claims auth.Claims, in notify.Trigger) (notify.TriggerResult, error) {
	in.Workflow = strings.TrimSpace(in.Workflow)
	in.SubscriberID = strings.TrimSpace(in.SubscriberID)
	if in.Workflow == "" || len(in.Workflow) > maxWorkflowLen {
		return notify.TriggerResult{}, fmt.Errorf("%w: workflow is required", ErrInvalidInput)
	}
	if in.SubscriberID == "" {
		return notify.TriggerResult{}, fmt.Errorf("%w: subscriber_id is required", ErrInvalidInput)
	}
	if in.SubscriberID != claims.UserID && !claims.IsPlatformAdmin() {
		return notify.TriggerResult{}, ErrForbidden
	}
	if s.providers.Pusher == nil {
		return notify.TriggerResult{}, ErrNotConfigured
	}

	res, err := s.providers.Pusher.Trigger(ctx, in)
	s.observe(ctx, "novu", err)
	return res, err
}

func (s *Service) observe(ctx context.Context, provider string, err error) {
	if errors.Is(err, ErrNotConfigured) {
		return
	}
	s.metrics.ObserveUpstream(provider, err)
	if err != nil && ctx.Err() == nil {
		s.log.Warn("upstream call failed", map[string]any{"provider": provider, "error": err})
	}
}
