package integrations

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"petcare-hub/internal/middleware"
	"petcare-hub/internal/platform/httpclient"
	"petcare-hub/internal/platform/httpx"
	"petcare-hub/internal/ports/notify"
)

// RegisterRoutes monta los proxies bajo /api. Todos requieren sesión.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/api/ai/generate", generateHandler(svc))
	r.Post("/api/payments/orders", createPaymentOrderHandler(svc))
	r.Post("/api/email/send", sendEmailHandler(svc))
	r.Post("/api/notifications/trigger", triggerHandler(svc))
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

type paymentOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type paymentOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
	Status   string `json:"status,omitempty"`
}

type sendEmailRequest struct {
	OrganizationID string   `json:"organization_id"`
	To             []string `json:"to"`
	Subject        string   `json:"subject"`
	HTML           string   `json:"html"`
}

type sendEmailResponse struct {
	ID string `json:"id"`
}

type triggerRequest struct {
	SubscriberID string         `json:"subscriber_id"`
	Workflow     string         `json:"workflow"`
	Payload      map[string]any `json:"payload"`
}

type triggerResponse struct {
	Acknowledged  bool   `json:"acknowledged"`
	TransactionID string `json:"transaction_id,omitempty"`
}

// generateHandler godoc
// @Summary Generar texto
// @Tags integrations
// @Accept json
// @Produce json
// @Param payload body generateRequest true "Prompt"
// @Success 200 {object} generateResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 502 {object} httpx.ErrorBody
// @Failure 503 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /api/ai/generate [post]
func generateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req generateRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		text, err := svc.Generate(r.Context(), req.Prompt)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, generateResponse{Text: text})
	}
}

// createPaymentOrderHandler godoc
// @Summary Crear orden de pago
// @Description amount en unidades menores (paise).
// @Tags integrations
// @Accept json
// @Produce json
// @Param payload body paymentOrderRequest true "Orden"
// @Success 200 {object} paymentOrderResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 502 {object} httpx.ErrorBody
// @Failure 503 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /api/payments/orders [post]
func createPaymentOrderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req paymentOrderRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		o, err := svc.CreatePaymentOrder(r.Context(), claims.UserID, PaymentOrderInput{
			Amount:   req.Amount,
			Currency: req.Currency,
			Receipt:  req.Receipt,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, paymentOrderResponse{
			ID:       o.ID,
			Amount:   o.Amount,
			Currency: o.Currency,
			Receipt:  o.Receipt,
			Status:   o.Status,
		})
	}
}

// sendEmailHandler godoc
// @Summary Enviar email
// @Description Admin de plataforma, u owner/admin de organization_id.
// @Tags integrations
// @Accept json
// @Produce json
// @Param payload body sendEmailRequest true "Email"
// @Success 200 {object} sendEmailResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 502 {object} httpx.ErrorBody
// @Failure 503 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /api/email/send [post]
func sendEmailHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req sendEmailRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		id, err := svc.SendEmail(r.Context(), claims, EmailInput{
			OrganizationID: req.OrganizationID,
			To:             req.To,
			Subject:        req.Subject,
			HTML:           req.HTML,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, sendEmailResponse{ID: id})
	}
}

// triggerHandler godoc
// @Summary Disparar notificación
// @Tags integrations
// @Accept json
// @Produce json
// @Param payload body triggerRequest true "Workflow y destinatario"
// @Success 200 {object} triggerResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 502 {object} httpx.ErrorBody
// @Failure 503 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /api/notifications/trigger [post]
func triggerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req triggerRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		res, err := svc.TriggerNotification(r.Context(), claims, notify.Trigger{
			Workflow:     req.Workflow,
			SubscriberID: req.SubscriberID,
			Payload:      req.Payload,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, triggerResponse{
			Acknowledged:  res.Acknowledged,
			TransactionID: res.TransactionID,
		})
	}
}

// writeServiceError: los 4xx del proveedor se devuelven tal cual (request
// inválido del cliente); 5xx y errores de red son 502.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, ErrNotConfigured):
		httpx.WriteError(w, http.StatusServiceUnavailable, "provider not configured")
	default:
		if status, ok := httpclient.StatusOf(err); ok && status >= 400 && status < 500 {
			httpx.WriteError(w, status, err.Error())
			return
		}
		httpx.WriteError(w, http.StatusBadGateway, err.Error())
	}
}
