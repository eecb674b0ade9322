package bookings

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"petcare-hub/internal/middleware"
	"petcare-hub/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/bookings", createBookingHandler(svc))
	r.Get("/bookings", listMyBookingsHandler(svc))
	r.Get("/bookings/{bookingID}", getBookingHandler(svc))
	r.Post("/bookings/{bookingID}/status", updateStatusHandler(svc))
	r.Get("/organizations/{orgID}/bookings", listOrganizationBookingsHandler(svc))
}

type createBookingRequest struct {
	PetID          string      `json:"pet_id"`
	OrganizationID string      `json:"organization_id"`
	Service        ServiceType `json:"service" enums:"consultation,vaccination,grooming,boarding,training,surgery"`
	StartsAt       string      `json:"starts_at"`         // RFC3339
	EndsAt         string      `json:"ends_at,omitempty"` // RFC3339 opcional
	Notes          string      `json:"notes"`
}

type updateStatusRequest struct {
	Status Status `json:"status" enums:"confirmed,cancelled,completed,no_show"`
}

type bookingResponse struct {
	ID             string      `json:"id"`
	PetID          string      `json:"pet_id"`
	OrganizationID string      `json:"organization_id"`
	UserID         string      `json:"user_id"`
	Service        ServiceType `json:"service"`
	StartsAt       time.Time   `json:"starts_at"`
	EndsAt         time.Time   `json:"ends_at"`
	Status         Status      `json:"status"`
	Notes          string      `json:"notes"`
	RemindedAt     *time.Time  `json:"reminded_at,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// createBookingHandler godoc
// @Summary Reservar turno
// @Description El usuario debe ser dueño de la mascota. ends_at por defecto es starts_at + 30 minutos.
// @Tags bookings
// @Accept json
// @Produce json
// @Param payload body createBookingRequest true "Turno (fechas RFC3339)"
// @Success 201 {object} bookingResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /bookings [post]
func createBookingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createBookingRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		startsAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.StartsAt))
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "starts_at must be RFC3339")
			return
		}
		var endsAt time.Time
		if strings.TrimSpace(req.EndsAt) != "" {
			endsAt, err = time.Parse(time.RFC3339, strings.TrimSpace(req.EndsAt))
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "ends_at must be RFC3339")
				return
			}
		}

		b, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			PetID:          req.PetID,
			OrganizationID: req.OrganizationID,
			Service:        req.Service,
			StartsAt:       startsAt,
			EndsAt:         endsAt,
			Notes:          req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toBookingResponse(b))
	}
}

// listMyBookingsHandler godoc
// @Summary Mis turnos
// @Tags bookings
// @Produce json
// @Success 200 {array} bookingResponse
// @Failure 403 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /bookings [get]
func listMyBookingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListMine(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toBookingResponses(items))
	}
}

// getBookingHandler godoc
// @Summary Ver turno
// @Description Quien reservó o miembros de la organización.
// @Tags bookings
// @Produce json
// @Param bookingID path string true "ID del turno"
// @Success 200 {object} bookingResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /bookings/{bookingID} [get]
func getBookingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		b, err := svc.Get(r.Context(), chi.URLParam(r, "bookingID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toBookingResponse(b))
	}
}

// updateStatusHandler godoc
// @Summary Cambiar estado del turno
// @Description pending->confirmed (staff), pending|confirmed->cancelled (quien reservó o staff), confirmed->completed|no_show (staff).
// @Tags bookings
// @Accept json
// @Produce json
// @Param bookingID path string true "ID del turno"
// @Param payload body updateStatusRequest true "Nuevo estado"
// @Success 200 {object} bookingResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 409 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /bookings/{bookingID}/status [post]
func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req updateStatusRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		status := Status(strings.ToLower(strings.TrimSpace(string(req.Status))))
		b, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "bookingID"), claims.UserID, status)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toBookingResponse(b))
	}
}

// listOrganizationBookingsHandler godoc
// @Summary Agenda de la organización
// @Tags bookings
// @Produce json
// @Param orgID path string true "ID de la organización"
// @Param status query string false "pending, confirmed, cancelled, completed, no_show"
// @Param from query string false "RFC3339, inclusive"
// @Param to query string false "RFC3339, exclusivo"
// @Success 200 {array} bookingResponse
// @Failure 403 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /organizations/{orgID}/bookings [get]
func listOrganizationBookingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		q := r.URL.Query()
		f := Filter{Status: Status(strings.ToLower(strings.TrimSpace(q.Get("status"))))}
		for _, p := range []struct {
			key string
			dst **time.Time
		}{{"from", &f.From}, {"to", &f.To}} {
			v := strings.TrimSpace(q.Get(p.key))
			if v == "" {
				continue
			}
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, p.key+" must be RFC3339")
				return
			}
			*p.dst = &t
		}

		items, err := svc.ListByOrganization(r.Context(), chi.URLParam(r, "orgID"), claims.UserID, f)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toBookingResponses(items))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrBadState), errors.Is(err, ErrConflict):
		httpx.WriteError(w, http.StatusConflict, err.Error())
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func toBookingResponse(b Booking) bookingResponse {
	return bookingResponse{
		ID:             b.ID,
		PetID:          b.PetID,
		OrganizationID: b.OrganizationID,
		UserID:         b.UserID,
		Service:        b.Service,
		StartsAt:       b.StartsAt,
		EndsAt:         b.EndsAt,
		Status:         b.Status,
		Notes:          b.Notes,
		RemindedAt:     b.RemindedAt,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func toBookingResponses(items []Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(items))
	for _, b := range items {
		out = append(out, toBookingResponse(b))
	}
	return out
}
