package medicalrecords

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"petcare-hub/internal/domain/media"
	"petcare-hub/internal/middleware"
	"petcare-hub/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, files *media.Service) {
	r.Post("/pets/{petID}/records", createRecordHandler(svc, files))
	r.Get("/pets/{petID}/records", listRecordsHandler(svc, files))
	r.Get("/pets/{petID}/records/due", listDueHandler(svc, files))
	r.Get("/pets/{petID}/records/{recordID}", getRecordHandler(svc, files))
	r.Post("/pets/{petID}/records/{recordID}/void", voidRecordHandler(svc, files))
	r.Post("/pets/{petID}/records/{recordID}/attachments", addAttachmentHandler(svc, files))
}

// createRecordRequest es el cuerpo para registrar una entrada de historia clínica.
type createRecordRequest struct {
	Type           RecordType `json:"type" enums:"CHECKUP,VACCINATION,DEWORMING,PRESCRIPTION,DIAGNOSIS,SURGERY,LAB_RESULT,ALLERGY,NOTE"`
	OccurredAt     string     `json:"occurred_at"` // RFC3339
	Title          string     `json:"title"`
	Notes          string     `json:"notes"`
	NextDueAt      string     `json:"next_due_at,omitempty"` // RFC3339 opcional
	Visibility     Visibility `json:"visibility" enums:"private,shared"`
	OrganizationID string     `json:"organization_id,omitempty"`
}

type attachmentResponse struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
}

// recordResponse representa una entrada de la historia clínica devuelta por la API.
type recordResponse struct {
	ID             string               `json:"id"`
	PetID          string               `json:"pet_id"`
	OrganizationID string               `json:"organization_id,omitempty"`
	Type           RecordType           `json:"type"`
	OccurredAt     time.Time            `json:"occurred_at"`
	RecordedAt     time.Time            `json:"recorded_at"`
	Title          string               `json:"title"`
	Notes          string               `json:"notes"`
	NextDueAt      *time.Time           `json:"next_due_at,omitempty"`
	Attachments    []attachmentResponse `json:"attachments"`
	ActorType      ActorType            `json:"actor_type"`
	ActorID        string               `json:"actor_id"`
	Visibility     Visibility           `json:"visibility"`
	Status         Status               `json:"status"`
}

// createRecordHandler godoc
// @Summary Crear registro clínico
// @Description El dueño siempre puede registrar. El staff de la organización de la mascota, o de una clínica con turno activo, registra a nombre de su organización.
// @Tags records
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body createRecordRequest true "Datos del registro; fechas en RFC3339"
// @Success 201 {object} recordResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 401 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /pets/{petID}/records [post]
func createRecordHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createRecordRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		occurredAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.OccurredAt))
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "occurred_at must be RFC3339")
			return
		}
		var nextDue *time.Time
		if v := strings.TrimSpace(req.NextDueAt); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "next_due_at must be RFC3339")
				return
			}
			nextDue = &t
		}

		rec, err := svc.Create(r.Context(), chi.URLParam(r, "petID"), claims.UserID, CreateInput{
			Type:           req.Type,
			OccurredAt:     occurredAt,
			Title:          req.Title,
			Notes:          req.Notes,
			NextDueAt:      nextDue,
			Visibility:     req.Visibility,
			OrganizationID: req.OrganizationID,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toRecordResponse(r.Context(), files, rec))
	}
}

// listRecordsHandler godoc
// @Summary Historia clínica de una mascota
// @Description Más reciente primero. Los registros privados solo los ven el dueño y la organización autora.
// @Tags records
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param limit query int false "Máximo de registros (1-200). Por defecto 50"
// @Param types query string false "Lista CSV de tipos (ej: VACCINATION,DEWORMING)"
// @Param from query string false "occurred_at mínima (RFC3339)"
// @Param to query string false "occurred_at máxima (RFC3339)"
// @Param q query string false "Texto en título/notas"
// @Success 200 {array} recordResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /pets/{petID}/records [get]
func listRecordsHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		items, err := svc.ListByPet(r.Context(), chi.URLParam(r, "petID"), claims.UserID, filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponses(r.Context(), files, items))
	}
}

// listDueHandler godoc
// @Summary Próximos vencimientos
// @Description Registros no anulados con next_due_at hasta `until` (por defecto, 30 días).
// @Tags records
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param until query string false "RFC3339"
// @Success 200 {array} recordResponse
// @Security BearerAuth
// @Router /pets/{petID}/records/due [get]
func listDueHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var until time.Time
		if v := strings.TrimSpace(r.URL.Query().Get("until")); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "until must be RFC3339")
				return
			}
			until = t
		}

		items, err := svc.ListDue(r.Context(), chi.URLParam(r, "petID"), claims.UserID, until)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponses(r.Context(), files, items))
	}
}

// getRecordHandler godoc
// @Summary Ver registro clínico
// @Tags records
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param recordID path string true "ID del registro"
// @Success 200 {object} recordResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /pets/{petID}/records/{recordID} [get]
func getRecordHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		rec, err := svc.Get(r.Context(), chi.URLParam(r, "petID"), chi.URLParam(r, "recordID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(r.Context(), files, rec))
	}
}

// voidRecordHandler godoc
// @Summary Anular (void) un registro
// @Description Los registros no se borran. El dueño anula cualquiera; el staff solo los de su organización.
// @Tags records
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param recordID path string true "ID del registro"
// @Success 200 {object} recordResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /pets/{petID}/records/{recordID}/void [post]
func voidRecordHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		rec, err := svc.Void(r.Context(), chi.URLParam(r, "petID"), chi.URLParam(r, "recordID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(r.Context(), files, rec))
	}
}

// addAttachmentHandler godoc
// @Summary Adjuntar archivo a un registro
// @Description multipart/form-data con el campo `file` (imagen o PDF, máximo 10 MiB).
// @Tags records
// @Accept mpfd
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param recordID path string true "ID del registro"
// @Param file formData file true "Archivo"
// @Success 200 {object} recordResponse
// @Failure 409 {object} httpx.ErrorBody
// @Failure 413 {object} httpx.ErrorBody
// @Failure 415 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /pets/{petID}/records/{recordID}/attachments [post]
func addAttachmentHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		up, err := httpx.ReadUpload(w, r, "file", files.MaxBytes())
		if err != nil {
			media.WriteUploadError(w, err)
			return
		}
		defer up.Body.Close()

		rec, err := svc.AddAttachment(r.Context(), chi.URLParam(r, "petID"), chi.URLParam(r, "recordID"), claims.UserID, AttachmentInput{
			Filename: up.Filename,
			Body:     up.Body,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(r.Context(), files, rec))
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	filter := ListFilter{Limit: httpx.QueryInt(r, "limit", DefaultLimit, 1, MaxLimit)}

	// types=VACCINATION,DEWORMING
	for _, p := range httpx.QueryCSV(r, "types") {
		filter.Types = append(filter.Types, RecordType(strings.ToUpper(p)))
	}

	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339")
		}
		filter.To = &t
	}

	filter.Query = strings.TrimSpace(r.URL.Query().Get("q"))
	return filter, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrBadState):
		httpx.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, media.ErrTooLarge), errors.Is(err, media.ErrUnsupportedContent), errors.Is(err, media.ErrInvalidInput):
		media.WriteUploadError(w, err)
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func toRecordResponse(ctx context.Context, files *media.Service, rec Record) recordResponse {
	atts := make([]attachmentResponse, 0, len(rec.Attachments))
	for _, a := range rec.Attachments {
		atts = append(atts, attachmentResponse{
			Name:        a.Name,
			ContentType: a.ContentType,
			Size:        a.Size,
			URL:         files.URLOrEmpty(ctx, a.Key),
		})
	}
	return recordResponse{
		ID:             rec.ID,
		PetID:          rec.PetID,
		OrganizationID: rec.OrganizationID,
		Type:           rec.Type,
		OccurredAt:     rec.OccurredAt,
		RecordedAt:     rec.RecordedAt,
		Title:          rec.Title,
		Notes:          rec.Notes,
		NextDueAt:      rec.NextDueAt,
		Attachments:    atts,
		ActorType:      rec.Actor.Type,
		ActorID:        rec.Actor.ID,
		Visibility:     rec.Visibility,
		Status:         rec.Status,
	}
}

func toRecordResponses(ctx context.Context, files *media.Service, items []Record) []recordResponse {
	out := make([]recordResponse, 0, len(items))
	for _, rec := range items {
		out = append(out, toRecordResponse(ctx, files, rec))
	}
	return out
}
