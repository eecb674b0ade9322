package pets

import (
	"context"
	"encoding/json"
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
	r.Post("/pets", createPetHandler(svc, files))
	r.Get("/pets", listPetsHandler(svc, files))
	r.Get("/pets/{petID}", getPetHandler(svc, files))
	r.Patch("/pets/{petID}", updatePetHandler(svc, files))
	r.Put("/pets/{petID}/visibility", setVisibilityHandler(svc, files))
	r.Put("/pets/{petID}/adoption", setAdoptionStatusHandler(svc, files))
	r.Post("/pets/{petID}/photo", uploadPhotoHandler(svc, files))

	r.Get("/organizations/{orgID}/pets", listOrganizationPetsHandler(svc, files))

	r.Post("/pets/{petID}/applications", applyHandler(svc))
	r.Get("/pets/{petID}/applications", listApplicationsHandler(svc))
	r.Get("/me/applications", listMyApplicationsHandler(svc))
	r.Post("/applications/{applicationID}/decision", decideApplicationHandler(svc))
	r.Post("/applications/{applicationID}/withdraw", withdrawApplicationHandler(svc))
}

// RegisterPublicRoutes: el listado de adopción no requiere login.
func RegisterPublicRoutes(r chi.Router, svc *Service, files *media.Service) {
	r.Get("/adoptions", listAdoptionsHandler(svc, files))
}

type createPetRequest struct {
	OrganizationID string     `json:"organization_id"`
	Name           string     `json:"name"`
	Species        Species    `json:"species" enums:"dog,cat,bird,rabbit,other"`
	Breed          string     `json:"breed"`
	Sex            Sex        `json:"sex" enums:"male,female,unknown"`
	BirthDate      string     `json:"birth_date"` // YYYY-MM-DD opcional
	Microchip      string     `json:"microchip"`
	Notes          string     `json:"notes"`
	Visibility     Visibility `json:"visibility" enums:"private,organization,public"`
}

type petResponse struct {
	ID             string         `json:"id"`
	OwnerUserID    string         `json:"owner_user_id"`
	OrganizationID string         `json:"organization_id,omitempty"`
	Name           string         `json:"name"`
	Species        Species        `json:"species"`
	Breed          string         `json:"breed"`
	Sex            Sex            `json:"sex"`
	BirthDate      *string        `json:"birth_date"`
	Microchip      string         `json:"microchip,omitempty"`
	Notes          string         `json:"notes"`
	PhotoURL       string         `json:"photo_url,omitempty"`
	Visibility     Visibility     `json:"visibility"`
	AdoptionStatus AdoptionStatus `json:"adoption_status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name      *string  `json:"name"`
	Species   *Species `json:"species"`
	Breed     *string  `json:"breed"`
	Sex       *Sex     `json:"sex"`
	Microchip *string  `json:"microchip"`
	Notes     *string  `json:"notes"`
}

type visibilityRequest struct {
	Visibility Visibility `json:"visibility" enums:"private,organization,public"`
}

type adoptionStatusRequest struct {
	Status AdoptionStatus `json:"status" enums:"none,available,pending,adopted"`
}

type applyRequest struct {
	Message string `json:"message"`
}

type decisionRequest struct {
	Approve *bool `json:"approve"`
}

type applicationResponse struct {
	ID              string            `json:"id"`
	PetID           string            `json:"pet_id"`
	ApplicantUserID string            `json:"applicant_user_id"`
	Message         string            `json:"message"`
	Status          ApplicationStatus `json:"status"`
	DecidedBy       string            `json:"decided_by,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description Crea una mascota a nombre del usuario. Con organization_id, el usuario debe ser staff de esa organización.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createPetRequest true "Datos de la mascota; birth_date en YYYY-MM-DD"
// @Success 201 {object} petResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 401 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /pets [post]
func createPetHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createPetRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse(time.DateOnly, req.BirthDate)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
				return
			}
			bd = &t
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			OrganizationID: req.OrganizationID,
			Name:           req.Name,
			Species:        req.Species,
			Breed:          req.Breed,
			Sex:            req.Sex,
			BirthDate:      bd,
			Microchip:      req.Microchip,
			Notes:          req.Notes,
			Visibility:     req.Visibility,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toPetResponse(r.Context(), files, p))
	}
}

// listPetsHandler godoc
// @Summary Mis mascotas
// @Tags pets
// @Produce json
// @Success 200 {array} petResponse
// @Failure 403 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /pets [get]
func listPetsHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponses(r.Context(), files, items))
	}
}

// listOrganizationPetsHandler godoc
// @Summary Mascotas de la organización
// @Tags pets
// @Produce json
// @Param orgID path string true "ID de la organización"
// @Success 200 {array} petResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /organizations/{orgID}/pets [get]
func listOrganizationPetsHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListByOrganization(r.Context(), chi.URLParam(r, "orgID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponses(r.Context(), files, items))
	}
}

// getPetHandler godoc
// @Summary Ver mascota
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		p, err := svc.Get(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(r.Context(), files, p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar perfil de mascota
// @Description PATCH parcial. Para limpiar birth_date enviar null. Permitido al dueño y al staff de la organización de la mascota.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar (birth_date: YYYY-MM-DD o null)"
// @Success 200 {object} petResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		// Para soportar birth_date: null necesitamos saber si el campo vino.
		var raw map[string]json.RawMessage
		if err := httpx.DecodeJSON(r, &raw); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		bd := PatchBirthDate{}
		if v, exists := raw["birth_date"]; exists {
			bd.Present = true
			if string(v) != "null" {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD or null")
					return
				}
				t, err := time.Parse(time.DateOnly, s)
				if err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD or null")
					return
				}
				bd.Value = &t
			}
			delete(raw, "birth_date")
		}

		var req updatePetRequest
		b, _ := json.Marshal(raw)
		dec := json.NewDecoder(strings.NewReader(string(b)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		updated, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "petID"), claims.UserID, UpdateProfileInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Sex:       req.Sex,
			BirthDate: bd,
			Microchip: req.Microchip,
			Notes:     req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(r.Context(), files, updated))
	}
}

// setVisibilityHandler godoc
// @Summary Cambiar visibilidad
// @Description Dueño o staff de la organización.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body visibilityRequest true "Datos"
// @Success 200 {object} petResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /pets/{petID}/visibility [put]
func setVisibilityHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req visibilityRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.SetVisibility(r.Context(), chi.URLParam(r, "petID"), claims.UserID, req.Visibility)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(r.Context(), files, p))
	}
}

// setAdoptionStatusHandler godoc
// @Summary Cambiar estado de adopción
// @Description Dueño o staff de la organización.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body adoptionStatusRequest true "Datos"
// @Success 200 {object} petResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /pets/{petID}/adoption [put]
func setAdoptionStatusHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req adoptionStatusRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.SetAdoptionStatus(r.Context(), chi.URLParam(r, "petID"), claims.UserID, req.Status)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(r.Context(), files, p))
	}
}

// uploadPhotoHandler godoc
// @Summary Subir foto de mascota
// @Description multipart/form-data con el campo `file` (jpeg, png, webp o gif; máximo 10 MiB). Reemplaza la foto anterior.
// @Tags pets
// @Accept mpfd
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param file formData file true "Imagen"
// @Success 200 {object} petResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 413 {object} httpx.ErrorBody
// @Failure 415 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /pets/{petID}/photo [post]
func uploadPhotoHandler(svc *Service, files *media.Service) http.HandlerFunc {
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

		p, err := svc.SetPhoto(r.Context(), chi.URLParam(r, "petID"), claims.UserID, up.Body)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(r.Context(), files, p))
	}
}

// listAdoptionsHandler godoc
// @Summary Mascotas en adopción
// @Description Listado público de mascotas disponibles. Filtros opcionales combinables.
// @Tags adoptions
// @Produce json
// @Param species query string false "dog, cat, bird, rabbit, other"
// @Param sex query string false "male, female, unknown"
// @Param breed query string false "Texto contenido en la raza"
// @Param min_age_months query int false "Edad mínima en meses"
// @Param max_age_months query int false "Edad máxima en meses"
// @Param organization_id query string false "Refugio / organización"
// @Param q query string false "Texto libre en nombre, raza y notas"
// @Param limit query int false "1-200, por defecto 50"
// @Success 200 {array} petResponse
// @Router /adoptions [get]
func listAdoptionsHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.ListAdoptions(r.Context(), AdoptionFilter{
			Species:        Species(strings.ToLower(strings.TrimSpace(q.Get("species")))),
			Sex:            Sex(strings.ToLower(strings.TrimSpace(q.Get("sex")))),
			Breed:          q.Get("breed"),
			MinAgeMonths:   httpx.QueryInt(r, "min_age_months", 0, 0, 600),
			MaxAgeMonths:   httpx.QueryInt(r, "max_age_months", 0, 0, 600),
			OrganizationID: strings.TrimSpace(q.Get("organization_id")),
			Query:          q.Get("q"),
			Limit:          httpx.QueryInt(r, "limit", defaultAdoptionLimit, 1, 200),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponses(r.Context(), files, items))
	}
}

// applyHandler godoc
// @Summary Solicitar adopción
// @Description La mascota debe estar disponible.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body applyRequest true "Datos"
// @Success 201 {object} applicationResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /pets/{petID}/applications [post]
func applyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req applyRequest
		if err := httpx.DecodeJSON(r, &req); err != nil && !errors.Is(err, httpx.ErrEmptyBody) {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		a, err := svc.Apply(r.Context(), chi.URLParam(r, "petID"), claims.UserID, req.Message)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toApplicationResponse(a))
	}
}

// listApplicationsHandler godoc
// @Summary Solicitudes de adopción de una mascota
// @Description Dueño o staff.
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} applicationResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /pets/{petID}/applications [get]
func listApplicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListApplications(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toApplicationResponses(items))
	}
}

// listMyApplicationsHandler godoc
// @Summary Mis solicitudes de adopción
// @Tags pets
// @Produce json
// @Success 200 {array} applicationResponse
// @Failure 403 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /me/applications [get]
func listMyApplicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListMyApplications(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toApplicationResponses(items))
	}
}

// decideApplicationHandler godoc
// @Summary Aprobar o rechazar solicitud de adopción
// @Description Aprobar transfiere la mascota al solicitante, la marca adoptada y privada, y rechaza el resto de solicitudes pendientes.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param applicationID path string true "ID de la solicitud"
// @Param payload body decisionRequest true "approve: true/false"
// @Success 200 {object} applicationResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 409 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /applications/{applicationID}/decision [post]
func decideApplicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req decisionRequest
		if err := httpx.DecodeJSON(r, &req); err != nil || req.Approve == nil {
			httpx.WriteError(w, http.StatusBadRequest, "approve is required")
			return
		}

		a, err := svc.DecideApplication(r.Context(), chi.URLParam(r, "applicationID"), claims.UserID, *req.Approve)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

// withdrawApplicationHandler godoc
// @Summary Retirar solicitud
// @Description Solo quien la hizo y solo si está pending.
// @Tags pets
// @Produce json
// @Param applicationID path string true "ID de la solicitud"
// @Success 200 {object} applicationResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /applications/{applicationID}/withdraw [post]
func withdrawApplicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		a, err := svc.WithdrawApplication(r.Context(), chi.URLParam(r, "applicationID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "pet not found")
	case errors.Is(err, ErrBadState), errors.Is(err, ErrConflict):
		httpx.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, media.ErrTooLarge), errors.Is(err, media.ErrUnsupportedContent), errors.Is(err, media.ErrInvalidInput):
		media.WriteUploadError(w, err)
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func toPetResponse(ctx context.Context, files *media.Service, p Pet) petResponse {
	out := petResponse{
		ID:             p.ID,
		OwnerUserID:    p.OwnerUserID,
		OrganizationID: p.OrganizationID,
		Name:           p.Name,
		Species:        p.Species,
		Breed:          p.Breed,
		Sex:            p.Sex,
		Microchip:      p.Microchip,
		Notes:          p.Notes,
		PhotoURL:       files.URLOrEmpty(ctx, p.PhotoKey),
		Visibility:     p.Visibility,
		AdoptionStatus: p.AdoptionStatus,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.BirthDate != nil {
		s := p.BirthDate.Format(time.DateOnly)
		out.BirthDate = &s
	}
	return out
}

func toPetResponses(ctx context.Context, files *media.Service, items []Pet) []petResponse {
	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(ctx, files, p))
	}
	return out
}

func toApplicationResponse(a AdoptionApplication) applicationResponse {
	return applicationResponse{
		ID:              a.ID,
		PetID:           a.PetID,
		ApplicantUserID: a.ApplicantUserID,
		Message:         a.Message,
		Status:          a.Status,
		DecidedBy:       a.DecidedBy,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func toApplicationResponses(items []AdoptionApplication) []applicationResponse {
	out := make([]applicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toApplicationResponse(a))
	}
	return out
}
