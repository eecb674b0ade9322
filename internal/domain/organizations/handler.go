package organizations

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"petcare-hub/internal/middleware"
	"petcare-hub/internal/platform/httpx"
)

// RegisterRoutes monta las rutas de usuario; el router las pone detrás de RequireAuth.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/organizations", createOrganizationHandler(svc))
	r.Get("/organizations", listMyOrganizationsHandler(svc))
	r.Get("/organizations/{orgID}", getOrganizationHandler(svc))
	r.Patch("/organizations/{orgID}", updateOrganizationHandler(svc))

	r.Get("/organizations/{orgID}/members", listMembersHandler(svc))
	r.Patch("/organizations/{orgID}/members/{userID}", changeRoleHandler(svc))
	r.Delete("/organizations/{orgID}/members/{userID}", removeMemberHandler(svc))

	r.Post("/organizations/{orgID}/invites", inviteHandler(svc))
	r.Get("/organizations/{orgID}/invites", listInvitesHandler(svc))
	r.Post("/invites/{inviteID}/revoke", revokeInviteHandler(svc))
	r.Post("/invites/accept", acceptInviteHandler(svc))

	r.Get("/me/organization", currentOrganizationHandler(svc))
	r.Put("/me/organization", switchOrganizationHandler(svc))
}

// RegisterAdminRoutes va dentro del grupo /admin (RequirePlatformRole).
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Get("/organizations", listAllOrganizationsHandler(svc))
	r.Post("/organizations/{orgID}/verify", verifyOrganizationHandler(svc))
}

type createOrganizationRequest struct {
	Name    string `json:"name"`
	Type    Type   `json:"type" enums:"clinic,ngo,shelter,breeder,groomer,store"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type updateOrganizationRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type organizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Type      Type      `json:"type"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Verified  bool      `json:"verified"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type myOrganizationResponse struct {
	Organization organizationResponse `json:"organization"`
	Role         Role                 `json:"role"`
	IsDefault    bool                 `json:"is_default"`
}

type memberResponse struct {
	OrganizationID string    `json:"organization_id"`
	UserID         string    `json:"user_id"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type inviteRequest struct {
	Email string `json:"email"`
	Role  Role   `json:"role" enums:"owner,admin,vet,staff,member"`
}

type inviteResponse struct {
	ID             string       `json:"id"`
	OrganizationID string       `json:"organization_id"`
	Email          string       `json:"email"`
	Role           Role         `json:"role"`
	Status         InviteStatus `json:"status"`
	Token          string       `json:"token,omitempty"`
	InvitedBy      string       `json:"invited_by"`
	ExpiresAt      time.Time    `json:"expires_at"`
	AcceptedBy     string       `json:"accepted_by,omitempty"`
	AcceptedAt     *time.Time   `json:"accepted_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

type acceptInviteRequest struct {
	Token string `json:"token"`
}

type changeRoleRequest struct {
	Role Role `json:"role"`
}

type switchOrganizationRequest struct {
	OrganizationID string `json:"organization_id"`
}

type currentOrganizationResponse struct {
	UserID       string                `json:"user_id"`
	Organization *organizationResponse `json:"organization"`
	Role         Role                  `json:"role,omitempty"`
}

type verifyRequest struct {
	Verified *bool `json:"verified"`
}

// createOrganizationHandler godoc
// @Summary Crear organización
// @Description Crea la organización y deja al usuario como owner. Si el usuario no tenía organización activa, esta pasa a ser la default.
// @Tags organizations
// @Accept json
// @Produce json
// @Param payload body createOrganizationRequest true "Datos de la organización"
// @Success 201 {object} organizationResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 401 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /organizations [post]
func createOrganizationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createOrganizationRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		o, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:    req.Name,
			Type:    req.Type,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toOrganizationResponse(o))
	}
}

// listMyOrganizationsHandler godoc
// @Summary Mis organizaciones
// @Tags organizations
// @Produce json
// @Success 200 {array} myOrganizationResponse
// @Failure 403 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /organizations [get]
func listMyOrganizationsHandler(svc *Service) http.HandlerFunc {
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
		out := make([]myOrganizationResponse, 0, len(items))
		for _, it := range items {
			out = append(out, myOrganizationResponse{
				Organization: toOrganizationResponse(it.Organization),
				Role:         it.Role,
				IsDefault:    it.IsDefault,
			})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getOrganizationHandler godoc
// @Summary Ver organización
// @Description Solo miembros.
// @Tags organizations
// @Produce json
// @Param orgID path string true "ID de la organización"
// @Success 200 {object} organizationResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /organizations/{orgID} [get]
func getOrganizationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, err := svc.Get(r.Context(), chi.URLParam(r, "orgID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toOrganizationResponse(o))
	}
}

// updateOrganizationHandler godoc
// @Summary Modificar organización
// @Description Owner o admin.
// @Tags organizations
// @Accept json
// @Produce json
// @Param orgID path string true "ID de la organización"
// @Param payload body updateOrganizationRequest true "Datos"
// @Success 200 {object} organizationResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /organizations/{orgID} [patch]
func updateOrganizationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req updateOrganizationRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		o, err := svc.Update(r.Context(), chi.URLParam(r, "orgID"), claims.UserID, UpdateInput(req))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toOrganizationResponse(o))
	}
}

// listMembersHandler godoc
// @Summary Miembros de la organización
// @Tags organizations
// @Produce json
// @Param orgID path string true "ID de la organización"
// @Success 200 {array} memberResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /organizations/{orgID}/members [get]
func listMembersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListMembers(r.Context(), chi.URLParam(r, "orgID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		out := make([]memberResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMemberResponse(m))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// changeRoleHandler godoc
// @Summary Cambiar rol de un miembro
// @Description Owner o admin. Siempre queda al menos un owner.
// @Tags organizations
// @Accept json
// @Produce json
// @Param orgID path string true "ID de la organización"
// @Param userID path string true "ID del usuario"
// @Param payload body changeRoleRequest true "Datos"
// @Success 200 {object} memberResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /organizations/{orgID}/members/{userID} [patch]
func changeRoleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req changeRoleRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		m, err := svc.ChangeRole(r.Context(), chi.URLParam(r, "orgID"), claims.UserID, chi.URLParam(r, "userID"), req.Role)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toMemberResponse(m))
	}
}

// removeMemberHandler godoc
// @Summary Quitar miembro
// @Description Owner o admin, o el propio miembro.
// @Tags organizations
// @Produce json
// @Param orgID path string true "ID de la organización"
// @Param userID path string true "ID del usuario"
// @Success 204
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /organizations/{orgID}/members/{userID} [delete]
func removeMemberHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if err := svc.RemoveMember(r.Context(), chi.URLParam(r, "orgID"), claims.UserID, chi.URLParam(r, "userID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// inviteHandler godoc
// @Summary Invitar a una organización
// @Description Owner/admin invitan por email. Si ya existe una invitación pendiente para ese email se renueva (token y vencimiento nuevos). El token se devuelve solo en esta respuesta.
// @Tags organizations
// @Accept json
// @Produce json
// @Param orgID path string true "ID de la organización"
// @Param payload body inviteRequest true "Email y rol"
// @Success 201 {object} inviteResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /organizations/{orgID}/invites [post]
func inviteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req inviteRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		inv, err := svc.Invite(r.Context(), InviteInput{
			OrganizationID: chi.URLParam(r, "orgID"),
			InviterUserID:  claims.UserID,
			Email:          req.Email,
			Role:           req.Role,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toInviteResponse(inv, true))
	}
}

// listInvitesHandler godoc
// @Summary Invitaciones de la organización
// @Description Owner o admin.
// @Tags organizations
// @Produce json
// @Param orgID path string true "ID de la organización"
// @Param status query string false "status"
// @Success 200 {array} inviteResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /organizations/{orgID}/invites [get]
func listInvitesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		allowed := map[InviteStatus]struct{}{}
		for _, s := range httpx.QueryCSV(r, "status") {
			allowed[InviteStatus(s)] = struct{}{}
		}

		items, err := svc.ListInvites(r.Context(), chi.URLParam(r, "orgID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		out := make([]inviteResponse, 0, len(items))
		for _, inv := range items {
			if len(allowed) > 0 {
				if _, ok := allowed[inv.Status]; !ok {
					continue
				}
			}
			out = append(out, toInviteResponse(inv, false))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// revokeInviteHandler godoc
// @Summary Revocar invitación
// @Description Owner o admin.
// @Tags organizations
// @Produce json
// @Param inviteID path string true "ID de la invitación"
// @Success 200 {object} inviteResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /invites/{inviteID}/revoke [post]
func revokeInviteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		inv, err := svc.RevokeInvite(r.Context(), chi.URLParam(r, "inviteID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toInviteResponse(inv, false))
	}
}

// acceptInviteHandler godoc
// @Summary Aceptar invitación
// @Description Acepta con el token recibido por email. La invitación debe estar pendiente y sin vencer; si el usuario tiene email, debe coincidir.
// @Tags organizations
// @Accept json
// @Produce json
// @Param payload body acceptInviteRequest true "Token"
// @Success 200 {object} memberResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Failure 409 {object} httpx.ErrorBody "vencida, revocada o ya usada"
// @Security BearerAuth
// @Router /invites/accept [post]
func acceptInviteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req acceptInviteRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		m, err := svc.AcceptInvite(r.Context(), req.Token, claims.UserID, claims.Email)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toMemberResponse(m))
	}
}

// currentOrganizationHandler godoc
// @Summary Organización activa
// @Tags organizations
// @Produce json
// @Success 200 {object} currentOrganizationResponse
// @Failure 403 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /me/organization [get]
func currentOrganizationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		cur, err := svc.Current(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toCurrentResponse(cur))
	}
}

// switchOrganizationHandler godoc
// @Summary Cambiar organización activa
// @Tags organizations
// @Accept json
// @Produce json
// @Param payload body switchOrganizationRequest true "Organización destino"
// @Success 200 {object} currentOrganizationResponse
// @Failure 403 {object} httpx.ErrorBody "no es miembro"
// @Security BearerAuth
// @Router /me/organization [put]
func switchOrganizationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req switchOrganizationRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		if _, err := svc.SwitchDefault(r.Context(), claims.UserID, req.OrganizationID); err != nil {
			writeServiceError(w, err)
			return
		}
		cur, err := svc.Current(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toCurrentResponse(cur))
	}
}

// listAllOrganizationsHandler godoc
// @Summary Todas las organizaciones
// @Description Solo admin de plataforma.
// @Tags organizations
// @Produce json
// @Success 200 {array} organizationResponse
// @Failure 403 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /admin/organizations [get]
func listAllOrganizationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		out := make([]organizationResponse, 0, len(items))
		for _, o := range items {
			out = append(out, toOrganizationResponse(o))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// verifyOrganizationHandler godoc
// @Summary Verificar organización
// @Description Solo admin de plataforma.
// @Tags organizations
// @Accept json
// @Produce json
// @Param orgID path string true "ID de la organización"
// @Param payload body verifyRequest true "Datos"
// @Success 200 {object} organizationResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /admin/organizations/{orgID}/verify [post]
func verifyOrganizationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		verified := true
		if r.ContentLength != 0 {
			var req verifyRequest
			if err := httpx.DecodeJSON(r, &req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "invalid json")
				return
			}
			if req.Verified != nil {
				verified = *req.Verified
			}
		}

		o, err := svc.SetVerified(r.Context(), chi.URLParam(r, "orgID"), verified)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toOrganizationResponse(o))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not found")
	case errors.Is(err, ErrBadState), errors.Is(err, ErrConflict):
		httpx.WriteError(w, http.StatusConflict, err.Error())
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func toOrganizationResponse(o Organization) organizationResponse {
	return organizationResponse{
		ID:        o.ID,
		Name:      o.Name,
		Slug:      o.Slug,
		Type:      o.Type,
		Email:     o.Email,
		Phone:     o.Phone,
		Address:   o.Address,
		Verified:  o.Verified,
		CreatedBy: o.CreatedBy,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func toMemberResponse(m Membership) memberResponse {
	return memberResponse{
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		Role:           m.Role,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// El token solo se expone al crear: los listados lo ocultan.
func toInviteResponse(inv Invite, withToken bool) inviteResponse {
	out := inviteResponse{
		ID:             inv.ID,
		OrganizationID: inv.OrganizationID,
		Email:          inv.Email,
		Role:           inv.Role,
		Status:         inv.Status,
		InvitedBy:      inv.InvitedBy,
		ExpiresAt:      inv.ExpiresAt,
		AcceptedBy:     inv.AcceptedBy,
		AcceptedAt:     inv.AcceptedAt,
		CreatedAt:      inv.CreatedAt,
	}
	if withToken {
		out.Token = inv.Token
	}
	return out
}

func toCurrentResponse(c Current) currentOrganizationResponse {
	out := currentOrganizationResponse{UserID: c.Profile.UserID, Role: c.Role}
	if c.Organization != nil {
		o := toOrganizationResponse(*c.Organization)
		out.Organization = &o
	}
	return out
}
