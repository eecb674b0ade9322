package pets

import (
	"context"

	"petcare-hub/internal/domain/organizations"
)

// Memberships resuelve el rol del usuario en una org. Lo implementa
// organizations.Service; se declara acá para no depender del servicio entero.
type Memberships interface {
	MemberRole(ctx context.Context, orgID, userID string) (organizations.Role, error)
}

// CanView: dueño; visibilidad public; visibilidad organization y miembro de
// la org; o staff de la org de la mascota.
func (s *Service) CanView(ctx context.Context, p Pet, userID string) (bool, error) {
	if userID != "" && p.OwnerUserID == userID {
		return true, nil
	}
	if p.Visibility == VisibilityPublic {
		return true, nil
	}
	if p.OrganizationID == "" || userID == "" {
		return false, nil
	}
	role, err := s.members.MemberRole(ctx, p.OrganizationID, userID)
	if err != nil {
		return false, err
	}
	if role.IsStaff() {
		return true, nil
	}
	return p.Visibility == VisibilityOrganization && role != organizations.RoleNone, nil
}

// CanEdit: dueño, o owner/admin/vet/staff de la org de la mascota.
func (s *Service) CanEdit(ctx context.Context, p Pet, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	if p.OwnerUserID == userID {
		return true, nil
	}
	if p.OrganizationID == "" {
		return false, nil
	}
	role, err := s.members.MemberRole(ctx, p.OrganizationID, userID)
	if err != nil {
		return false, err
	}
	return role.IsStaff(), nil
}
