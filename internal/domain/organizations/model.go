package organizations

import "time"

// Type es el tipo de organización.
// @Enum clinic, ngo, shelter, breeder, groomer, store
type Type string

const (
	TypeClinic  Type = "clinic"
	TypeNGO     Type = "ngo"
	TypeShelter Type = "shelter"
	TypeBreeder Type = "breeder"
	TypeGroomer Type = "groomer"
	TypeStore   Type = "store"
)

func (t Type) Valid() bool {
	switch t {
	case TypeClinic, TypeNGO, TypeShelter, TypeBreeder, TypeGroomer, TypeStore:
		return true
	}
	return false
}

// Role es el rol de un usuario dentro de una organización.
// @Enum owner, admin, vet, staff, member
type Role string

const (
	RoleNone   Role = ""
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleVet    Role = "vet"
	RoleStaff  Role = "staff"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	return r.Rank() > 0
}

// Rank ordena los roles; vet y staff están al mismo nivel.
func (r Role) Rank() int {
	switch r {
	case RoleOwner:
		return 4
	case RoleAdmin:
		return 3
	case RoleVet, RoleStaff:
		return 2
	case RoleMember:
		return 1
	}
	return 0
}

// CanManage: owner/admin administran miembros, invitaciones y datos de la org.
func (r Role) CanManage() bool {
	return r == RoleOwner || r == RoleAdmin
}

// IsStaff: cualquier rol operativo (no un simple miembro).
func (r Role) IsStaff() bool {
	return r.Rank() >= 2
}

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusRevoked  InviteStatus = "revoked"
	InviteStatusExpired  InviteStatus = "expired"
)

type Organization struct {
	ID   string
	Name string
	Slug string
	Type Type

	Email   string
	Phone   string
	Address string

	Verified  bool
	CreatedBy string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Membership struct {
	OrganizationID string
	UserID         string
	Role           Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Invite struct {
	ID             string
	OrganizationID string

	Email string
	Role  Role
	Token string

	InvitedBy string
	Status    InviteStatus
	ExpiresAt time.Time

	AcceptedBy string
	AcceptedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile guarda la organización activa del usuario (columna única, se pisa).
type Profile struct {
	UserID                string
	DefaultOrganizationID string
	UpdatedAt             time.Time
}

// MyOrganization es una org vista desde un usuario miembro.
type MyOrganization struct {
	Organization Organization
	Role         Role
	IsDefault    bool
}

// Current es el contexto de organización activo del usuario.
type Current struct {
	Profile      Profile
	Organization *Organization
	Role         Role
}
