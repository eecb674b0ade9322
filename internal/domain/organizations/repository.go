package organizations

import (
	"context"
	"time"
)

// Repository devuelve ErrNotFound cuando la fila no existe y ErrConflict
// cuando choca una restricción única (slug, token).
type Repository interface {
	// CreateOrganization inserta la org y la membresía del owner en una transacción.
	CreateOrganization(ctx context.Context, o Organization, owner Membership) error
	UpdateOrganization(ctx context.Context, o Organization) error
	GetOrganization(ctx context.Context, id string) (Organization, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListOrganizations(ctx context.Context) ([]Organization, error)

	GetMembership(ctx context.Context, orgID, userID string) (Membership, error)
	UpsertMembership(ctx context.Context, m Membership) error
	DeleteMembership(ctx context.Context, orgID, userID string) error
	ListMembers(ctx context.Context, orgID string) ([]Membership, error)
	ListMembershipsByUser(ctx context.Context, userID string) ([]Membership, error)

	CreateInvite(ctx context.Context, inv Invite) error
	UpdateInvite(ctx context.Context, inv Invite) error
	GetInvite(ctx context.Context, id string) (Invite, error)
	GetInviteByToken(ctx context.Context, token string) (Invite, error)
	ListInvites(ctx context.Context, orgID string) ([]Invite, error)
	// ExpireInvites pasa a expired los pending con expires_at <= now.
	ExpireInvites(ctx context.Context, now time.Time) (int, error)

	GetProfile(ctx context.Context, userID string) (Profile, error)
	UpsertProfile(ctx context.Context, p Profile) error
}
