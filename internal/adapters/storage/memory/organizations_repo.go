package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"petcare-hub/internal/domain/organizations"
)

type membershipKey struct {
	orgID  string
	userID string
}

type organizationsRepo struct {
	mu       sync.RWMutex
	orgs     map[string]organizations.Organization
	members  map[membershipKey]organizations.Membership
	invites  map[string]organizations.Invite
	profiles map[string]organizations.Profile
}

func NewOrganizationsRepo() organizations.Repository {
	return &organizationsRepo{
		orgs:     make(map[string]organizations.Organization),
		members:  make(map[membershipKey]organizations.Membership),
		invites:  make(map[string]organizations.Invite),
		profiles: make(map[string]organizations.Profile),
	}
}

func (r *organizationsRepo) CreateOrganization(ctx context.Context, o organizations.Organization, owner organizations.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(o.ID) == "" {
		return errors.New("organization id required")
	}
	if _, exists := r.orgs[o.ID]; exists {
		return organizations.ErrConflict
	}
	for _, existing := range r.orgs {
		if existing.Slug == o.Slug {
			return organizations.ErrConflict
		}
	}
	r.orgs[o.ID] = o
	r.members[membershipKey{owner.OrganizationID, owner.UserID}] = owner
	return nil
}

func (r *organizationsRepo) UpdateOrganization(ctx context.Context, o organizations.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orgs[o.ID]; !exists {
		return organizations.ErrNotFound
	}
	r.orgs[o.ID] = o
	return nil
}

func (r *organizationsRepo) GetOrganization(ctx context.Context, id string) (organizations.Organization, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orgs[id]
	if !ok {
		return organizations.Organization{}, organizations.ErrNotFound
	}
	return o, nil
}

func (r *organizationsRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orgs {
		if o.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *organizationsRepo) ListOrganizations(ctx context.Context) ([]organizations.Organization, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]organizations.Organization, 0, len(r.orgs))
	for _, o := range r.orgs {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *organizationsRepo) GetMembership(ctx context.Context, orgID, userID string) (organizations.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[membershipKey{orgID, userID}]
	if !ok {
		return organizations.Membership{}, organizations.ErrNotFound
	}
	return m, nil
}

func (r *organizationsRepo) UpsertMembership(ctx context.Context, m organizations.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orgs[m.OrganizationID]; !ok {
		return organizations.ErrNotFound
	}
	r.members[membershipKey{m.OrganizationID, m.UserID}] = m
	return nil
}

func (r *organizationsRepo) DeleteMembership(ctx context.Context, orgID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := membershipKey{orgID, userID}
	if _, ok := r.members[k]; !ok {
		return organizations.ErrNotFound
	}
	delete(r.members, k)
	return nil
}

func (r *organizationsRepo) ListMembers(ctx context.Context, orgID string) ([]organizations.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]organizations.Membership, 0)
	for k, m := range r.members {
		if k.orgID == orgID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *organizationsRepo) ListMembershipsByUser(ctx context.Context, userID string) ([]organizations.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]organizations.Membership, 0)
	for k, m := range r.members {
		if k.userID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *organizationsRepo) CreateInvite(ctx context.Context, inv organizations.Invite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(inv.ID) == "" {
		return errors.New("invite id required")
	}
	if _, exists := r.invites[inv.ID]; exists {
		return organizations.ErrConflict
	}
	for _, existing := range r.invites {
		if existing.Token == inv.Token {
			return organizations.ErrConflict
		}
	}
	r.invites[inv.ID] = inv
	return nil
}

func (r *organizationsRepo) UpdateInvite(ctx context.Context, inv organizations.Invite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.invites[inv.ID]; !exists {
		return organizations.ErrNotFound
	}
	r.invites[inv.ID] = inv
	return nil
}

func (r *organizationsRepo) GetInvite(ctx context.Context, id string) (organizations.Invite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.invites[id]
	if !ok {
		return organizations.Invite{}, organizations.ErrNotFound
	}
	return inv, nil
}

func (r *organizationsRepo) GetInviteByToken(ctx context.Context, token string) (organizations.Invite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, inv := range r.invites {
		if inv.Token == token {
			return inv, nil
		}
	}
	return organizations.Invite{}, organizations.ErrNotFound
}

func (r *organizationsRepo) ListInvites(ctx context.Context, orgID string) ([]organizations.Invite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]organizations.Invite, 0)
	for _, inv := range r.invites {
		if inv.OrganizationID == orgID {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *organizationsRepo) ExpireInvites(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, inv := range r.invites {
		if inv.Status != organizations.InviteStatusPending || inv.ExpiresAt.After(now) {
			continue
		}
		inv.Status = organizations.InviteStatusExpired
		inv.UpdatedAt = now
		r.invites[id] = inv
		n++
	}
	return n, nil
}

func (r *organizationsRepo) GetProfile(ctx context.Context, userID string) (organizations.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return organizations.Profile{}, organizations.ErrNotFound
	}
	return p, nil
}

func (r *organizationsRepo) UpsertProfile(ctx context.Context, p organizations.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.UserID) == "" {
		return errors.New("profile user id required")
	}
	r.profiles[p.UserID] = p
	return nil
}
