package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"petcare-hub/internal/domain/organizations"
)

type OrganizationsRepo struct {
	db *sql.DB
}

func NewOrganizationsRepo(db *sql.DB) *OrganizationsRepo {
	return &OrganizationsRepo{db: db}
}

const organizationColumns = `id, name, slug, type, email, phone, address, verified, created_by, created_at, updated_at`

func (r *OrganizationsRepo) CreateOrganization(ctx context.Context, o organizations.Organization, owner organizations.Membership) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO organizations (`+organizationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		o.ID, o.Name, o.Slug, o.Type,
		o.Email, o.Phone, o.Address,
		o.Verified, o.CreatedBy,
		o.CreatedAt, o.UpdatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return organizations.ErrConflict
		}
		return fmt.Errorf("insert organization: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO organization_users (organization_id, user_id, role, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
	`, owner.OrganizationID, owner.UserID, owner.Role, owner.CreatedAt, owner.UpdatedAt); err != nil {
		return fmt.Errorf("insert owner membership: %w", err)
	}

	return tx.Commit()
}

func (r *OrganizationsRepo) UpdateOrganization(ctx context.Context, o organizations.Organization) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE organizations
		SET name = $2, email = $3, phone = $4, address = $5, verified = $6, updated_at = $7
		WHERE id = $1
	`, o.ID, o.Name, o.Email, o.Phone, o.Address, o.Verified, o.UpdatedAt)
	if err != nil {
		return err
	}
	return rowsAffectedOr(res, organizations.ErrNotFound)
}

func (r *OrganizationsRepo) GetOrganization(ctx context.Context, id string) (organizations.Organization, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+organizationColumns+` FROM organizations WHERE id = $1`, id)
	o, err := scanOrganization(row)
	if errors.Is(err, sql.ErrNoRows) {
		return organizations.Organization{}, organizations.ErrNotFound
	}
	return o, err
}

func (r *OrganizationsRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM organizations WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

func (r *OrganizationsRepo) ListOrganizations(ctx context.Context) ([]organizations.Organization, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+organizationColumns+` FROM organizations ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]organizations.Organization, 0)
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanOrganization(s rowScanner) (organizations.Organization, error) {
	var o organizations.Organization
	err := s.Scan(
		&o.ID, &o.Name, &o.Slug, &o.Type,
		&o.Email, &o.Phone, &o.Address,
		&o.Verified, &o.CreatedBy,
		&o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

const membershipColumns = `organization_id, user_id, role, created_at, updated_at`

func (r *OrganizationsRepo) GetMembership(ctx context.Context, orgID, userID string) (organizations.Membership, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+membershipColumns+` FROM organization_users
		WHERE organization_id = $1 AND user_id = $2
	`, orgID, userID)
	var m organizations.Membership
	err := row.Scan(&m.OrganizationID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return organizations.Membership{}, organizations.ErrNotFound
	}
	return m, err
}

func (r *OrganizationsRepo) UpsertMembership(ctx context.Context, m organizations.Membership) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO organization_users (`+membershipColumns+`)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (organization_id, user_id)
		DO UPDATE SET role = EXCLUDED.role, updated_at = EXCLUDED.updated_at
	`, m.OrganizationID, m.UserID, m.Role, m.CreatedAt, m.UpdatedAt)
	return err
}

func (r *OrganizationsRepo) DeleteMembership(ctx context.Context, orgID, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM organization_users WHERE organization_id = $1 AND user_id = $2`, orgID, userID)
	if err != nil {
		return err
	}
	return rowsAffectedOr(res, organizations.ErrNotFound)
}

func (r *OrganizationsRepo) ListMembers(ctx context.Context, orgID string) ([]organizations.Membership, error) {
	return r.listMemberships(ctx, `WHERE organization_id = $1`, orgID)
}

func (r *OrganizationsRepo) ListMembershipsByUser(ctx context.Context, userID string) ([]organizations.Membership, error) {
	return r.listMemberships(ctx, `WHERE user_id = $1`, userID)
}

func (r *OrganizationsRepo) listMemberships(ctx context.Context, where string, arg string) ([]organizations.Membership, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+membershipColumns+` FROM organization_users `+where+` ORDER BY created_at ASC`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]organizations.Membership, 0)
	for rows.Next() {
		var m organizations.Membership
		if err := rows.Scan(&m.OrganizationID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

const inviteColumns = `id, organization_id, email, role, token, invited_by, status, expires_at, accepted_by, accepted_at, created_at, updated_at`

func (r *OrganizationsRepo) CreateInvite(ctx context.Context, inv organizations.Invite) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO organization_invites (`+inviteColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		inv.ID, inv.OrganizationID, inv.Email, inv.Role, inv.Token,
		inv.InvitedBy, inv.Status, inv.ExpiresAt,
		inv.AcceptedBy, toNullTime(inv.AcceptedAt),
		inv.CreatedAt, inv.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return organizations.ErrConflict
	}
	return err
}

func (r *OrganizationsRepo) UpdateInvite(ctx context.Context, inv organizations.Invite) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE organization_invites
		SET role = $2, token = $3, status = $4, expires_at = $5,
			accepted_by = $6, accepted_at = $7, updated_at = $8
		WHERE id = $1
	`, inv.ID, inv.Role, inv.Token, inv.Status, inv.ExpiresAt, inv.AcceptedBy, toNullTime(inv.AcceptedAt), inv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return organizations.ErrConflict
		}
		return err
	}
	return rowsAffectedOr(res, organizations.ErrNotFound)
}

func (r *OrganizationsRepo) GetInvite(ctx context.Context, id string) (organizations.Invite, error) {
	return r.getInvite(ctx, `WHERE id = $1`, id)
}

func (r *OrganizationsRepo) GetInviteByToken(ctx context.Context, token string) (organizations.Invite, error) {
	return r.getInvite(ctx, `WHERE token = $1`, token)
}

func (r *OrganizationsRepo) getInvite(ctx context.Context, where, arg string) (organizations.Invite, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+inviteColumns+` FROM organization_invites `+where, arg)
	inv, err := scanInvite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return organizations.Invite{}, organizations.ErrNotFound
	}
	return inv, err
}

func (r *OrganizationsRepo) ListInvites(ctx context.Context, orgID string) ([]organizations.Invite, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+inviteColumns+` FROM organization_invites
		WHERE organization_id = $1
		ORDER BY created_at ASC
	`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]organizations.Invite, 0)
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *OrganizationsRepo) ExpireInvites(ctx context.Context, now time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE organization_invites
		SET status = $1, updated_at = $2
		WHERE status = $3 AND expires_at <= $2
	`, organizations.InviteStatusExpired, now, organizations.InviteStatusPending)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func scanInvite(s rowScanner) (organizations.Invite, error) {
	var inv organizations.Invite
	var acceptedAt sql.NullTime
	if err := s.Scan(
		&inv.ID, &inv.OrganizationID, &inv.Email, &inv.Role, &inv.Token,
		&inv.InvitedBy, &inv.Status, &inv.ExpiresAt,
		&inv.AcceptedBy, &acceptedAt,
		&inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return organizations.Invite{}, err
	}
	inv.AcceptedAt = fromNullTime(acceptedAt)
	return inv, nil
}

func (r *OrganizationsRepo) GetProfile(ctx context.Context, userID string) (organizations.Profile, error) {
	var p organizations.Profile
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, default_organization_id, updated_at FROM profiles WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.DefaultOrganizationID, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return organizations.Profile{}, organizations.ErrNotFound
	}
	return p, err
}

// UpsertProfile: cambiar la org por defecto es pisar una sola columna.
func (r *OrganizationsRepo) UpsertProfile(ctx context.Context, p organizations.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, default_organization_id, updated_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (user_id)
		DO UPDATE SET default_organization_id = EXCLUDED.default_organization_id, updated_at = EXCLUDED.updated_at
	`, p.UserID, p.DefaultOrganizationID, p.UpdatedAt)
	return err
}
