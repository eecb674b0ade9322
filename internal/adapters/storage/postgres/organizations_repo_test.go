package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-hub/internal/domain/organizations"
)

var inviteCols = []string{
	"id", "organization_id", "email", "role", "token", "invited_by", "status",
	"expires_at", "accepted_by", "accepted_at", "created_at", "updated_at",
}

func TestOrganizations_UpsertMembershipKeepsCreatedAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := organizations.Membership{
		OrganizationID: "org-1",
		UserID:         "vet-1",
		Role:           organizations.RoleVet,
		CreatedAt:      created,
		UpdatedAt:      created.Add(time.Hour),
	}
	mock.ExpectExec(`ON CONFLICT \(organization_id, user_id\)\s+DO UPDATE SET role = EXCLUDED.role, updated_at = EXCLUDED.updated_at`).
		WithArgs("org-1", "vet-1", organizations.RoleVet, m.CreatedAt, m.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewOrganizationsRepo(db).UpsertMembership(context.Background(), m))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizations_AcceptedInviteRoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM organization_invites WHERE token = $1")).
		WithArgs("tok-123").
		WillReturnRows(sqlmock.NewRows(inviteCols).AddRow(
			"inv-1", "org-1", "vet@clinic.test", "vet", "tok-123", "owner-1", "pending",
			now.Add(24*time.Hour), "", nil, now, now,
		))

	repo := NewOrganizationsRepo(db)
	inv, err := repo.GetInviteByToken(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, organizations.InviteStatusPending, inv.Status)
	assert.Nil(t, inv.AcceptedAt)

	inv.Status = organizations.InviteStatusAccepted
	inv.AcceptedBy = "vet-1"
	inv.AcceptedAt = &now
	inv.UpdatedAt = now
	mock.ExpectExec("UPDATE organization_invites").
		WithArgs(inv.ID, inv.Role, inv.Token, organizations.InviteStatusAccepted, inv.ExpiresAt, "vet-1", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateInvite(context.Background(), inv))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizations_InviteErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrganizationsRepo(db)
	ctx := context.Background()

	mock.ExpectQuery("FROM organization_invites").WithArgs("nope").WillReturnRows(sqlmock.NewRows(inviteCols))
	_, err = repo.GetInviteByToken(ctx, "nope")
	assert.ErrorIs(t, err, organizations.ErrNotFound)

	mock.ExpectExec("UPDATE organization_invites").WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.UpdateInvite(ctx, organizations.Invite{ID: "gone"})
	assert.ErrorIs(t, err, organizations.ErrNotFound)

	// token rotado que choca con otro
	mock.ExpectExec("UPDATE organization_invites").WillReturnError(uniqueViolation())
	err = repo.UpdateInvite(ctx, organizations.Invite{ID: "inv-1"})
	assert.ErrorIs(t, err, organizations.ErrConflict)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizations_ExpireInvites(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("WHERE status = $3 AND expires_at <= $2")).
		WithArgs(organizations.InviteStatusExpired, now, organizations.InviteStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := NewOrganizationsRepo(db).ExpireInvites(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizations_CreateRollsBackWhenOwnerInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	o := organizations.Organization{ID: "org-1", Name: "Clínica", Slug: "clinica", Type: organizations.TypeClinic, CreatedBy: "owner-1", CreatedAt: now, UpdatedAt: now}
	owner := organizations.Membership{OrganizationID: "org-1", UserID: "owner-1", Role: organizations.RoleOwner, CreatedAt: now, UpdatedAt: now}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO organizations").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO organization_users").
		WithArgs("org-1", "owner-1", organizations.RoleOwner, now, now).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err = NewOrganizationsRepo(db).CreateOrganization(context.Background(), o, owner)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert owner membership")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizations_CreateSlugConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO organizations").WillReturnError(uniqueViolation())
	mock.ExpectRollback()

	err = NewOrganizationsRepo(db).CreateOrganization(context.Background(), organizations.Organization{ID: "org-1"}, organizations.Membership{})
	assert.ErrorIs(t, err, organizations.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
