package organizations_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-hub/internal/adapters/storage/memory"
	"petcare-hub/internal/domain/organizations"
	"petcare-hub/internal/ports/changefeed"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type recordingNotifier struct {
	sent []organizations.Invite
	err  error
}

func (n *recordingNotifier) InviteCreated(_ context.Context, _ organizations.Organization, inv organizations.Invite) error {
	n.sent = append(n.sent, inv)
	return n.err
}

type recordingFeed struct{ changes []changefeed.Change }

func (f *recordingFeed) Publish(c changefeed.Change) { f.changes = append(f.changes, c) }

func newService(t *testing.T) (*organizations.Service, *clock, *recordingNotifier, *recordingFeed) {
	t.Helper()
	c := &clock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	n := &recordingNotifier{}
	f := &recordingFeed{}
	svc := organizations.NewService(memory.NewOrganizationsRepo(),
		organizations.WithClock(c.now),
		organizations.WithNotifier(n),
		organizations.WithPublisher(f),
		organizations.WithInviteTTL(48*time.Hour),
	)
	return svc, c, n, f
}

func createOrg(t *testing.T, svc *organizations.Service, owner, name string) organizations.Organization {
	t.Helper()
	o, err := svc.Create(context.Background(), owner, organizations.CreateInput{Name: name, Type: organizations.TypeClinic})
	require.NoError(t, err)
	return o
}

func TestCreate_OwnerMembershipAndDefault(t *testing.T) {
	svc, _, _, feed := newService(t)
	ctx := context.Background()

	o := createOrg(t, svc, "owner-1", "Happy Paws Clinic")
	assert.Equal(t, "happy-paws-clinic", o.Slug)

	role, err := svc.MemberRole(ctx, o.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, organizations.RoleOwner, role)

	cur, err := svc.Current(ctx, "owner-1")
	require.NoError(t, err)
	require.NotNil(t, cur.Organization)
	assert.Equal(t, o.ID, cur.Organization.ID)

	// Segunda org: no pisa la default
	o2 := createOrg(t, svc, "owner-1", "Happy Paws Clinic")
	assert.Equal(t, "happy-paws-clinic-2", o2.Slug)
	cur, err = svc.Current(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, o.ID, cur.Organization.ID)

	require.NotEmpty(t, feed.changes)
	assert.Equal(t, "organization_users", feed.changes[0].Table)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u", organizations.CreateInput{Name: "", Type: organizations.TypeClinic})
	assert.ErrorIs(t, err, organizations.ErrInvalidInput)

	_, err = svc.Create(ctx, "u", organizations.CreateInput{Name: "X", Type: "spaceship"})
	assert.ErrorIs(t, err, organizations.ErrInvalidInput)

	_, err = svc.Create(ctx, "u", organizations.CreateInput{Name: "X", Type: organizations.TypeShelter, Email: "not-an-email"})
	assert.ErrorIs(t, err, organizations.ErrInvalidInput)
}

func TestInvite_RefreshesPendingInsteadOfDuplicating(t *testing.T) {
	svc, clk, notifier, feed := newService(t)
	ctx := context.Background()
	o := createOrg(t, svc, "owner-1", "Shelter")

	first, err := svc.Invite(ctx, organizations.InviteInput{
		OrganizationID: o.ID, InviterUserID: "owner-1", Email: "Vet@Example.com", Role: organizations.RoleVet,
	})
	require.NoError(t, err)
	assert.Equal(t, "vet@example.com", first.Email)
	assert.Equal(t, clk.t.Add(48*time.Hour), first.ExpiresAt)

	// el email del invitado solo viaja a owner/admin
	last := feed.changes[len(feed.changes)-1]
	assert.Equal(t, "organization_invites", last.Table)
	assert.Equal(t, string(organizations.RoleAdmin), last.MinRole)

	clk.advance(time.Hour)
	second, err := svc.Invite(ctx, organizations.InviteInput{
		OrganizationID: o.ID, InviterUserID: "owner-1", Email: "vet@example.com", Role: organizations.RoleStaff,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, organizations.RoleStaff, second.Role)
	assert.Equal(t, clk.t.Add(48*time.Hour), second.ExpiresAt)

	items, err := svc.ListInvites(ctx, o.ID, "owner-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Len(t, notifier.sent, 2)

	// el token viejo ya no sirve
	_, err = svc.AcceptInvite(ctx, first.Token, "vet-1", "vet@example.com")
	assert.ErrorIs(t, err, organizations.ErrNotFound)
}

func TestInvite_NotifierFailureDoesNotFail(t *testing.T) {
	svc, _, notifier, _ := newService(t)
	notifier.err = errors.New("smtp down")
	o := createOrg(t, svc, "owner-1", "Org")

	_, err := svc.Invite(context.Background(), organizations.InviteInput{
		OrganizationID: o.ID, InviterUserID: "owner-1", Email: "a@b.io",
	})
	assert.NoError(t, err)
}

func TestInvite_Permissions(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()
	o := createOrg(t, svc, "owner-1", "Org")

	inv, err := svc.Invite(ctx, organizations.InviteInput{OrganizationID: o.ID, InviterUserID: "owner-1", Email: "admin@x.io", Role: organizations.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.AcceptInvite(ctx, inv.Token, "admin-1", "admin@x.io")
	require.NoError(t, err)

	// admin no invita owners
	_, err = svc.Invite(ctx, organizations.InviteInput{OrganizationID: o.ID, InviterUserID: "admin-1", Email: "o2@x.io", Role: organizations.RoleOwner})
	assert.ErrorIs(t, err, organizations.ErrForbidden)

	// admin sí invita staff
	_, err = svc.Invite(ctx, organizations.InviteInput{OrganizationID: o.ID, InviterUserID: "admin-1", Email: "s@x.io", Role: organizations.RoleStaff})
	assert.NoError(t, err)

	// un extraño no invita
	_, err = svc.Invite(ctx, organizations.InviteInput{OrganizationID: o.ID, InviterUserID: "stranger", Email: "s@x.io"})
	assert.ErrorIs(t, err, organizations.ErrForbidden)
}

func TestAcceptInvite(t *testing.T) {
	svc, clk, _, _ := newService(t)
	ctx := context.Background()
	o := createOrg(t, svc, "owner-1", "Org")

	inv, err := svc.Invite(ctx, organizations.InviteInput{OrganizationID: o.ID, InviterUserID: "owner-1", Email: "vet@x.io", Role: organizations.RoleVet})
	require.NoError(t, err)

	_, err = svc.AcceptInvite(ctx, inv.Token, "vet-1", "other@x.io")
	assert.ErrorIs(t, err, organizations.ErrForbidden)

	m, err := svc.AcceptInvite(ctx, inv.Token, "vet-1", "vet@x.io")
	require.NoError(t, err)
	assert.Equal(t, organizations.RoleVet, m.Role)

	// idempotente para el mismo usuario, rechazado para otro
	_, err = svc.AcceptInvite(ctx, inv.Token, "vet-1", "vet@x.io")
	assert.NoError(t, err)
	_, err = svc.AcceptInvite(ctx, inv.Token, "vet-2", "")
	assert.ErrorIs(t, err, organizations.ErrBadState)

	cur, err := svc.Current(ctx, "vet-1")
	require.NoError(t, err)
	require.NotNil(t, cur.Organization)
	assert.Equal(t, o.ID, cur.Organization.ID)
	assert.Equal(t, organizations.RoleVet, cur.Role)

	// vencida
	late, err := svc.Invite(ctx, organizations.InviteInput{OrganizationID: o.ID, InviterUserID: "owner-1", Email: "late@x.io"})
	require.NoError(t, err)
	clk.advance(49 * time.Hour)
	_, err = svc.AcceptInvite(ctx, late.Token, "late-1", "late@x.io")
	assert.ErrorIs(t, err, organizations.ErrBadState)

	items, err := svc.ListInvites(ctx, o.ID, "owner-1")
	require.NoError(t, err)
	for _, it := range items {
		if it.ID == late.ID {
			assert.Equal(t, organizations.InviteStatusExpired, it.Status)
		}
	}
}

func TestAcceptInvite_KeepsHigherRole(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()
	o := createOrg(t, svc, "owner-1", "Org")

	inv, err := svc.Invite(ctx, organizations.InviteInput{OrganizationID: o.ID, InviterUserID: "owner-1", Email: "me@x.io", Role: organizations.RoleMember})
	require.NoError(t, err)
	m, err := svc.AcceptInvite(ctx, inv.Token, "owner-1", "")
	require.NoError(t, err)
	assert.Equal(t, organizations.RoleOwner, m.Role)
}

func TestRevokeInvite(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()
	o := createOrg(t, svc, "owner-1", "Org")

	inv, err := svc.Invite(ctx, organizations.InviteInput{OrganizationID: o.ID, InviterUserID: "owner-1", Email: "x@x.io"})
	require.NoError(t, err)

	_, err = svc.RevokeInvite(ctx, inv.ID, "stranger")
	assert.ErrorIs(t, err, organizations.ErrForbidden)

	revoked, err := svc.RevokeInvite(ctx, inv.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, organizations.InviteStatusRevoked, revoked.Status)

	_, err = svc.AcceptInvite(ctx, inv.Token, "u", "x@x.io")
	assert.ErrorIs(t, err, organizations.ErrBadState)
}

func join(t *testing.T, svc *organizations.Service, orgID, owner, userID string, role organizations.Role) {
	t.Helper()
	inv, err := svc.Invite(context.Background(), organizations.InviteInput{
		OrganizationID: orgID, InviterUserID: owner, Email: userID + "@x.io", Role: role,
	})
	require.NoError(t, err)
	_, err = svc.AcceptInvite(context.Background(), inv.Token, userID, "")
	require.NoError(t, err)
}

func TestLastOwnerProtection(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()
	o := createOrg(t, svc, "owner-1", "Org")

	_, err := svc.ChangeRole(ctx, o.ID, "owner-1", "owner-1", organizations.RoleAdmin)
	assert.ErrorIs(t, err, organizations.ErrBadState)
	assert.ErrorIs(t, svc.RemoveMember(ctx, o.ID, "owner-1", "owner-1"), organizations.ErrBadState)

	join(t, svc, o.ID, "owner-1", "owner-2", organizations.RoleOwner)
	_, err = svc.ChangeRole(ctx, o.ID, "owner-1", "owner-1", organizations.RoleAdmin)
	assert.NoError(t, err)
}

func TestRemoveMember(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()
	o := createOrg(t, svc, "owner-1", "Org")
	join(t, svc, o.ID, "owner-1", "admin-1", organizations.RoleAdmin)
	join(t, svc, o.ID, "owner-1", "staff-1", organizations.RoleStaff)

	// admin no saca al owner
	assert.ErrorIs(t, svc.RemoveMember(ctx, o.ID, "admin-1", "owner-1"), organizations.ErrForbidden)
	// staff no saca a otros, pero puede irse
	assert.ErrorIs(t, svc.RemoveMember(ctx, o.ID, "staff-1", "admin-1"), organizations.ErrForbidden)
	require.NoError(t, svc.RemoveMember(ctx, o.ID, "staff-1", "staff-1"))

	role, err := svc.MemberRole(ctx, o.ID, "staff-1")
	require.NoError(t, err)
	assert.Equal(t, organizations.RoleNone, role)

	// la default del ex-miembro queda vacía
	cur, err := svc.Current(ctx, "staff-1")
	require.NoError(t, err)
	assert.Nil(t, cur.Organization)
	assert.Empty(t, cur.Profile.DefaultOrganizationID)
}

func TestSwitchDefault(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()
	a := createOrg(t, svc, "u1", "A")
	b := createOrg(t, svc, "u1", "B")
	other := createOrg(t, svc, "u2", "C")

	p, err := svc.SwitchDefault(ctx, "u1", b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, p.DefaultOrganizationID)

	_, err = svc.SwitchDefault(ctx, "u1", other.ID)
	assert.ErrorIs(t, err, organizations.ErrForbidden)

	mine, err := svc.ListMine(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, b.ID, mine[0].Organization.ID)
	assert.True(t, mine[0].IsDefault)
	assert.Equal(t, a.ID, mine[1].Organization.ID)
}

func TestExpireInvites(t *testing.T) {
	svc, clk, _, _ := newService(t)
	ctx := context.Background()
	o := createOrg(t, svc, "owner-1", "Org")
	_, err := svc.Invite(ctx, organizations.InviteInput{OrganizationID: o.ID, InviterUserID: "owner-1", Email: "a@x.io"})
	require.NoError(t, err)
	_, err = svc.Invite(ctx, organizations.InviteInput{OrganizationID: o.ID, InviterUserID: "owner-1", Email: "b@x.io"})
	require.NoError(t, err)

	n, err := svc.ExpireInvites(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	clk.advance(72 * time.Hour)
	n, err = svc.ExpireInvites(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
