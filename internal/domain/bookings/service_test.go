package bookings_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-hub/internal/adapters/storage/memory"
	"petcare-hub/internal/domain/bookings"
	"petcare-hub/internal/domain/organizations"
	"petcare-hub/internal/domain/pets"
)

type recordingNotifier struct {
	status     []bookings.Booking
	reminders  []bookings.Booking
	failFor    string
	onReminder func(bookings.Booking)
}

func (n *recordingNotifier) BookingStatusChanged(_ context.Context, b bookings.Booking) error {
	n.status = append(n.status, b)
	return nil
}

func (n *recordingNotifier) BookingReminder(_ context.Context, b bookings.Booking) error {
	if b.ID == n.failFor {
		return errors.New("push down")
	}
	if n.onReminder != nil {
		n.onReminder(b)
	}
	n.reminders = append(n.reminders, b)
	return nil
}

type fixture struct {
	svc      *bookings.Service
	orgs     *organizations.Service
	notifier *recordingNotifier
	clinic   organizations.Organization
	pet      pets.Pet
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), notifier: &recordingNotifier{}}
	clock := func() time.Time { return f.now }

	f.orgs = organizations.NewService(memory.NewOrganizationsRepo(), organizations.WithClock(clock))
	petsSvc := pets.NewService(memory.NewPetRepo(), f.orgs, pets.WithClock(clock))
	f.svc = bookings.NewService(memory.NewBookingsRepo(), petsSvc, f.orgs,
		bookings.WithNotifier(f.notifier),
		bookings.WithClock(clock),
	)

	var err error
	f.clinic, err = f.orgs.Create(ctx, "vet-owner", organizations.CreateInput{Name: "Clínica Norte", Type: organizations.TypeClinic})
	require.NoError(t, err)
	f.addMember(t, "vet-1", organizations.RoleVet)
	f.addMember(t, "receptionist", organizations.RoleMember)

	f.pet, err = petsSvc.Create(ctx, "owner-1", pets.CreateInput{Name: "Luna", Species: "dog"})
	require.NoError(t, err)
	return f
}

func (f *fixture) addMember(t *testing.T, userID string, role organizations.Role) {
	t.Helper()
	ctx := context.Background()
	inv, err := f.orgs.Invite(ctx, organizations.InviteInput{
		OrganizationID: f.clinic.ID,
		InviterUserID:  "vet-owner",
		Email:          userID + "@example.com",
		Role:           role,
	})
	require.NoError(t, err)
	_, err = f.orgs.AcceptInvite(ctx, inv.Token, userID, userID+"@example.com")
	require.NoError(t, err)
}

func (f *fixture) book(t *testing.T, startsIn time.Duration) bookings.Booking {
	t.Helper()
	b, err := f.svc.Create(context.Background(), "owner-1", bookings.CreateInput{
		PetID:          f.pet.ID,
		OrganizationID: f.clinic.ID,
		Service:        bookings.ServiceConsultation,
		StartsAt:       f.now.Add(startsIn),
	})
	require.NoError(t, err)
	return b
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.book(t, 2*time.Hour)
	assert.Equal(t, bookings.StatusPending, b.Status)
	assert.Equal(t, 30*time.Minute, b.EndsAt.Sub(b.StartsAt))

	base := bookings.CreateInput{PetID: f.pet.ID, OrganizationID: f.clinic.ID, Service: "grooming", StartsAt: f.now.Add(time.Hour)}

	in := base
	in.StartsAt = f.now.Add(-time.Minute)
	_, err := f.svc.Create(ctx, "owner-1", in)
	assert.ErrorIs(t, err, bookings.ErrInvalidInput)

	in = base
	in.EndsAt = in.StartsAt
	_, err = f.svc.Create(ctx, "owner-1", in)
	assert.ErrorIs(t, err, bookings.ErrInvalidInput)

	assert.True(t, bookings.ServiceType("grooming").Valid())
	assert.False(t, bookings.ServiceType("tarot").Valid())

	in = base
	in.Service = "tarot"
	_, err = f.svc.Create(ctx, "owner-1", in)
	assert.ErrorIs(t, err, bookings.ErrInvalidInput)

	_, err = f.svc.Create(ctx, "someone-else", base)
	assert.ErrorIs(t, err, bookings.ErrForbidden)

	in = base
	in.OrganizationID = "missing"
	_, err = f.svc.Create(ctx, "owner-1", in)
	assert.ErrorIs(t, err, bookings.ErrNotFound)

	in = base
	in.PetID = "missing"
	_, err = f.svc.Create(ctx, "owner-1", in)
	assert.ErrorIs(t, err, bookings.ErrNotFound)
}

func TestGetAndList_Access(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, time.Hour)

	_, err := f.svc.Get(ctx, b.ID, "owner-1")
	require.NoError(t, err)
	_, err = f.svc.Get(ctx, b.ID, "receptionist")
	require.NoError(t, err)
	_, err = f.svc.Get(ctx, b.ID, "stranger")
	assert.ErrorIs(t, err, bookings.ErrForbidden)

	mine, err := f.svc.ListMine(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	agenda, err := f.svc.ListByOrganization(ctx, f.clinic.ID, "vet-1", bookings.Filter{Status: bookings.StatusPending})
	require.NoError(t, err)
	assert.Len(t, agenda, 1)

	to := f.now.Add(30 * time.Minute)
	agenda, err = f.svc.ListByOrganization(ctx, f.clinic.ID, "vet-1", bookings.Filter{To: &to})
	require.NoError(t, err)
	assert.Empty(t, agenda)

	_, err = f.svc.ListByOrganization(ctx, f.clinic.ID, "stranger", bookings.Filter{})
	assert.ErrorIs(t, err, bookings.ErrForbidden)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, time.Hour)

	// el dueño no puede confirmar, un miembro raso tampoco
	_, err := f.svc.UpdateStatus(ctx, b.ID, "owner-1", bookings.StatusConfirmed)
	assert.ErrorIs(t, err, bookings.ErrForbidden)
	_, err = f.svc.UpdateStatus(ctx, b.ID, "receptionist", bookings.StatusConfirmed)
	assert.ErrorIs(t, err, bookings.ErrForbidden)

	// no se puede completar algo pendiente
	_, err = f.svc.UpdateStatus(ctx, b.ID, "vet-1", bookings.StatusCompleted)
	assert.ErrorIs(t, err, bookings.ErrBadState)

	b, err = f.svc.UpdateStatus(ctx, b.ID, "vet-1", bookings.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusConfirmed, b.Status)

	b, err = f.svc.UpdateStatus(ctx, b.ID, "vet-1", bookings.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusCompleted, b.Status)

	_, err = f.svc.UpdateStatus(ctx, b.ID, "owner-1", bookings.StatusCancelled)
	assert.ErrorIs(t, err, bookings.ErrBadState)

	// solo confirm/cancel notifican
	require.Len(t, f.notifier.status, 1)
	assert.Equal(t, bookings.StatusConfirmed, f.notifier.status[0].Status)

	other := f.book(t, 3*time.Hour)
	other, err = f.svc.UpdateStatus(ctx, other.ID, "owner-1", bookings.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusCancelled, other.Status)
	assert.Len(t, f.notifier.status, 2)

	_, err = f.svc.UpdateStatus(ctx, other.ID, "vet-1", bookings.Status("teleported"))
	assert.ErrorIs(t, err, bookings.ErrInvalidInput)
}

func TestClinicOrganizations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	orgs, err := f.svc.ClinicOrganizations(ctx, f.pet.ID, "vet-1")
	require.NoError(t, err)
	assert.Empty(t, orgs)

	b := f.book(t, time.Hour)
	orgs, err = f.svc.ClinicOrganizations(ctx, f.pet.ID, "vet-1")
	require.NoError(t, err)
	assert.Equal(t, []string{f.clinic.ID}, orgs)

	// miembro raso no es staff
	orgs, err = f.svc.ClinicOrganizations(ctx, f.pet.ID, "receptionist")
	require.NoError(t, err)
	assert.Empty(t, orgs)

	_, err = f.svc.UpdateStatus(ctx, b.ID, "owner-1", bookings.StatusCancelled)
	require.NoError(t, err)
	orgs, err = f.svc.ClinicOrganizations(ctx, f.pet.ID, "vet-1")
	require.NoError(t, err)
	assert.Empty(t, orgs)
}

func TestSendReminders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	soon := f.book(t, 2*time.Hour)
	failing := f.book(t, 3*time.Hour)
	later := f.book(t, 48*time.Hour)
	pending := f.book(t, time.Hour)
	for _, b := range []bookings.Booking{soon, failing, later} {
		_, err := f.svc.UpdateStatus(ctx, b.ID, "vet-1", bookings.StatusConfirmed)
		require.NoError(t, err)
	}
	f.notifier.failFor = failing.ID

	n, err := f.svc.SendReminders(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, f.notifier.reminders, 1)
	assert.Equal(t, soon.ID, f.notifier.reminders[0].ID)

	got, err := f.svc.Get(ctx, soon.ID, "owner-1")
	require.NoError(t, err)
	require.NotNil(t, got.RemindedAt)

	got, err = f.svc.Get(ctx, pending.ID, "owner-1")
	require.NoError(t, err)
	assert.Nil(t, got.RemindedAt)

	// segunda corrida: el que falló se reintenta, el ya avisado no
	f.notifier.failFor = ""
	n, err = f.svc.SendReminders(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, failing.ID, f.notifier.reminders[1].ID)

	_, err = f.svc.SendReminders(ctx, 0)
	assert.ErrorIs(t, err, bookings.ErrInvalidInput)
}

func TestSendReminders_CancelDuringReminderWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.book(t, 2*time.Hour)
	_, err := f.svc.UpdateStatus(ctx, b.ID, "vet-1", bookings.StatusConfirmed)
	require.NoError(t, err)

	// el dueño cancela mientras sale el aviso
	f.notifier.onReminder = func(got bookings.Booking) {
		_, err := f.svc.UpdateStatus(ctx, got.ID, "owner-1", bookings.StatusCancelled)
		require.NoError(t, err)
	}

	n, err := f.svc.SendReminders(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	got, err := f.svc.Get(ctx, b.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusCancelled, got.Status)
	assert.Nil(t, got.RemindedAt)
}
