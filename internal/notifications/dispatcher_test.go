package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-hub/internal/domain/bookings"
	"petcare-hub/internal/domain/organizations"
	"petcare-hub/internal/ports/notify"
)

type fakeMailer struct {
	sent []notify.Email
}

func (f *fakeMailer) Send(_ context.Context, in notify.Email) (string, error) {
	f.sent = append(f.sent, in)
	return "msg", nil
}

type fakePusher struct {
	triggers []notify.Trigger
	err      error
}

func (f *fakePusher) Trigger(_ context.Context, in notify.Trigger) (notify.TriggerResult, error) {
	if f.err != nil {
		return notify.TriggerResult{}, f.err
	}
	f.triggers = append(f.triggers, in)
	return notify.TriggerResult{Acknowledged: true}, nil
}

func TestInviteCreated_RendersEscapedEmail(t *testing.T) {
	mailer := &fakeMailer{}
	d := NewDispatcher(mailer, nil, "https://app.example.com/", nil)

	org := organizations.Organization{ID: "o1", Name: "Clínica <Norte>"}
	inv := organizations.Invite{
		ID:        "i1",
		Email:     "vet@example.com",
		Role:      organizations.RoleVet,
		Token:     "tok-123",
		ExpiresAt: time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, d.InviteCreated(context.Background(), org, inv))

	require.Len(t, mailer.sent, 1)
	e := mailer.sent[0]
	assert.Equal(t, []string{"vet@example.com"}, e.To)
	assert.Equal(t, "Invitación a Clínica <Norte>", e.Subject)
	assert.Contains(t, e.HTML, "Clínica &lt;Norte&gt;")
	assert.Contains(t, e.HTML, "https://app.example.com/invites/accept?token=tok-123")
	assert.Contains(t, e.HTML, "08/03/2026 12:00 UTC")
}

func TestBookingPushes(t *testing.T) {
	pusher := &fakePusher{}
	d := NewDispatcher(nil, pusher, "", nil)
	b := bookings.Booking{
		ID:       "b1",
		UserID:   "owner-1",
		Status:   bookings.StatusConfirmed,
		StartsAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}

	require.NoError(t, d.BookingStatusChanged(context.Background(), b))
	require.NoError(t, d.BookingReminder(context.Background(), b))

	require.Len(t, pusher.triggers, 2)
	assert.Equal(t, WorkflowBookingStatus, pusher.triggers[0].Workflow)
	assert.Equal(t, "owner-1", pusher.triggers[0].SubscriberID)
	assert.Equal(t, "confirmed", pusher.triggers[0].Payload["status"])
	assert.Equal(t, WorkflowBookingReminder, pusher.triggers[1].Workflow)

	pusher.err = errors.New("down")
	assert.Error(t, d.BookingReminder(context.Background(), b))

	// sin canales configurados no falla
	none := NewDispatcher(nil, nil, "", nil)
	assert.NoError(t, none.BookingReminder(context.Background(), b))
	assert.NoError(t, none.InviteCreated(context.Background(), organizations.Organization{}, organizations.Invite{}))
}
