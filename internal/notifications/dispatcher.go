// Package notifications traduce eventos de dominio a emails y pushes.
package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"petcare-hub/internal/domain/bookings"
	"petcare-hub/internal/domain/organizations"
	"petcare-hub/internal/platform/logger"
	"petcare-hub/internal/ports/notify"
)

// Workflows de push configurados en el proveedor.
const (
	WorkflowBookingStatus   = "booking-status"
	WorkflowBookingReminder = "booking-reminder"
)

var inviteTmpl = template.Must(template.New("invite").Parse(`<!doctype html>
<html>
  <body style="font-family: sans-serif; color: #1f2937;">
    <h2>Te invitaron a {{.OrgName}}</h2>
    <p>Te sumaron como <strong>{{.Role}}</strong> en {{.OrgName}}.</p>
    <p><a href="{{.AcceptURL}}">Aceptar invitación</a></p>
    <p style="color: #6b7280; font-size: 12px;">La invitación vence el {{.ExpiresAt}}.</p>
  </body>
</html>`))

type inviteView struct {
	OrgName   string
	Role      string
	AcceptURL string
	ExpiresAt string
}

// Dispatcher implementa organizations.InviteNotifier y bookings.Notifier.
// Mailer o Pusher en nil desactivan ese canal sin error.
type Dispatcher struct {
	mailer    notify.Mailer
	pusher    notify.Pusher
	publicURL string
	log       logger.Logger
}

func NewDispatcher(mailer notify.Mailer, pusher notify.Pusher, publicURL string, log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		mailer:    mailer,
		pusher:    pusher,
		publicURL: strings.TrimRight(strings.TrimSpace(publicURL), "/"),
		log:       log,
	}
}

func (d *Dispatcher) InviteCreated(ctx context.Context, org organizations.Organization, inv organizations.Invite) error {
	if d.mailer == nil {
		return nil
	}

	var buf bytes.Buffer
	if err := inviteTmpl.Execute(&buf, inviteView{
		OrgName:   org.Name,
		Role:      string(inv.Role),
		AcceptURL: d.publicURL + "/invites/accept?token=" + url.QueryEscape(inv.Token),
		ExpiresAt: inv.ExpiresAt.UTC().Format("02/01/2006 15:04 MST"),
	}); err != nil {
		return fmt.Errorf("render invite email: %w", err)
	}

	id, err := d.mailer.Send(ctx, notify.Email{
		To:      []string{inv.Email},
		Subject: "Invitación a " + org.Name,
		HTML:    buf.String(),
	})
	if err != nil {
		return fmt.Errorf("send invite email: %w", err)
	}
	d.log.Debug("invite email sent", map[string]any{"invite_id": inv.ID, "message_id": id})
	return nil
}

func (d *Dispatcher) BookingStatusChanged(ctx context.Context, b bookings.Booking) error {
	return d.pushBooking(ctx, WorkflowBookingStatus, b)
}

func (d *Dispatcher) BookingReminder(ctx context.Context, b bookings.Booking) error {
	return d.pushBooking(ctx, WorkflowBookingReminder, b)
}

func (d *Dispatcher) pushBooking(ctx context.Context, workflow string, b bookings.Booking) error {
	if d.pusher == nil {
		return nil
	}
	res, err := d.pusher.Trigger(ctx, notify.Trigger{
		Workflow:     workflow,
		SubscriberID: b.UserID,
		Payload: map[string]any{
			"booking_id":      b.ID,
			"pet_id":          b.PetID,
			"organization_id": b.OrganizationID,
			"service":         string(b.Service),
			"status":          string(b.Status),
			"starts_at":       b.StartsAt.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return fmt.Errorf("push %s: %w", workflow, err)
	}
	if !res.Acknowledged {
		d.log.Warn("push not acknowledged", map[string]any{"workflow": workflow, "booking_id": b.ID})
	}
	return nil
}
