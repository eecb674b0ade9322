package medicalrecords_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-hub/internal/adapters/storage/memory"
	"petcare-hub/internal/domain/bookings"
	"petcare-hub/internal/domain/media"
	"petcare-hub/internal/domain/medicalrecords"
	"petcare-hub/internal/domain/organizations"
	"petcare-hub/internal/domain/pets"
)

type fakeMedia struct{ n int }

func (f *fakeMedia) Upload(_ context.Context, prefix string, r io.Reader) (media.Object, error) {
	b, _ := io.ReadAll(r)
	f.n++
	return media.Object{Key: fmt.Sprintf("%s/file-%d.pdf", prefix, f.n), ContentType: "application/pdf", Size: int64(len(b))}, nil
}

type fixture struct {
	svc      *medicalrecords.Service
	bookings *bookings.Service
	orgs     *organizations.Service
	clinic   organizations.Organization
	other    organizations.Organization
	pet      pets.Pet
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return f.now }

	f.orgs = organizations.NewService(memory.NewOrganizationsRepo(), organizations.WithClock(clock))
	petsSvc := pets.NewService(memory.NewPetRepo(), f.orgs, pets.WithClock(clock))
	f.bookings = bookings.NewService(memory.NewBookingsRepo(), petsSvc, f.orgs, bookings.WithClock(clock))
	f.svc = medicalrecords.NewService(memory.NewRecordsRepo(), petsSvc, f.orgs,
		medicalrecords.WithClinicAccess(f.bookings),
		medicalrecords.WithMedia(&fakeMedia{}),
		medicalrecords.WithClock(clock),
	)

	var err error
	f.clinic, err = f.orgs.Create(ctx, "vet-1", organizations.CreateInput{Name: "Clínica Norte", Type: organizations.TypeClinic})
	require.NoError(t, err)
	f.other, err = f.orgs.Create(ctx, "vet-2", organizations.CreateInput{Name: "Clínica Sur", Type: organizations.TypeClinic})
	require.NoError(t, err)

	f.pet, err = petsSvc.Create(ctx, "owner-1", pets.CreateInput{Name: "Luna", Species: "dog"})
	require.NoError(t, err)
	return f
}

func (f *fixture) bookWith(t *testing.T, orgID string) bookings.Booking {
	t.Helper()
	b, err := f.bookings.Create(context.Background(), "owner-1", bookings.CreateInput{
		PetID: f.pet.ID, OrganizationID: orgID, Service: bookings.ServiceConsultation, StartsAt: f.now.Add(time.Hour),
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) create(t *testing.T, userID string, in medicalrecords.CreateInput) medicalrecords.Record {
	t.Helper()
	if in.OccurredAt.IsZero() {
		in.OccurredAt = f.now.Add(-time.Hour)
	}
	rec, err := f.svc.Create(context.Background(), f.pet.ID, userID, in)
	require.NoError(t, err)
	return rec
}

func TestCreate_OwnerAndValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec := f.create(t, "owner-1", medicalrecords.CreateInput{Type: "vaccination", Title: " Rabia "})
	assert.Equal(t, medicalrecords.TypeVaccination, rec.Type)
	assert.Equal(t, "Rabia", rec.Title)
	assert.Equal(t, medicalrecords.ActorTypeOwnerUser, rec.Actor.Type)
	assert.Equal(t, medicalrecords.VisibilityShared, rec.Visibility)
	assert.Empty(t, rec.OrganizationID)

	_, err := f.svc.Create(ctx, f.pet.ID, "owner-1", medicalrecords.CreateInput{Type: "MAGIC", OccurredAt: f.now})
	assert.ErrorIs(t, err, medicalrecords.ErrInvalidInput)

	_, err = f.svc.Create(ctx, f.pet.ID, "owner-1", medicalrecords.CreateInput{Type: "NOTE"})
	assert.ErrorIs(t, err, medicalrecords.ErrInvalidInput)

	_, err = f.svc.Create(ctx, f.pet.ID, "owner-1", medicalrecords.CreateInput{Type: "NOTE", OccurredAt: f.now.Add(24 * time.Hour)})
	assert.ErrorIs(t, err, medicalrecords.ErrInvalidInput)

	due := f.now.Add(-48 * time.Hour)
	_, err = f.svc.Create(ctx, f.pet.ID, "owner-1", medicalrecords.CreateInput{Type: "NOTE", OccurredAt: f.now, NextDueAt: &due})
	assert.ErrorIs(t, err, medicalrecords.ErrInvalidInput)

	_, err = f.svc.Create(ctx, "missing", "owner-1", medicalrecords.CreateInput{Type: "NOTE", OccurredAt: f.now})
	assert.ErrorIs(t, err, medicalrecords.ErrNotFound)
}

func TestClinicAccessFollowsBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// sin turno la clínica no ve ni escribe
	_, err := f.svc.Create(ctx, f.pet.ID, "vet-1", medicalrecords.CreateInput{Type: "CHECKUP", OccurredAt: f.now})
	assert.ErrorIs(t, err, medicalrecords.ErrForbidden)
	_, err = f.svc.ListByPet(ctx, f.pet.ID, "vet-1", medicalrecords.ListFilter{})
	assert.ErrorIs(t, err, medicalrecords.ErrForbidden)

	b := f.bookWith(t, f.clinic.ID)

	rec := f.create(t, "vet-1", medicalrecords.CreateInput{Type: "CHECKUP"})
	assert.Equal(t, f.clinic.ID, rec.OrganizationID)
	assert.Equal(t, medicalrecords.ActorTypeClinicStaff, rec.Actor.Type)

	// no puede firmar con una org a la que no pertenece
	_, err = f.svc.Create(ctx, f.pet.ID, "vet-1", medicalrecords.CreateInput{Type: "NOTE", OccurredAt: f.now, OrganizationID: f.other.ID})
	assert.ErrorIs(t, err, medicalrecords.ErrForbidden)

	_, err = f.bookings.UpdateStatus(ctx, b.ID, "owner-1", bookings.StatusCancelled)
	require.NoError(t, err)
	_, err = f.svc.Get(ctx, f.pet.ID, rec.ID, "vet-1")
	assert.ErrorIs(t, err, medicalrecords.ErrForbidden)
}

func TestPrivateRecordsVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.bookWith(t, f.clinic.ID)
	f.bookWith(t, f.other.ID)

	ownerPrivate := f.create(t, "owner-1", medicalrecords.CreateInput{Type: "NOTE", Title: "privado dueño", Visibility: medicalrecords.VisibilityPrivate})
	clinicPrivate := f.create(t, "vet-1", medicalrecords.CreateInput{Type: "DIAGNOSIS", Title: "privado norte", Visibility: medicalrecords.VisibilityPrivate})
	shared := f.create(t, "vet-2", medicalrecords.CreateInput{Type: "CHECKUP", Title: "control sur"})

	all, err := f.svc.ListByPet(ctx, f.pet.ID, "owner-1", medicalrecords.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	north, err := f.svc.ListByPet(ctx, f.pet.ID, "vet-1", medicalrecords.ListFilter{})
	require.NoError(t, err)
	ids := []string{}
	for _, r := range north {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []string{clinicPrivate.ID, shared.ID}, ids)

	_, err = f.svc.Get(ctx, f.pet.ID, ownerPrivate.ID, "vet-1")
	assert.ErrorIs(t, err, medicalrecords.ErrNotFound)
	_, err = f.svc.Get(ctx, f.pet.ID, clinicPrivate.ID, "vet-2")
	assert.ErrorIs(t, err, medicalrecords.ErrNotFound)
}

func TestListByPet_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.create(t, "owner-1", medicalrecords.CreateInput{Type: "VACCINATION", Title: "Rabia", OccurredAt: f.now.Add(-72 * time.Hour)})
	f.create(t, "owner-1", medicalrecords.CreateInput{Type: "DEWORMING", Title: "Pastilla", OccurredAt: f.now.Add(-48 * time.Hour)})
	f.create(t, "owner-1", medicalrecords.CreateInput{Type: "NOTE", Notes: "Comió pasto", OccurredAt: f.now.Add(-24 * time.Hour)})

	items, err := f.svc.ListByPet(ctx, f.pet.ID, "owner-1", medicalrecords.ListFilter{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, medicalrecords.TypeNote, items[0].Type)

	items, err = f.svc.ListByPet(ctx, f.pet.ID, "owner-1", medicalrecords.ListFilter{Types: []medicalrecords.RecordType{"VACCINATION", "DEWORMING"}})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	from := f.now.Add(-50 * time.Hour)
	items, err = f.svc.ListByPet(ctx, f.pet.ID, "owner-1", medicalrecords.ListFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = f.svc.ListByPet(ctx, f.pet.ID, "owner-1", medicalrecords.ListFilter{Query: "PASTO"})
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = f.svc.ListByPet(ctx, f.pet.ID, "owner-1", medicalrecords.ListFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = f.svc.ListByPet(ctx, f.pet.ID, "owner-1", medicalrecords.ListFilter{Types: []medicalrecords.RecordType{"BOGUS"}})
	assert.ErrorIs(t, err, medicalrecords.ErrInvalidInput)
}

func TestVoidAndDue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.bookWith(t, f.clinic.ID)
	f.bookWith(t, f.other.ID)

	soon := f.now.Add(7 * 24 * time.Hour)
	later := f.now.Add(90 * 24 * time.Hour)
	vaccine := f.create(t, "vet-1", medicalrecords.CreateInput{Type: "VACCINATION", NextDueAt: &soon})
	f.create(t, "owner-1", medicalrecords.CreateInput{Type: "DEWORMING", NextDueAt: &later})
	// control post quirúrgico: tiene fecha pero no es recurrente
	f.create(t, "vet-1", medicalrecords.CreateInput{Type: "SURGERY", NextDueAt: &soon})

	due, err := f.svc.ListDue(ctx, f.pet.ID, "owner-1", time.Time{})
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, vaccine.ID, due[0].ID)

	// otra clínica no anula lo que no firmó
	_, err = f.svc.Void(ctx, f.pet.ID, vaccine.ID, "vet-2")
	assert.ErrorIs(t, err, medicalrecords.ErrForbidden)

	voided, err := f.svc.Void(ctx, f.pet.ID, vaccine.ID, "vet-1")
	require.NoError(t, err)
	assert.Equal(t, medicalrecords.StatusVoided, voided.Status)

	again, err := f.svc.Void(ctx, f.pet.ID, vaccine.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, medicalrecords.StatusVoided, again.Status)

	due, err = f.svc.ListDue(ctx, f.pet.ID, "owner-1", f.now.Add(365*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, medicalrecords.TypeDeworming, due[0].Type)

	// sigue en la historia
	items, err := f.svc.ListByPet(ctx, f.pet.ID, "owner-1", medicalrecords.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestAddAttachment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec := f.create(t, "owner-1", medicalrecords.CreateInput{Type: "LAB_RESULT"})

	updated, err := f.svc.AddAttachment(ctx, f.pet.ID, rec.ID, "owner-1", medicalrecords.AttachmentInput{
		Filename: `C:\scans\hemograma.pdf`,
		Body:     strings.NewReader("%PDF-1.4"),
	})
	require.NoError(t, err)
	require.Len(t, updated.Attachments, 1)
	assert.Equal(t, "hemograma.pdf", updated.Attachments[0].Name)
	assert.True(t, strings.HasPrefix(updated.Attachments[0].Key, "records/"+f.pet.ID+"/"+rec.ID+"/"))

	got, err := f.svc.Get(ctx, f.pet.ID, rec.ID, "owner-1")
	require.NoError(t, err)
	assert.Len(t, got.Attachments, 1)

	_, err = f.svc.AddAttachment(ctx, f.pet.ID, rec.ID, "stranger", medicalrecords.AttachmentInput{Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, medicalrecords.ErrForbidden)

	_, err = f.svc.Void(ctx, f.pet.ID, rec.ID, "owner-1")
	require.NoError(t, err)
	_, err = f.svc.AddAttachment(ctx, f.pet.ID, rec.ID, "owner-1", medicalrecords.AttachmentInput{Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, medicalrecords.ErrBadState)
}
