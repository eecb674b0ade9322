package pets_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-hub/internal/adapters/storage/memory"
	"petcare-hub/internal/domain/media"
	"petcare-hub/internal/domain/organizations"
	"petcare-hub/internal/domain/pets"
	"petcare-hub/internal/ports/changefeed"
)

type fakeMembers map[string]organizations.Role // orgID|userID

func (m fakeMembers) MemberRole(_ context.Context, orgID, userID string) (organizations.Role, error) {
	return m[orgID+"|"+userID], nil
}

type fakeMedia struct {
	uploaded []string
	deleted  []string
}

func (f *fakeMedia) Upload(_ context.Context, prefix string, r io.Reader) (media.Object, error) {
	b, _ := io.ReadAll(r)
	key := prefix + "/photo-" + string(rune('a'+len(f.uploaded))) + ".png"
	f.uploaded = append(f.uploaded, key)
	return media.Object{Key: key, ContentType: "image/png", Size: int64(len(b))}, nil
}

func (f *fakeMedia) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type recordingFeed struct{ changes []changefeed.Change }

func (f *recordingFeed) Publish(c changefeed.Change) { f.changes = append(f.changes, c) }

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newService(members fakeMembers) (*pets.Service, *fakeMedia, *recordingFeed) {
	m := &fakeMedia{}
	f := &recordingFeed{}
	svc := pets.NewService(memory.NewPetRepo(), members,
		pets.WithMedia(m),
		pets.WithPublisher(f),
		pets.WithClock(func() time.Time { return now }),
	)
	return svc, m, f
}

func date(y int, mo time.Month, d int) *time.Time {
	t := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestCreate_ValidatesAndDefaults(t *testing.T) {
	svc, _, feed := newService(fakeMembers{})
	ctx := context.Background()

	p, err := svc.Create(ctx, "u1", pets.CreateInput{Name: " Luna ", Species: "DOG"})
	require.NoError(t, err)
	assert.Equal(t, "Luna", p.Name)
	assert.Equal(t, pets.SpeciesDog, p.Species)
	assert.Equal(t, pets.SexUnknown, p.Sex)
	assert.Equal(t, pets.VisibilityPrivate, p.Visibility)
	assert.Equal(t, pets.AdoptionNone, p.AdoptionStatus)
	require.Len(t, feed.changes, 1)
	assert.Equal(t, "pets", feed.changes[0].Table)
	// privada: un miembro raso de la org no la recibe
	assert.Equal(t, string(organizations.RoleStaff), feed.changes[0].MinRole)

	_, err = svc.Create(ctx, "u1", pets.CreateInput{Name: "", Species: "dog"})
	assert.ErrorIs(t, err, pets.ErrInvalidInput)

	_, err = svc.Create(ctx, "u1", pets.CreateInput{Name: "X", Species: "dragon"})
	assert.ErrorIs(t, err, pets.ErrInvalidInput)

	_, err = svc.Create(ctx, "u1", pets.CreateInput{Name: "X", Species: "cat", BirthDate: date(2030, 1, 1)})
	assert.ErrorIs(t, err, pets.ErrInvalidInput)

	_, err = svc.Create(ctx, "u1", pets.CreateInput{Name: "X", Species: "cat", Visibility: pets.VisibilityOrganization})
	assert.ErrorIs(t, err, pets.ErrInvalidInput)
}

func TestCreate_ForOrganizationRequiresStaff(t *testing.T) {
	svc, _, _ := newService(fakeMembers{
		"shelter|staff-1":  organizations.RoleStaff,
		"shelter|member-1": organizations.RoleMember,
	})
	ctx := context.Background()

	_, err := svc.Create(ctx, "member-1", pets.CreateInput{OrganizationID: "shelter", Name: "Toby", Species: "dog"})
	assert.ErrorIs(t, err, pets.ErrForbidden)

	p, err := svc.Create(ctx, "staff-1", pets.CreateInput{OrganizationID: "shelter", Name: "Toby", Species: "dog"})
	require.NoError(t, err)
	assert.Equal(t, "shelter", p.OrganizationID)
}

func TestViewerRule(t *testing.T) {
	svc, _, _ := newService(fakeMembers{
		"clinic|vet-1":    organizations.RoleVet,
		"clinic|member-1": organizations.RoleMember,
	})
	ctx := context.Background()

	p, err := svc.Create(ctx, "vet-1", pets.CreateInput{OrganizationID: "clinic", Name: "Milo", Species: "cat"})
	require.NoError(t, err)

	// private: dueño y staff sí, miembro raso y extraño no
	_, err = svc.Get(ctx, p.ID, "vet-1")
	require.NoError(t, err)
	_, err = svc.Get(ctx, p.ID, "member-1")
	assert.ErrorIs(t, err, pets.ErrForbidden)
	_, err = svc.Get(ctx, p.ID, "stranger")
	assert.ErrorIs(t, err, pets.ErrForbidden)

	_, err = svc.SetVisibility(ctx, p.ID, "vet-1", pets.VisibilityOrganization)
	require.NoError(t, err)
	_, err = svc.Get(ctx, p.ID, "member-1")
	require.NoError(t, err)
	_, err = svc.Get(ctx, p.ID, "stranger")
	assert.ErrorIs(t, err, pets.ErrForbidden)

	_, err = svc.SetVisibility(ctx, p.ID, "vet-1", pets.VisibilityPublic)
	require.NoError(t, err)
	_, err = svc.Get(ctx, p.ID, "stranger")
	require.NoError(t, err)

	// ver no implica editar
	_, err = svc.SetVisibility(ctx, p.ID, "stranger", pets.VisibilityPrivate)
	assert.ErrorIs(t, err, pets.ErrForbidden)

	_, err = svc.Get(ctx, "missing", "vet-1")
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func TestUpdateProfile_PatchSemantics(t *testing.T) {
	svc, _, _ := newService(fakeMembers{})
	ctx := context.Background()

	p, err := svc.Create(ctx, "u1", pets.CreateInput{Name: "Luna", Species: "dog", Breed: "Mestiza", BirthDate: date(2024, 1, 10)})
	require.NoError(t, err)

	name := "Luna II"
	updated, err := svc.UpdateProfile(ctx, p.ID, "u1", pets.UpdateProfileInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Luna II", updated.Name)
	assert.Equal(t, "Mestiza", updated.Breed)
	require.NotNil(t, updated.BirthDate)

	updated, err = svc.UpdateProfile(ctx, p.ID, "u1", pets.UpdateProfileInput{BirthDate: pets.PatchBirthDate{Present: true}})
	require.NoError(t, err)
	assert.Nil(t, updated.BirthDate)

	bad := pets.Species("dragon")
	_, err = svc.UpdateProfile(ctx, p.ID, "u1", pets.UpdateProfileInput{Species: &bad})
	assert.ErrorIs(t, err, pets.ErrInvalidInput)

	_, err = svc.UpdateProfile(ctx, p.ID, "u2", pets.UpdateProfileInput{Name: &name})
	assert.ErrorIs(t, err, pets.ErrForbidden)
}

func TestSetPhoto_ReplacesPrevious(t *testing.T) {
	svc, m, _ := newService(fakeMembers{})
	ctx := context.Background()

	p, err := svc.Create(ctx, "u1", pets.CreateInput{Name: "Luna", Species: "dog"})
	require.NoError(t, err)

	p1, err := svc.SetPhoto(ctx, p.ID, "u1", strings.NewReader("one"))
	require.NoError(t, err)
	assert.Equal(t, "pets/"+p.ID+"/photo-a.png", p1.PhotoKey)

	p2, err := svc.SetPhoto(ctx, p.ID, "u1", strings.NewReader("two"))
	require.NoError(t, err)
	assert.NotEqual(t, p1.PhotoKey, p2.PhotoKey)
	assert.Equal(t, []string{p1.PhotoKey}, m.deleted)
}

func TestListAdoptions_Filters(t *testing.T) {
	svc, _, _ := newService(fakeMembers{"shelter|s1": organizations.RoleStaff})
	ctx := context.Background()

	mk := func(name string, sp pets.Species, sex pets.Sex, breed string, bd *time.Time, org string) pets.Pet {
		p, err := svc.Create(ctx, "s1", pets.CreateInput{OrganizationID: org, Name: name, Species: sp, Sex: sex, Breed: breed, BirthDate: bd})
		require.NoError(t, err)
		p, err = svc.SetAdoptionStatus(ctx, p.ID, "s1", pets.AdoptionAvailable)
		require.NoError(t, err)
		return p
	}

	rex := mk("Rex", pets.SpeciesDog, pets.SexMale, "Labrador", date(2025, 9, 1), "shelter")
	mk("Nala", pets.SpeciesCat, pets.SexFemale, "Siamés", date(2020, 1, 1), "")
	mk("Old Dog", pets.SpeciesDog, pets.SexFemale, "Beagle", date(2015, 1, 1), "")

	// no disponible: no aparece
	_, err := svc.Create(ctx, "s1", pets.CreateInput{Name: "Hidden", Species: "dog"})
	require.NoError(t, err)

	all, err := svc.ListAdoptions(ctx, pets.AdoptionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	for _, p := range all {
		assert.Equal(t, pets.VisibilityPublic, p.Visibility)
	}

	dogs, err := svc.ListAdoptions(ctx, pets.AdoptionFilter{Species: pets.SpeciesDog})
	require.NoError(t, err)
	assert.Len(t, dogs, 2)

	young, err := svc.ListAdoptions(ctx, pets.AdoptionFilter{MaxAgeMonths: 12})
	require.NoError(t, err)
	require.Len(t, young, 1)
	assert.Equal(t, rex.ID, young[0].ID)

	byOrg, err := svc.ListAdoptions(ctx, pets.AdoptionFilter{OrganizationID: "shelter"})
	require.NoError(t, err)
	assert.Len(t, byOrg, 1)

	q, err := svc.ListAdoptions(ctx, pets.AdoptionFilter{Query: "beag"})
	require.NoError(t, err)
	require.Len(t, q, 1)
	assert.Equal(t, "Old Dog", q[0].Name)

	limited, err := svc.ListAdoptions(ctx, pets.AdoptionFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestAdoptionFlow_ApproveTransfersOwnership(t *testing.T) {
	svc, _, feed := newService(fakeMembers{"shelter|s1": organizations.RoleStaff})
	ctx := context.Background()

	p, err := svc.Create(ctx, "s1", pets.CreateInput{OrganizationID: "shelter", Name: "Rex", Species: "dog"})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, p.ID, "a1", "hola")
	assert.ErrorIs(t, err, pets.ErrBadState)

	_, err = svc.SetAdoptionStatus(ctx, p.ID, "s1", pets.AdoptionAvailable)
	require.NoError(t, err)

	_, err = svc.Apply(ctx, p.ID, "s1", "")
	assert.ErrorIs(t, err, pets.ErrBadState)

	app1, err := svc.Apply(ctx, p.ID, "a1", "tengo patio")
	require.NoError(t, err)
	_, err = svc.Apply(ctx, p.ID, "a1", "otra vez")
	assert.ErrorIs(t, err, pets.ErrConflict)
	app2, err := svc.Apply(ctx, p.ID, "a2", "")
	require.NoError(t, err)

	_, err = svc.ListApplications(ctx, p.ID, "a1")
	assert.ErrorIs(t, err, pets.ErrForbidden)
	list, err := svc.ListApplications(ctx, p.ID, "s1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.DecideApplication(ctx, app1.ID, "a2", true)
	assert.ErrorIs(t, err, pets.ErrForbidden)

	decided, err := svc.DecideApplication(ctx, app1.ID, "s1", true)
	require.NoError(t, err)
	assert.Equal(t, pets.ApplicationApproved, decided.Status)
	assert.Equal(t, "s1", decided.DecidedBy)

	got, err := svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "a1", got.OwnerUserID)
	assert.Empty(t, got.OrganizationID)
	assert.Equal(t, pets.AdoptionAdopted, got.AdoptionStatus)
	assert.Equal(t, pets.VisibilityPrivate, got.Visibility)

	mine, err := svc.ListMyApplications(ctx, "a2")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, app2.ID, mine[0].ID)
	assert.Equal(t, pets.ApplicationRejected, mine[0].Status)

	_, err = svc.DecideApplication(ctx, app1.ID, "a1", false)
	assert.ErrorIs(t, err, pets.ErrBadState)

	_, err = svc.SetAdoptionStatus(ctx, p.ID, "a1", pets.AdoptionAvailable)
	assert.ErrorIs(t, err, pets.ErrBadState)

	var appChanges int
	for _, c := range feed.changes {
		if c.Table == "adoption_applications" {
			appChanges++
		}
	}
	assert.GreaterOrEqual(t, appChanges, 4)
}

func TestWithdrawApplication(t *testing.T) {
	svc, _, _ := newService(fakeMembers{})
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner", pets.CreateInput{Name: "Rex", Species: "dog"})
	require.NoError(t, err)
	_, err = svc.SetAdoptionStatus(ctx, p.ID, "owner", pets.AdoptionAvailable)
	require.NoError(t, err)

	app, err := svc.Apply(ctx, p.ID, "a1", "")
	require.NoError(t, err)

	_, err = svc.WithdrawApplication(ctx, app.ID, "owner")
	assert.ErrorIs(t, err, pets.ErrForbidden)

	w, err := svc.WithdrawApplication(ctx, app.ID, "a1")
	require.NoError(t, err)
	assert.Equal(t, pets.ApplicationWithdrawn, w.Status)

	// idempotente
	w, err = svc.WithdrawApplication(ctx, app.ID, "a1")
	require.NoError(t, err)
	assert.Equal(t, pets.ApplicationWithdrawn, w.Status)

	_, err = svc.DecideApplication(ctx, app.ID, "owner", true)
	assert.ErrorIs(t, err, pets.ErrBadState)
}

func TestAgeMonths(t *testing.T) {
	p := pets.Pet{BirthDate: date(2025, 3, 15)}
	assert.Equal(t, 11, p.AgeMonths(now))
	assert.Equal(t, -1, pets.Pet{}.AgeMonths(now))
}
