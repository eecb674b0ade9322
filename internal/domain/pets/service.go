package pets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"petcare-hub/internal/domain/media"
	"petcare-hub/internal/domain/organizations"
	"petcare-hub/internal/platform/logger"
	"petcare-hub/internal/ports/changefeed"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
)

const (
	maxNameLen    = 80
	maxNotesLen   = 4000
	maxMessageLen = 2000

	defaultAdoptionLimit = 50
)

// MediaStore sube y firma archivos (lo implementa media.Service).
type MediaStore interface {
	Upload(ctx context.Context, prefix string, r io.Reader) (media.Object, error)
	Delete(ctx context.Context, key string) error
}

type Service struct {
	repo    Repository
	members Memberships
	media   MediaStore
	feed    changefeed.Publisher
	log     logger.Logger
	now     func() time.Time
}

type Option func(*Service)

func WithMedia(m MediaStore) Option {
	return func(s *Service) { s.media = m }
}

func WithPublisher(p changefeed.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.feed = p
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo Repository, members Memberships, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		members: members,
		feed:    changefeed.Nop{},
		log:     logger.Nop(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

type CreateInput struct {
	OrganizationID string
	Name           string
	Species        Species
	Breed          string
	Sex            Sex
	BirthDate      *time.Time
	Microchip      string
	Notes          string
	Visibility     Visibility
}

// Create registra una mascota. Con OrganizationID, el usuario tiene que ser
// staff de esa org (refugio que carga sus animales, clínica, etc).
func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Pet{}, ErrInvalidInput
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > maxNameLen {
		return Pet{}, fmt.Errorf("%w: name must be 1-%d chars", ErrInvalidInput, maxNameLen)
	}
	species := Species(strings.ToLower(strings.TrimSpace(string(in.Species))))
	if !species.Valid() {
		return Pet{}, fmt.Errorf("%w: unknown species %q", ErrInvalidInput, in.Species)
	}
	sex := Sex(strings.ToLower(strings.TrimSpace(string(in.Sex))))
	if sex == "" {
		sex = SexUnknown
	}
	if !sex.Valid() {
		return Pet{}, fmt.Errorf("%w: unknown sex %q", ErrInvalidInput, in.Sex)
	}
	vis := in.Visibility
	if vis == "" {
		vis = VisibilityPrivate
	}
	if !vis.Valid() {
		return Pet{}, fmt.Errorf("%w: unknown visibility %q", ErrInvalidInput, in.Visibility)
	}
	if len(in.Notes) > maxNotesLen {
		return Pet{}, fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	now := s.now()
	if in.BirthDate != nil && in.BirthDate.After(now) {
		return Pet{}, fmt.Errorf("%w: birth_date is in the future", ErrInvalidInput)
	}

	orgID := strings.TrimSpace(in.OrganizationID)
	if orgID != "" {
		role, err := s.members.MemberRole(ctx, orgID, ownerUserID)
		if err != nil {
			return Pet{}, err
		}
		if !role.IsStaff() {
			return Pet{}, ErrForbidden
		}
	} else if vis == VisibilityOrganization {
		return Pet{}, fmt.Errorf("%w: organization visibility needs an organization", ErrInvalidInput)
	}

	p := Pet{
		ID:             uuid.NewString(),
		OwnerUserID:    ownerUserID,
		OrganizationID: orgID,
		Name:           name,
		Species:        species,
		Breed:          strings.TrimSpace(in.Breed),
		Sex:            sex,
		BirthDate:      in.BirthDate,
		Microchip:      strings.TrimSpace(in.Microchip),
		Notes:          strings.TrimSpace(in.Notes),
		Visibility:     vis,
		AdoptionStatus: AdoptionNone,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	s.publishPet(changefeed.Insert, p)
	return p, nil
}

// GetByID no chequea permisos: lo usan otros módulos que ya autorizaron.
func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Pet{}, ErrNotFound
		}
		return Pet{}, err
	}
	return p, nil
}

// Get aplica la regla de visibilidad.
func (s *Service) Get(ctx context.Context, petID, userID string) (Pet, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	ok, err := s.CanView(ctx, p, userID)
	if err != nil {
		return Pet{}, err
	}
	if !ok {
		return Pet{}, ErrForbidden
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// ListByOrganization: cualquier miembro ve las mascotas de su org.
func (s *Service) ListByOrganization(ctx context.Context, orgID, userID string) ([]Pet, error) {
	role, err := s.members.MemberRole(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	if role == "" {
		return nil, ErrForbidden
	}
	return s.repo.ListByOrganization(ctx, strings.TrimSpace(orgID))
}

// PatchBirthDate distingue "no enviado" de "null" (limpiar).
type PatchBirthDate struct {
	Present bool
	Value   *time.Time
}

type UpdateProfileInput struct {
	Name      *string
	Species   *Species
	Breed     *string
	Sex       *Sex
	BirthDate PatchBirthDate
	Microchip *string
	Notes     *string
}

func (s *Service) UpdateProfile(ctx context.Context, petID, userID string, in UpdateProfileInput) (Pet, error) {
	p, err := s.editable(ctx, petID, userID)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" || len(name) > maxNameLen {
			return Pet{}, fmt.Errorf("%w: name must be 1-%d chars", ErrInvalidInput, maxNameLen)
		}
		p.Name = name
	}
	if in.Species != nil {
		sp := Species(strings.ToLower(strings.TrimSpace(string(*in.Species))))
		if !sp.Valid() {
			return Pet{}, fmt.Errorf("%w: unknown species %q", ErrInvalidInput, *in.Species)
		}
		p.Species = sp
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		sx := Sex(strings.ToLower(strings.TrimSpace(string(*in.Sex))))
		if !sx.Valid() {
			return Pet{}, fmt.Errorf("%w: unknown sex %q", ErrInvalidInput, *in.Sex)
		}
		p.Sex = sx
	}
	if in.BirthDate.Present {
		if in.BirthDate.Value != nil && in.BirthDate.Value.After(s.now()) {
			return Pet{}, fmt.Errorf("%w: birth_date is in the future", ErrInvalidInput)
		}
		p.BirthDate = in.BirthDate.Value
	}
	if in.Microchip != nil {
		p.Microchip = strings.TrimSpace(*in.Microchip)
	}
	if in.Notes != nil {
		if len(*in.Notes) > maxNotesLen {
			return Pet{}, fmt.Errorf("%w: notes too long", ErrInvalidInput)
		}
		p.Notes = strings.TrimSpace(*in.Notes)
	}

	return s.save(ctx, p)
}

// SetVisibility: compartir/ocultar es un update de una sola columna.
func (s *Service) SetVisibility(ctx context.Context, petID, userID string, v Visibility) (Pet, error) {
	if !v.Valid() {
		return Pet{}, fmt.Errorf("%w: unknown visibility %q", ErrInvalidInput, v)
	}
	p, err := s.editable(ctx, petID, userID)
	if err != nil {
		return Pet{}, err
	}
	if v == VisibilityOrganization && p.OrganizationID == "" {
		return Pet{}, fmt.Errorf("%w: organization visibility needs an organization", ErrInvalidInput)
	}
	if p.Visibility == v {
		return p, nil
	}
	p.Visibility = v
	return s.save(ctx, p)
}

// SetAdoptionStatus publica (o retira) la mascota del listado de adopción.
// Publicarla como available la vuelve pública.
func (s *Service) SetAdoptionStatus(ctx context.Context, petID, userID string, st AdoptionStatus) (Pet, error) {
	if !st.Valid() {
		return Pet{}, fmt.Errorf("%w: unknown adoption status %q", ErrInvalidInput, st)
	}
	p, err := s.editable(ctx, petID, userID)
	if err != nil {
		return Pet{}, err
	}
	if p.AdoptionStatus == AdoptionAdopted && st != AdoptionAdopted {
		return Pet{}, fmt.Errorf("%w: pet already adopted", ErrBadState)
	}
	if p.AdoptionStatus == st {
		return p, nil
	}
	p.AdoptionStatus = st
	if st == AdoptionAvailable {
		p.Visibility = VisibilityPublic
	}
	return s.save(ctx, p)
}

// SetPhoto sube la foto a pets/<id>/ y borra la anterior.
func (s *Service) SetPhoto(ctx context.Context, petID, userID string, r io.Reader) (Pet, error) {
	if s.media == nil {
		return Pet{}, fmt.Errorf("%w: media storage not configured", ErrBadState)
	}
	p, err := s.editable(ctx, petID, userID)
	if err != nil {
		return Pet{}, err
	}
	obj, err := s.media.Upload(ctx, "pets/"+p.ID, r)
	if err != nil {
		return Pet{}, err
	}

	old := p.PhotoKey
	p.PhotoKey = obj.Key
	updated, err := s.save(ctx, p)
	if err != nil {
		return Pet{}, err
	}
	if old != "" {
		if err := s.media.Delete(ctx, old); err != nil {
			s.log.Warn("delete old pet photo", map[string]any{"pet_id": p.ID, "key": old, "error": err})
		}
	}
	return updated, nil
}

type AdoptionFilter struct {
	Species        Species
	Sex            Sex
	Breed          string
	MinAgeMonths   int
	MaxAgeMonths   int
	OrganizationID string
	Query          string
	Limit          int
}

// ListAdoptions es público. Los filtros son predicados en memoria sobre el
// listado de adoptables.
func (s *Service) ListAdoptions(ctx context.Context, f AdoptionFilter) ([]Pet, error) {
	items, err := s.repo.ListAdoptable(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	q := strings.ToLower(strings.TrimSpace(f.Query))
	breed := strings.ToLower(strings.TrimSpace(f.Breed))

	out := make([]Pet, 0, len(items))
	for _, p := range items {
		if f.Species != "" && p.Species != f.Species {
			continue
		}
		if f.Sex != "" && p.Sex != f.Sex {
			continue
		}
		if breed != "" && !strings.Contains(strings.ToLower(p.Breed), breed) {
			continue
		}
		if f.OrganizationID != "" && p.OrganizationID != f.OrganizationID {
			continue
		}
		if f.MinAgeMonths > 0 || f.MaxAgeMonths > 0 {
			age := p.AgeMonths(now)
			if age < 0 {
				continue
			}
			if f.MinAgeMonths > 0 && age < f.MinAgeMonths {
				continue
			}
			if f.MaxAgeMonths > 0 && age > f.MaxAgeMonths {
				continue
			}
		}
		if q != "" {
			hay := strings.ToLower(p.Name + " " + p.Breed + " " + p.Notes)
			if !strings.Contains(hay, q) {
				continue
			}
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})

	limit := f.Limit
	if limit <= 0 {
		limit = defaultAdoptionLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Service) Apply(ctx context.Context, petID, userID, message string) (AdoptionApplication, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return AdoptionApplication{}, ErrInvalidInput
	}
	message = strings.TrimSpace(message)
	if len(message) > maxMessageLen {
		return AdoptionApplication{}, fmt.Errorf("%w: message too long", ErrInvalidInput)
	}

	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return AdoptionApplication{}, err
	}
	if p.AdoptionStatus != AdoptionAvailable && p.AdoptionStatus != AdoptionPending {
		return AdoptionApplication{}, fmt.Errorf("%w: pet is not up for adoption", ErrBadState)
	}
	if p.OwnerUserID == userID {
		return AdoptionApplication{}, fmt.Errorf("%w: owner cannot apply", ErrBadState)
	}

	existing, err := s.repo.ListApplicationsByPet(ctx, p.ID)
	if err != nil {
		return AdoptionApplication{}, err
	}
	for _, a := range existing {
		if a.ApplicantUserID == userID && a.Status == ApplicationPending {
			return AdoptionApplication{}, fmt.Errorf("%w: application already pending", ErrConflict)
		}
	}

	now := s.now()
	a := AdoptionApplication{
		ID:              uuid.NewString(),
		PetID:           p.ID,
		ApplicantUserID: userID,
		Message:         message,
		Status:          ApplicationPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.CreateApplication(ctx, a); err != nil {
		return AdoptionApplication{}, err
	}
	s.publishApplication(changefeed.Insert, p, a)
	return a, nil
}

// ListApplications: solo quien puede editar la mascota ve sus solicitudes.
func (s *Service) ListApplications(ctx context.Context, petID, userID string) ([]AdoptionApplication, error) {
	p, err := s.editable(ctx, petID, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListApplicationsByPet(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Service) ListMyApplications(ctx context.Context, userID string) ([]AdoptionApplication, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	items, err := s.repo.ListApplicationsByApplicant(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// DecideApplication aprueba o rechaza. Aprobar transfiere la mascota al
// solicitante, la marca adopted/private y rechaza el resto de pendientes.
func (s *Service) DecideApplication(ctx context.Context, applicationID, userID string, approve bool) (AdoptionApplication, error) {
	a, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return AdoptionApplication{}, err
	}
	p, err := s.editable(ctx, a.PetID, userID)
	if err != nil {
		return AdoptionApplication{}, err
	}
	if a.Status != ApplicationPending {
		return AdoptionApplication{}, fmt.Errorf("%w: application is %s", ErrBadState, a.Status)
	}

	now := s.now()
	a.DecidedBy = strings.TrimSpace(userID)
	a.UpdatedAt = now
	if !approve {
		a.Status = ApplicationRejected
		if err := s.repo.UpdateApplication(ctx, a); err != nil {
			return AdoptionApplication{}, err
		}
		s.publishApplication(changefeed.Update, p, a)
		return a, nil
	}

	a.Status = ApplicationApproved
	if err := s.repo.UpdateApplication(ctx, a); err != nil {
		return AdoptionApplication{}, err
	}

	others, err := s.repo.ListApplicationsByPet(ctx, p.ID)
	if err != nil {
		return AdoptionApplication{}, err
	}
	for _, o := range others {
		if o.ID == a.ID || o.Status != ApplicationPending {
			continue
		}
		o.Status = ApplicationRejected
		o.DecidedBy = a.DecidedBy
		o.UpdatedAt = now
		if err := s.repo.UpdateApplication(ctx, o); err != nil {
			return AdoptionApplication{}, err
		}
		s.publishApplication(changefeed.Update, p, o)
	}

	previous := p
	p.OwnerUserID = a.ApplicantUserID
	p.OrganizationID = ""
	p.AdoptionStatus = AdoptionAdopted
	p.Visibility = VisibilityPrivate
	if _, err := s.save(ctx, p); err != nil {
		return AdoptionApplication{}, err
	}
	// el dueño/org anterior también se entera del cambio
	s.publishApplication(changefeed.Update, previous, a)
	return a, nil
}

func (s *Service) WithdrawApplication(ctx context.Context, applicationID, userID string) (AdoptionApplication, error) {
	a, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return AdoptionApplication{}, err
	}
	if a.ApplicantUserID != strings.TrimSpace(userID) {
		return AdoptionApplication{}, ErrForbidden
	}
	if a.Status == ApplicationWithdrawn {
		return a, nil
	}
	if a.Status != ApplicationPending {
		return AdoptionApplication{}, fmt.Errorf("%w: application is %s", ErrBadState, a.Status)
	}
	a.Status = ApplicationWithdrawn
	a.UpdatedAt = s.now()
	if err := s.repo.UpdateApplication(ctx, a); err != nil {
		return AdoptionApplication{}, err
	}
	return a, nil
}

func (s *Service) getApplication(ctx context.Context, id string) (AdoptionApplication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return AdoptionApplication{}, ErrInvalidInput
	}
	a, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AdoptionApplication{}, ErrNotFound
		}
		return AdoptionApplication{}, err
	}
	return a, nil
}

func (s *Service) editable(ctx context.Context, petID, userID string) (Pet, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	ok, err := s.CanEdit(ctx, p, strings.TrimSpace(userID))
	if err != nil {
		return Pet{}, err
	}
	if !ok {
		return Pet{}, ErrForbidden
	}
	return p, nil
}

func (s *Service) save(ctx context.Context, p Pet) (Pet, error) {
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Pet{}, ErrNotFound
		}
		return Pet{}, err
	}
	s.publishPet(changefeed.Update, p)
	return p, nil
}

func (s *Service) publishPet(t changefeed.ChangeType, p Pet) {
	s.feed.Publish(changefeed.Change{
		Table: "pets",
		Type:  t,
		Record: map[string]any{
			"id":              p.ID,
			"name":            p.Name,
			"species":         p.Species,
			"visibility":      p.Visibility,
			"adoption_status": p.AdoptionStatus,
		},
		OrganizationID: p.OrganizationID,
		MinRole:        petAudience(p),
		UserIDs:        []string{p.OwnerUserID},
		At:             p.UpdatedAt,
	})
}

// petAudience: privada solo para el staff, igual que CanView.
func petAudience(p Pet) string {
	if p.Visibility == VisibilityPrivate {
		return string(organizations.RoleStaff)
	}
	return ""
}

func (s *Service) publishApplication(t changefeed.ChangeType, p Pet, a AdoptionApplication) {
	s.feed.Publish(changefeed.Change{
		Table: "adoption_applications",
		Type:  t,
		Record: map[string]any{
			"id":                a.ID,
			"pet_id":            a.PetID,
			"applicant_user_id": a.ApplicantUserID,
			"status":            a.Status,
		},
		OrganizationID: p.OrganizationID,
		MinRole:        string(organizations.RoleStaff),
		UserIDs:        []string{p.OwnerUserID, a.ApplicantUserID},
		At:             a.UpdatedAt,
	})
}
