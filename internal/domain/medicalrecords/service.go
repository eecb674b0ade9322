package medicalrecords

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"petcare-hub/internal/domain/media"
	"petcare-hub/internal/domain/organizations"
	"petcare-hub/internal/domain/pets"
	"petcare-hub/internal/platform/logger"
	"petcare-hub/internal/ports/changefeed"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
)

const (
	DefaultLimit   = 50
	MaxLimit       = 200
	maxTitleLen    = 200
	maxNotesLen    = 8000
	maxAttachments = 10
)

// Pets lo implementa pets.Service.
type Pets interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
}

// Memberships lo implementa organizations.Service.
type Memberships interface {
	MemberRole(ctx context.Context, orgID, userID string) (organizations.Role, error)
}

// ClinicAccess devuelve las orgs con turnos activos para la mascota donde el
// usuario es staff (lo implementa bookings.Service).
type ClinicAccess interface {
	ClinicOrganizations(ctx context.Context, petID, userID string) ([]string, error)
}

type MediaStore interface {
	Upload(ctx context.Context, prefix string, r io.Reader) (media.Object, error)
}

type Service struct {
	repo    Repository
	pets    Pets
	members Memberships
	clinics ClinicAccess
	media   MediaStore
	feed    changefeed.Publisher
	log     logger.Logger
	now     func() time.Time
}

type Option func(*Service)

func WithClinicAccess(c ClinicAccess) Option {
	return func(s *Service) { s.clinics = c }
}

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

func NewService(repo Repository, petsSvc Pets, members Memberships, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		pets:    petsSvc,
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

// access es lo que un usuario puede hacer sobre la historia de una mascota.
type access struct {
	pet   pets.Pet
	owner bool
	// orgs donde el usuario es staff y que tienen relación con la mascota
	orgs []string
}

func (a access) any() bool { return a.owner || len(a.orgs) > 0 }

func (a access) scope() Scope {
	return Scope{AllPrivate: a.owner, PrivateOrgs: a.orgs}
}

func (a access) inOrg(orgID string) bool {
	return orgID != "" && slices.Contains(a.orgs, orgID)
}

func (s *Service) resolve(ctx context.Context, petID, userID string) (access, error) {
	petID = strings.TrimSpace(petID)
	userID = strings.TrimSpace(userID)
	if petID == "" || userID == "" {
		return access{}, ErrInvalidInput
	}
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return access{}, fmt.Errorf("%w: pet", ErrNotFound)
		}
		return access{}, err
	}

	a := access{pet: p, owner: p.OwnerUserID == userID}
	if p.OrganizationID != "" {
		role, err := s.members.MemberRole(ctx, p.OrganizationID, userID)
		if err != nil {
			return access{}, err
		}
		if role.IsStaff() {
			a.orgs = append(a.orgs, p.OrganizationID)
		}
	}
	if s.clinics != nil {
		orgs, err := s.clinics.ClinicOrganizations(ctx, p.ID, userID)
		if err != nil {
			return access{}, err
		}
		for _, id := range orgs {
			if !slices.Contains(a.orgs, id) {
				a.orgs = append(a.orgs, id)
			}
		}
	}
	return a, nil
}

type CreateInput struct {
	Type       RecordType
	OccurredAt time.Time
	Title      string
	Notes      string
	NextDueAt  *time.Time
	Visibility Visibility
	// OrganizationID: con qué org firma el staff. Vacío = la primera con acceso.
	OrganizationID string
}

func (s *Service) Create(ctx context.Context, petID, userID string, in CreateInput) (Record, error) {
	typ := RecordType(strings.ToUpper(strings.TrimSpace(string(in.Type))))
	if !typ.Valid() {
		return Record{}, fmt.Errorf("%w: unknown type %q", ErrInvalidInput, in.Type)
	}
	if in.OccurredAt.IsZero() {
		return Record{}, fmt.Errorf("%w: occurred_at is required", ErrInvalidInput)
	}
	now := s.now()
	if in.OccurredAt.After(now.Add(5 * time.Minute)) {
		return Record{}, fmt.Errorf("%w: occurred_at is in the future", ErrInvalidInput)
	}
	if in.NextDueAt != nil && in.NextDueAt.Before(in.OccurredAt) {
		return Record{}, fmt.Errorf("%w: next_due_at must be after occurred_at", ErrInvalidInput)
	}
	title := strings.TrimSpace(in.Title)
	if len(title) > maxTitleLen {
		return Record{}, fmt.Errorf("%w: title too long", ErrInvalidInput)
	}
	if len(in.Notes) > maxNotesLen {
		return Record{}, fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}
	vis := in.Visibility
	if vis == "" {
		vis = VisibilityShared
	}
	if !vis.Valid() {
		return Record{}, fmt.Errorf("%w: unknown visibility %q", ErrInvalidInput, in.Visibility)
	}

	a, err := s.resolve(ctx, petID, userID)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		ID:         uuid.NewString(),
		PetID:      a.pet.ID,
		Type:       typ,
		OccurredAt: in.OccurredAt.UTC(),
		RecordedAt: now,
		Title:      title,
		Notes:      strings.TrimSpace(in.Notes),
		NextDueAt:  in.NextDueAt,
		Visibility: vis,
		Status:     StatusActive,
	}

	orgID := strings.TrimSpace(in.OrganizationID)
	switch {
	case a.owner && orgID == "":
		rec.Actor = Actor{Type: ActorTypeOwnerUser, ID: strings.TrimSpace(userID)}
	case len(a.orgs) > 0:
		if orgID == "" {
			orgID = a.orgs[0]
		}
		if !a.inOrg(orgID) {
			return Record{}, ErrForbidden
		}
		rec.OrganizationID = orgID
		rec.Actor = Actor{Type: ActorTypeClinicStaff, ID: strings.TrimSpace(userID)}
		if orgID == a.pet.OrganizationID {
			rec.Actor.Type = ActorTypeOrgStaff
		}
	default:
		return Record{}, ErrForbidden
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	s.publish(changefeed.Insert, a.pet, rec)
	return rec, nil
}

// Get: el registro tiene que pertenecer a la mascota de la ruta.
func (s *Service) Get(ctx context.Context, petID, recordID, userID string) (Record, error) {
	a, err := s.resolve(ctx, petID, userID)
	if err != nil {
		return Record{}, err
	}
	if !a.any() {
		return Record{}, ErrForbidden
	}
	rec, err := s.getForPet(ctx, a.pet.ID, recordID)
	if err != nil {
		return Record{}, err
	}
	if !a.scope().CanSee(rec) {
		// un privado ajeno se reporta como inexistente
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// ListByPet devuelve la historia más reciente primero.
func (s *Service) ListByPet(ctx context.Context, petID, userID string, filter ListFilter) ([]Record, error) {
	for _, t := range filter.Types {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidInput, t)
		}
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, fmt.Errorf("%w: to must be after from", ErrInvalidInput)
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}

	a, err := s.resolve(ctx, petID, userID)
	if err != nil {
		return nil, err
	}
	if !a.any() {
		return nil, ErrForbidden
	}
	filter.Scope = a.scope()
	return s.repo.ListByPet(ctx, a.pet.ID, filter)
}

// ListDue: próximas dosis/controles (vacunas, desparasitación...) hasta until.
// Solo tipos recurrentes; un next_due_at en otro tipo no es un recordatorio.
func (s *Service) ListDue(ctx context.Context, petID, userID string, until time.Time) ([]Record, error) {
	if until.IsZero() {
		until = s.now().Add(30 * 24 * time.Hour)
	}
	a, err := s.resolve(ctx, petID, userID)
	if err != nil {
		return nil, err
	}
	if !a.any() {
		return nil, ErrForbidden
	}
	items, err := s.repo.ListDue(ctx, a.pet.ID, until, a.scope())
	if err != nil {
		return nil, err
	}
	out := items[:0]
	for _, rec := range items {
		if rec.Type.Recurrent() {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Void marca el registro como voided (no se borra). El dueño anula cualquiera;
// el staff solo los de su organización.
func (s *Service) Void(ctx context.Context, petID, recordID, userID string) (Record, error) {
	a, rec, err := s.editable(ctx, petID, recordID, userID)
	if err != nil {
		return Record{}, err
	}
	if rec.Status == StatusVoided {
		return rec, nil
	}
	if err := s.repo.Void(ctx, rec.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	rec.Status = StatusVoided
	s.publish(changefeed.Update, a.pet, rec)
	return rec, nil
}

type AttachmentInput struct {
	Filename string
	Body     io.Reader
}

func (s *Service) AddAttachment(ctx context.Context, petID, recordID, userID string, in AttachmentInput) (Record, error) {
	if s.media == nil {
		return Record{}, fmt.Errorf("%w: media storage not configured", ErrBadState)
	}
	a, rec, err := s.editable(ctx, petID, recordID, userID)
	if err != nil {
		return Record{}, err
	}
	if rec.Status == StatusVoided {
		return Record{}, fmt.Errorf("%w: record is voided", ErrBadState)
	}
	if len(rec.Attachments) >= maxAttachments {
		return Record{}, fmt.Errorf("%w: at most %d attachments", ErrBadState, maxAttachments)
	}

	obj, err := s.media.Upload(ctx, path.Join("records", rec.PetID, rec.ID), in.Body)
	if err != nil {
		return Record{}, err
	}
	name := strings.TrimSpace(path.Base(strings.ReplaceAll(in.Filename, "\\", "/")))
	if name == "" || name == "." || name == "/" {
		name = path.Base(obj.Key)
	}

	atts := append(slices.Clone(rec.Attachments), Attachment{
		Key:         obj.Key,
		Name:        name,
		ContentType: obj.ContentType,
		Size:        obj.Size,
	})
	if err := s.repo.SetAttachments(ctx, rec.ID, atts); err != nil {
		return Record{}, err
	}
	rec.Attachments = atts
	s.publish(changefeed.Update, a.pet, rec)
	return rec, nil
}

func (s *Service) editable(ctx context.Context, petID, recordID, userID string) (access, Record, error) {
	a, err := s.resolve(ctx, petID, userID)
	if err != nil {
		return access{}, Record{}, err
	}
	if !a.any() {
		return access{}, Record{}, ErrForbidden
	}
	rec, err := s.getForPet(ctx, a.pet.ID, recordID)
	if err != nil {
		return access{}, Record{}, err
	}
	if !a.scope().CanSee(rec) {
		return access{}, Record{}, ErrNotFound
	}
	if !a.owner && !a.inOrg(rec.OrganizationID) {
		return access{}, Record{}, ErrForbidden
	}
	return a, rec, nil
}

func (s *Service) getForPet(ctx context.Context, petID, recordID string) (Record, error) {
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return Record{}, ErrInvalidInput
	}
	rec, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	if rec.PetID != petID {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *Service) publish(t changefeed.ChangeType, p pets.Pet, rec Record) {
	s.feed.Publish(changefeed.Change{
		Table: "medical_records",
		Type:  t,
		Record: map[string]any{
			"id":          rec.ID,
			"pet_id":      rec.PetID,
			"type":        rec.Type,
			"status":      rec.Status,
			"visibility":  rec.Visibility,
			"occurred_at": rec.OccurredAt,
		},
		OrganizationID: rec.OrganizationID,
		MinRole:        string(organizations.RoleStaff),
		UserIDs:        []string{p.OwnerUserID},
		At:             s.now(),
	})
}
