package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

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
	ErrConflict     = errors.New("conflict")
)

const (
	defaultDuration = 30 * time.Minute
	maxDuration     = 14 * 24 * time.Hour
	maxNotesLen     = 2000
)

// Pets resuelve la mascota del turno (lo implementa pets.Service).
type Pets interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
}

// Organizations lo implementa organizations.Service.
type Organizations interface {
	Get(ctx context.Context, orgID string) (organizations.Organization, error)
	MemberRole(ctx context.Context, orgID, userID string) (organizations.Role, error)
}

// Notifier avisa al dueño del turno. Un error se loguea, no corta la operación.
type Notifier interface {
	BookingStatusChanged(ctx context.Context, b Booking) error
	BookingReminder(ctx context.Context, b Booking) error
}

type Service struct {
	repo     Repository
	pets     Pets
	orgs     Organizations
	notifier Notifier
	feed     changefeed.Publisher
	log      logger.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
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

func NewService(repo Repository, petsSvc Pets, orgs Organizations, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		pets: petsSvc,
		orgs: orgs,
		feed: changefeed.Nop{},
		log:  logger.Nop(),
		now:  time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

type CreateInput struct {
	PetID          string
	OrganizationID string
	Service        ServiceType
	StartsAt       time.Time
	// EndsAt cero = StartsAt + 30m
	EndsAt time.Time
	Notes  string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Booking, error) {
	userID = strings.TrimSpace(userID)
	petID := strings.TrimSpace(in.PetID)
	orgID := strings.TrimSpace(in.OrganizationID)
	if userID == "" || petID == "" || orgID == "" {
		return Booking{}, fmt.Errorf("%w: pet_id and organization_id are required", ErrInvalidInput)
	}
	svcType := ServiceType(strings.ToLower(strings.TrimSpace(string(in.Service))))
	if !svcType.Valid() {
		return Booking{}, fmt.Errorf("%w: unknown service %q", ErrInvalidInput, in.Service)
	}
	if len(in.Notes) > maxNotesLen {
		return Booking{}, fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	now := s.now()
	if in.StartsAt.IsZero() || !in.StartsAt.After(now) {
		return Booking{}, fmt.Errorf("%w: starts_at must be in the future", ErrInvalidInput)
	}
	end := in.EndsAt
	if end.IsZero() {
		end = in.StartsAt.Add(defaultDuration)
	}
	if !end.After(in.StartsAt) {
		return Booking{}, fmt.Errorf("%w: ends_at must be after starts_at", ErrInvalidInput)
	}
	if end.Sub(in.StartsAt) > maxDuration {
		return Booking{}, fmt.Errorf("%w: booking too long", ErrInvalidInput)
	}

	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return Booking{}, fmt.Errorf("%w: pet", ErrNotFound)
		}
		return Booking{}, err
	}
	if p.OwnerUserID != userID {
		return Booking{}, ErrForbidden
	}
	if _, err := s.orgs.Get(ctx, orgID); err != nil {
		if errors.Is(err, organizations.ErrNotFound) {
			return Booking{}, fmt.Errorf("%w: organization", ErrNotFound)
		}
		return Booking{}, err
	}

	b := Booking{
		ID:             uuid.NewString(),
		PetID:          p.ID,
		OrganizationID: orgID,
		UserID:         userID,
		Service:        svcType,
		StartsAt:       in.StartsAt.UTC(),
		EndsAt:         end.UTC(),
		Status:         StatusPending,
		Notes:          strings.TrimSpace(in.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return Booking{}, err
	}
	s.publish(changefeed.Insert, b)
	return b, nil
}

// Get: el que reservó o cualquier miembro de la organización.
func (s *Service) Get(ctx context.Context, bookingID, userID string) (Booking, error) {
	b, err := s.getByID(ctx, bookingID)
	if err != nil {
		return Booking{}, err
	}
	if b.UserID == userID {
		return b, nil
	}
	role, err := s.orgs.MemberRole(ctx, b.OrganizationID, userID)
	if err != nil {
		return Booking{}, err
	}
	if role == organizations.RoleNone {
		return Booking{}, ErrForbidden
	}
	return b, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]Booking, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sortByStart(items)
	return items, nil
}

func (s *Service) ListByOrganization(ctx context.Context, orgID, userID string, f Filter) ([]Booking, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, f.Status)
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, fmt.Errorf("%w: to must be after from", ErrInvalidInput)
	}
	role, err := s.orgs.MemberRole(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	if role == organizations.RoleNone {
		return nil, ErrForbidden
	}
	items, err := s.repo.ListByOrganization(ctx, strings.TrimSpace(orgID), f)
	if err != nil {
		return nil, err
	}
	sortByStart(items)
	return items, nil
}

// UpdateStatus aplica la tabla de transiciones:
//
//	pending   -> confirmed            (staff)
//	pending   -> cancelled            (quien reservó o staff)
//	confirmed -> cancelled            (quien reservó o staff)
//	confirmed -> completed | no_show  (staff)
func (s *Service) UpdateStatus(ctx context.Context, bookingID, userID string, to Status) (Booking, error) {
	if !to.Valid() {
		return Booking{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, to)
	}
	b, err := s.getByID(ctx, bookingID)
	if err != nil {
		return Booking{}, err
	}

	role, err := s.orgs.MemberRole(ctx, b.OrganizationID, userID)
	if err != nil {
		return Booking{}, err
	}
	isBooker := b.UserID == userID
	isStaff := role.IsStaff()
	if !isBooker && !isStaff {
		return Booking{}, ErrForbidden
	}

	if b.Status == to {
		return b, nil
	}
	if b.Status.Terminal() {
		return Booking{}, fmt.Errorf("%w: booking is %s", ErrBadState, b.Status)
	}

	switch to {
	case StatusConfirmed:
		if b.Status != StatusPending {
			return Booking{}, fmt.Errorf("%w: only pending bookings can be confirmed", ErrBadState)
		}
		if !isStaff {
			return Booking{}, ErrForbidden
		}
	case StatusCancelled:
		// pending o confirmed: ambos pueden cancelar
	case StatusCompleted, StatusNoShow:
		if b.Status != StatusConfirmed {
			return Booking{}, fmt.Errorf("%w: only confirmed bookings can be closed", ErrBadState)
		}
		if !isStaff {
			return Booking{}, ErrForbidden
		}
	default:
		return Booking{}, fmt.Errorf("%w: cannot move to %s", ErrBadState, to)
	}

	b.Status = to
	b.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, b); err != nil {
		return Booking{}, err
	}
	s.publish(changefeed.Update, b)

	if to == StatusConfirmed || to == StatusCancelled {
		s.notifyStatus(ctx, b)
	}
	return b, nil
}

// ClinicOrganizations devuelve las orgs con turno activo para la mascota en
// las que el usuario es staff.
func (s *Service) ClinicOrganizations(ctx context.Context, petID, userID string) ([]string, error) {
	items, err := s.repo.ListByPet(ctx, strings.TrimSpace(petID))
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, b := range items {
		if b.Status == StatusCancelled || seen[b.OrganizationID] {
			continue
		}
		seen[b.OrganizationID] = true
		role, err := s.orgs.MemberRole(ctx, b.OrganizationID, userID)
		if err != nil {
			return nil, err
		}
		if role.IsStaff() {
			out = append(out, b.OrganizationID)
		}
	}
	sort.Strings(out)
	return out, nil
}

// SendReminders avisa los turnos confirmados que empiezan dentro de window.
// Si el aviso falla el turno queda sin marcar y se reintenta en la próxima corrida.
func (s *Service) SendReminders(ctx context.Context, window time.Duration) (int, error) {
	if window <= 0 {
		return 0, fmt.Errorf("%w: window must be positive", ErrInvalidInput)
	}
	now := s.now()
	items, err := s.repo.ListUnreminded(ctx, now, now.Add(window))
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, b := range items {
		if s.notifier != nil {
			if err := s.notifier.BookingReminder(ctx, b); err != nil {
				s.log.Warn("booking reminder failed", map[string]any{"booking_id": b.ID, "error": err})
				continue
			}
		}
		marked, err := s.repo.MarkReminded(ctx, b.ID, s.now())
		if err != nil {
			return sent, err
		}
		if !marked {
			s.log.Info("booking changed before reminder mark", map[string]any{"booking_id": b.ID})
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *Service) getByID(ctx context.Context, id string) (Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Booking{}, ErrInvalidInput
	}
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Booking{}, ErrNotFound
		}
		return Booking{}, err
	}
	return b, nil
}

func (s *Service) notifyStatus(ctx context.Context, b Booking) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.BookingStatusChanged(ctx, b); err != nil {
		s.log.Warn("booking notification failed", map[string]any{"booking_id": b.ID, "status": b.Status, "error": err})
	}
}

func (s *Service) publish(t changefeed.ChangeType, b Booking) {
	s.feed.Publish(changefeed.Change{
		Table: "bookings",
		Type:  t,
		Record: map[string]any{
			"id":              b.ID,
			"pet_id":          b.PetID,
			"organization_id": b.OrganizationID,
			"service":         b.Service,
			"starts_at":       b.StartsAt,
			"status":          b.Status,
		},
		OrganizationID: b.OrganizationID,
		UserIDs:        []string{b.UserID},
		At:             b.UpdatedAt,
	})
}

func sortByStart(items []Booking) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartsAt.Before(items[j].StartsAt)
	})
}
