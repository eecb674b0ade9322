package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"petcare-hub/internal/domain/bookings"
)

type bookingsRepo struct {
	mu   sync.RWMutex
	byID map[string]bookings.Booking
}

func NewBookingsRepo() bookings.Repository {
	return &bookingsRepo{byID: make(map[string]bookings.Booking)}
}

func (r *bookingsRepo) Create(ctx context.Context, b bookings.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(b.ID) == "" {
		return errors.New("booking id required")
	}
	if _, exists := r.byID[b.ID]; exists {
		return bookings.ErrConflict
	}
	r.byID[b.ID] = b
	return nil
}

func (r *bookingsRepo) Update(ctx context.Context, b bookings.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[b.ID]; !exists {
		return bookings.ErrNotFound
	}
	r.byID[b.ID] = b
	return nil
}

func (r *bookingsRepo) GetByID(ctx context.Context, id string) (bookings.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return bookings.Booking{}, bookings.ErrNotFound
	}
	return b, nil
}

func (r *bookingsRepo) ListByUser(ctx context.Context, userID string) ([]bookings.Booking, error) {
	return r.filter(func(b bookings.Booking) bool { return b.UserID == userID }), nil
}

func (r *bookingsRepo) ListByOrganization(ctx context.Context, orgID string, f bookings.Filter) ([]bookings.Booking, error) {
	return r.filter(func(b bookings.Booking) bool {
		if b.OrganizationID != orgID {
			return false
		}
		if f.Status != "" && b.Status != f.Status {
			return false
		}
		if f.From != nil && b.StartsAt.Before(*f.From) {
			return false
		}
		if f.To != nil && !b.StartsAt.Before(*f.To) {
			return false
		}
		return true
	}), nil
}

func (r *bookingsRepo) ListByPet(ctx context.Context, petID string) ([]bookings.Booking, error) {
	return r.filter(func(b bookings.Booking) bool { return b.PetID == petID }), nil
}

func (r *bookingsRepo) ListUnreminded(ctx context.Context, from, to time.Time) ([]bookings.Booking, error) {
	return r.filter(func(b bookings.Booking) bool {
		return b.Status == bookings.StatusConfirmed &&
			b.RemindedAt == nil &&
			!b.StartsAt.Before(from) &&
			b.StartsAt.Before(to)
	}), nil
}

func (r *bookingsRepo) MarkReminded(ctx context.Context, id string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return false, bookings.ErrNotFound
	}
	if b.Status != bookings.StatusConfirmed || b.RemindedAt != nil {
		return false, nil
	}
	b.RemindedAt = &at
	b.UpdatedAt = at
	r.byID[id] = b
	return true, nil
}

func (r *bookingsRepo) filter(keep func(bookings.Booking) bool) []bookings.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]bookings.Booking, 0)
	for _, b := range r.byID {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartsAt.Before(out[j].StartsAt)
	})
	return out
}
