package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"petcare-hub/internal/domain/pets"
)

type petRepo struct {
	mu           sync.RWMutex
	byID         map[string]pets.Pet
	applications map[string]pets.AdoptionApplication
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID:         make(map[string]pets.Pet),
		applications: make(map[string]pets.AdoptionApplication),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return pets.ErrConflict
	}
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; !exists {
		return pets.ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	return r.filter(func(p pets.Pet) bool { return p.OwnerUserID == ownerUserID }), nil
}

func (r *petRepo) ListByOrganization(ctx context.Context, orgID string) ([]pets.Pet, error) {
	return r.filter(func(p pets.Pet) bool { return orgID != "" && p.OrganizationID == orgID }), nil
}

func (r *petRepo) ListAdoptable(ctx context.Context) ([]pets.Pet, error) {
	return r.filter(func(p pets.Pet) bool {
		return p.AdoptionStatus == pets.AdoptionAvailable && p.Visibility == pets.VisibilityPublic
	}), nil
}

func (r *petRepo) filter(keep func(pets.Pet) bool) []pets.Pet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if keep(p) {
			out = append(out, p)
		}
	}

	// Orden estable por created_at asc (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *petRepo) CreateApplication(ctx context.Context, a pets.AdoptionApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("application id required")
	}
	if _, ok := r.byID[a.PetID]; !ok {
		return pets.ErrNotFound
	}
	if _, exists := r.applications[a.ID]; exists {
		return pets.ErrConflict
	}
	r.applications[a.ID] = a
	return nil
}

func (r *petRepo) UpdateApplication(ctx context.Context, a pets.AdoptionApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.applications[a.ID]; !exists {
		return pets.ErrNotFound
	}
	r.applications[a.ID] = a
	return nil
}

func (r *petRepo) GetApplication(ctx context.Context, id string) (pets.AdoptionApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.applications[id]
	if !ok {
		return pets.AdoptionApplication{}, pets.ErrNotFound
	}
	return a, nil
}

func (r *petRepo) ListApplicationsByPet(ctx context.Context, petID string) ([]pets.AdoptionApplication, error) {
	return r.filterApplications(func(a pets.AdoptionApplication) bool { return a.PetID == petID }), nil
}

func (r *petRepo) ListApplicationsByApplicant(ctx context.Context, userID string) ([]pets.AdoptionApplication, error) {
	return r.filterApplications(func(a pets.AdoptionApplication) bool { return a.ApplicantUserID == userID }), nil
}

func (r *petRepo) filterApplications(keep func(pets.AdoptionApplication) bool) []pets.AdoptionApplication {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.AdoptionApplication, 0)
	for _, a := range r.applications {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
