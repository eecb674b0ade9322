package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"petcare-hub/internal/domain/medicalrecords"
)

type recordsRepo struct {
	mu   sync.RWMutex
	byID map[string]medicalrecords.Record
}

func NewRecordsRepo() medicalrecords.Repository {
	return &recordsRepo{
		byID: make(map[string]medicalrecords.Record),
	}
}

func (r *recordsRepo) Create(ctx context.Context, rec medicalrecords.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ID == "" {
		return errors.New("record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("record already exists")
	}

	rec.Attachments = slices.Clone(rec.Attachments)
	r.byID[rec.ID] = rec
	return nil
}

func (r *recordsRepo) GetByID(ctx context.Context, id string) (medicalrecords.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return medicalrecords.Record{}, medicalrecords.ErrNotFound
	}
	rec.Attachments = slices.Clone(rec.Attachments)
	return rec, nil
}

func (r *recordsRepo) ListByPet(ctx context.Context, petID string, filter medicalrecords.ListFilter) ([]medicalrecords.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = medicalrecords.DefaultLimit
	}
	q := strings.ToLower(strings.TrimSpace(filter.Query))

	out := make([]medicalrecords.Record, 0)
	for _, rec := range r.byID {
		if rec.PetID != petID || !filter.Scope.CanSee(rec) {
			continue
		}
		if len(filter.Types) > 0 && !slices.Contains(filter.Types, rec.Type) {
			continue
		}
		if filter.From != nil && rec.OccurredAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && rec.OccurredAt.After(*filter.To) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(rec.Title+" "+rec.Notes), q) {
			continue
		}
		rec.Attachments = slices.Clone(rec.Attachments)
		out = append(out, rec)
	}

	// Orden por occurred_at desc (más reciente primero)
	sort.Slice(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *recordsRepo) ListDue(ctx context.Context, petID string, until time.Time, scope medicalrecords.Scope) ([]medicalrecords.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medicalrecords.Record, 0)
	for _, rec := range r.byID {
		if rec.PetID != petID || rec.Status == medicalrecords.StatusVoided || rec.NextDueAt == nil {
			continue
		}
		if rec.NextDueAt.After(until) || !scope.CanSee(rec) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].NextDueAt.Before(*out[j].NextDueAt)
	})
	return out, nil
}

func (r *recordsRepo) SetAttachments(ctx context.Context, id string, attachments []medicalrecords.Attachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return medicalrecords.ErrNotFound
	}
	rec.Attachments = slices.Clone(attachments)
	r.byID[id] = rec
	return nil
}

func (r *recordsRepo) Void(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return medicalrecords.ErrNotFound
	}
	rec.Status = medicalrecords.StatusVoided
	r.byID[id] = rec
	return nil
}
