package medicalrecords

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Record, error)
	// ListDue: no anulados con next_due_at <= until, por next_due_at asc.
	ListDue(ctx context.Context, petID string, until time.Time, scope Scope) ([]Record, error)
	SetAttachments(ctx context.Context, id string, attachments []Attachment) error
	Void(ctx context.Context, id string) error
}

// Scope limita qué registros privados puede ver quien consulta: todos (dueño)
// o solo los de sus organizaciones. Los shared se ven siempre.
type Scope struct {
	AllPrivate  bool
	PrivateOrgs []string
}

func (s Scope) CanSee(rec Record) bool {
	if s.AllPrivate || rec.Visibility == VisibilityShared {
		return true
	}
	for _, id := range s.PrivateOrgs {
		if id != "" && id == rec.OrganizationID {
			return true
		}
	}
	return false
}

type ListFilter struct {
	Types []RecordType
	From  *time.Time
	To    *time.Time
	Query string
	Limit int
	Scope Scope
}
