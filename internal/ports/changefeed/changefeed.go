package changefeed

import "time"

type ChangeType string

const (
	Insert ChangeType = "INSERT"
	Update ChangeType = "UPDATE"
	Delete ChangeType = "DELETE"
)

// Change es una fila modificada. La audiencia replica las políticas RLS:
// sin OrganizationID ni UserIDs es pública para quien escuche la tabla.
type Change struct {
	Table          string     `json:"table"`
	Type           ChangeType `json:"type"`
	Record         any        `json:"record"`
	OrganizationID string     `json:"-"`
	// MinRole: rol mínimo en OrganizationID para verlo ("" = cualquier miembro).
	MinRole string    `json:"-"`
	UserIDs []string  `json:"-"`
	At      time.Time `json:"commit_timestamp"`
}

func (c Change) IsPublic() bool {
	return c.OrganizationID == "" && len(c.UserIDs) == 0
}

type Publisher interface {
	Publish(c Change)
}

// Nop descarta los cambios (servicios sin realtime, tests).
type Nop struct{}

func (Nop) Publish(Change) {}
