package medicalrecords

import "time"

type Actor struct {
	Type ActorType
	ID   string
}

// Attachment es un archivo en el blob store; Key nunca se expone, se firma.
type Attachment struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Record es una entrada de la historia clínica. No se borra: se anula.
// OrganizationID es la org autora ("" si la cargó el dueño).
type Record struct {
	ID             string
	PetID          string
	OrganizationID string

	Type RecordType

	OccurredAt time.Time
	RecordedAt time.Time

	Title string
	Notes string

	NextDueAt   *time.Time
	Attachments []Attachment

	Actor      Actor
	Visibility Visibility
	Status     Status
}
