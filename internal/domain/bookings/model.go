package bookings

import "time"

// ServiceType es el tipo de turno.
// @Enum consultation, vaccination, grooming, boarding, training, surgery
type ServiceType string

const (
	ServiceConsultation ServiceType = "consultation"
	ServiceVaccination  ServiceType = "vaccination"
	ServiceGrooming     ServiceType = "grooming"
	ServiceBoarding     ServiceType = "boarding"
	ServiceTraining     ServiceType = "training"
	ServiceSurgery      ServiceType = "surgery"
)

func (s ServiceType) Valid() bool {
	switch s {
	case ServiceConsultation, ServiceVaccination, ServiceGrooming, ServiceBoarding, ServiceTraining, ServiceSurgery:
		return true
	}
	return false
}

// @Enum pending, confirmed, cancelled, completed, no_show
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// Terminal: cancelled, completed y no_show no admiten más cambios.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

// Booking es un turno de una mascota con una organización (clínica, peluquería...).
type Booking struct {
	ID             string
	PetID          string
	OrganizationID string
	UserID         string

	Service  ServiceType
	StartsAt time.Time
	EndsAt   time.Time
	Status   Status
	Notes    string

	RemindedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
