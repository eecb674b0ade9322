package pets

import "time"

// Species define las especies soportadas.
// @Enum dog, cat, bird, rabbit, other
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesBird   Species = "bird"
	SpeciesRabbit Species = "rabbit"
	SpeciesOther  Species = "other"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesBird, SpeciesRabbit, SpeciesOther:
		return true
	}
	return false
}

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale || s == SexUnknown
}

// Visibility controla quién ve el perfil. Compartir es cambiar esta columna.
// @Enum private, organization, public
type Visibility string

const (
	VisibilityPrivate      Visibility = "private"
	VisibilityOrganization Visibility = "organization"
	VisibilityPublic       Visibility = "public"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPrivate || v == VisibilityOrganization || v == VisibilityPublic
}

// @Enum none, available, pending, adopted
type AdoptionStatus string

const (
	AdoptionNone      AdoptionStatus = "none"
	AdoptionAvailable AdoptionStatus = "available"
	AdoptionPending   AdoptionStatus = "pending"
	AdoptionAdopted   AdoptionStatus = "adopted"
)

func (a AdoptionStatus) Valid() bool {
	switch a {
	case AdoptionNone, AdoptionAvailable, AdoptionPending, AdoptionAdopted:
		return true
	}
	return false
}

// Pet representa el perfil de una mascota. OrganizationID vacío = mascota
// particular; con valor, la org (refugio, clínica) también la gestiona.
type Pet struct {
	ID             string
	OwnerUserID    string
	OrganizationID string

	Name    string
	Species Species
	Breed   string
	Sex     Sex

	BirthDate *time.Time
	Microchip string

	Notes    string
	PhotoKey string

	Visibility     Visibility
	AdoptionStatus AdoptionStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgeMonths devuelve -1 si no hay fecha de nacimiento.
func (p Pet) AgeMonths(now time.Time) int {
	if p.BirthDate == nil {
		return -1
	}
	b := *p.BirthDate
	months := (now.Year()-b.Year())*12 + int(now.Month()) - int(b.Month())
	if now.Day() < b.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationApproved  ApplicationStatus = "approved"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
)

type AdoptionApplication struct {
	ID              string
	PetID           string
	ApplicantUserID string
	Message         string
	Status          ApplicationStatus
	DecidedBy       string

	CreatedAt time.Time
	UpdatedAt time.Time
}
