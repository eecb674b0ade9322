package pets

import "context"

// Repository devuelve ErrNotFound si la fila no existe.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
	ListByOrganization(ctx context.Context, orgID string) ([]Pet, error)
	// ListAdoptable: available y public. El resto de filtros se aplica en memoria.
	ListAdoptable(ctx context.Context) ([]Pet, error)

	CreateApplication(ctx context.Context, a AdoptionApplication) error
	UpdateApplication(ctx context.Context, a AdoptionApplication) error
	GetApplication(ctx context.Context, id string) (AdoptionApplication, error)
	ListApplicationsByPet(ctx context.Context, petID string) ([]AdoptionApplication, error)
	ListApplicationsByApplicant(ctx context.Context, userID string) ([]AdoptionApplication, error)
}
