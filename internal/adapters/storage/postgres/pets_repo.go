package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"petcare-hub/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, owner_user_id, organization_id,
	name, species, breed, sex,
	birth_date, microchip, notes, photo_key,
	visibility, adoption_status,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		p.ID,
		p.OwnerUserID,
		p.OrganizationID,
		p.Name,
		p.Species,
		p.Breed,
		p.Sex,
		toNullTime(p.BirthDate),
		p.Microchip,
		p.Notes,
		p.PhotoKey,
		p.Visibility,
		p.AdoptionStatus,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return pets.ErrConflict
	}
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			owner_user_id = $2,
			organization_id = $3,
			name = $4,
			species = $5,
			breed = $6,
			sex = $7,
			birth_date = $8,
			microchip = $9,
			notes = $10,
			photo_key = $11,
			visibility = $12,
			adoption_status = $13,
			updated_at = $14
		WHERE id = $1
	`,
		p.ID,
		p.OwnerUserID,
		p.OrganizationID,
		p.Name,
		p.Species,
		p.Breed,
		p.Sex,
		toNullTime(p.BirthDate),
		p.Microchip,
		p.Notes,
		p.PhotoKey,
		p.Visibility,
		p.AdoptionStatus,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return rowsAffectedOr(res, pets.ErrNotFound)
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	p, err := scanPet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}
	return r.list(ctx, `WHERE owner_user_id = $1 ORDER BY created_at ASC`, ownerUserID)
}

func (r *PetsRepo) ListByOrganization(ctx context.Context, orgID string) ([]pets.Pet, error) {
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return nil, nil
	}
	return r.list(ctx, `WHERE organization_id = $1 ORDER BY created_at ASC`, orgID)
}

func (r *PetsRepo) ListAdoptable(ctx context.Context) ([]pets.Pet, error) {
	return r.list(ctx, `WHERE adoption_status = $1 AND visibility = $2 ORDER BY updated_at DESC`,
		pets.AdoptionAvailable, pets.VisibilityPublic)
}

func (r *PetsRepo) list(ctx context.Context, where string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+petColumns+` FROM pets `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(s rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var bd sql.NullTime
	if err := s.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.OrganizationID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Sex,
		&bd,
		&p.Microchip,
		&p.Notes,
		&p.PhotoKey,
		&p.Visibility,
		&p.AdoptionStatus,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	// ojo: birth_date es date, pgx lo mapea a time.Time midnight UTC
	p.BirthDate = fromNullTime(bd)
	return p, nil
}

const applicationColumns = `id, pet_id, applicant_user_id, message, status, decided_by, created_at, updated_at`

func (r *PetsRepo) CreateApplication(ctx context.Context, a pets.AdoptionApplication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adoption_applications (`+applicationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, a.ID, a.PetID, a.ApplicantUserID, a.Message, a.Status, a.DecidedBy, a.CreatedAt, a.UpdatedAt)
	if isUniqueViolation(err) {
		return pets.ErrConflict
	}
	return err
}

func (r *PetsRepo) UpdateApplication(ctx context.Context, a pets.AdoptionApplication) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE adoption_applications
		SET status = $2, decided_by = $3, updated_at = $4
		WHERE id = $1
	`, a.ID, a.Status, a.DecidedBy, a.UpdatedAt)
	if err != nil {
		return err
	}
	return rowsAffectedOr(res, pets.ErrNotFound)
}

func (r *PetsRepo) GetApplication(ctx context.Context, id string) (pets.AdoptionApplication, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM adoption_applications WHERE id = $1`, id)
	a, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.AdoptionApplication{}, pets.ErrNotFound
	}
	return a, err
}

func (r *PetsRepo) ListApplicationsByPet(ctx context.Context, petID string) ([]pets.AdoptionApplication, error) {
	return r.listApplications(ctx, `WHERE pet_id = $1 ORDER BY created_at ASC`, petID)
}

func (r *PetsRepo) ListApplicationsByApplicant(ctx context.Context, userID string) ([]pets.AdoptionApplication, error) {
	return r.listApplications(ctx, `WHERE applicant_user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *PetsRepo) listApplications(ctx context.Context, where string, args ...any) ([]pets.AdoptionApplication, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM adoption_applications `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.AdoptionApplication, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanApplication(s rowScanner) (pets.AdoptionApplication, error) {
	var a pets.AdoptionApplication
	err := s.Scan(&a.ID, &a.PetID, &a.ApplicantUserID, &a.Message, &a.Status, &a.DecidedBy, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}
