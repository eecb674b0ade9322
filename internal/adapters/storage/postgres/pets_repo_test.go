package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-hub/internal/domain/pets"
)

var petCols = []string{
	"id", "owner_user_id", "organization_id",
	"name", "species", "breed", "sex",
	"birth_date", "microchip", "notes", "photo_key",
	"visibility", "adoption_status",
	"created_at", "updated_at",
}

func TestPets_ListAdoptableOnlyPublicAvailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	born := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(petCols).
		AddRow("pet-1", "", "shelter-1", "Toby", "dog", "mestizo", "male", born, "", "", "", "public", "available", now, now).
		AddRow("pet-2", "", "shelter-1", "Mora", "cat", "", "female", nil, "", "", "", "public", "available", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE adoption_status = $1 AND visibility = $2 ORDER BY updated_at DESC")).
		WithArgs(pets.AdoptionAvailable, pets.VisibilityPublic).
		WillReturnRows(rows)

	got, err := NewPetsRepo(db).ListAdoptable(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].BirthDate)
	assert.True(t, born.Equal(*got[0].BirthDate))
	assert.Nil(t, got[1].BirthDate)
	assert.Equal(t, pets.AdoptionAvailable, got[1].AdoptionStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPets_ListByOwnerBlankSkipsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	got, err := NewPetsRepo(db).ListByOwner(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPets_Applications(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPetsRepo(db)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	// una solicitud abierta por persona y mascota
	mock.ExpectExec("INSERT INTO adoption_applications").WillReturnError(uniqueViolation())
	err = repo.CreateApplication(ctx, pets.AdoptionApplication{ID: "app-1", PetID: "pet-1", ApplicantUserID: "ana"})
	assert.ErrorIs(t, err, pets.ErrConflict)

	mock.ExpectExec("UPDATE adoption_applications").
		WithArgs("app-9", "approved", "rescuer", now).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.UpdateApplication(ctx, pets.AdoptionApplication{ID: "app-9", Status: "approved", DecidedBy: "rescuer", UpdatedAt: now})
	assert.ErrorIs(t, err, pets.ErrNotFound)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE applicant_user_id = $1 ORDER BY created_at DESC")).
		WithArgs("ana").
		WillReturnRows(sqlmock.NewRows([]string{"id", "pet_id", "applicant_user_id", "message", "status", "decided_by", "created_at", "updated_at"}).
			AddRow("app-1", "pet-1", "ana", "Tengo patio", "pending", "", now, now))
	apps, err := repo.ListApplicationsByApplicant(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "Tengo patio", apps[0].Message)

	assert.NoError(t, mock.ExpectationsWereMet())
}
