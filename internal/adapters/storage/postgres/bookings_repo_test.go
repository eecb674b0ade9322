package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-hub/internal/domain/bookings"
)

var bookingCols = []string{
	"id", "pet_id", "organization_id", "user_id",
	"service", "starts_at", "ends_at", "status", "notes",
	"reminded_at", "created_at", "updated_at",
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

func TestBookings_MarkReminded_OnlyConfirmedAndUnreminded(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	q := regexp.QuoteMeta("WHERE id = $1 AND status = $3 AND reminded_at IS NULL")
	mock.ExpectExec(q).WithArgs("b1", at, bookings.StatusConfirmed).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs("b2", at, bookings.StatusConfirmed).WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewBookingsRepo(db)
	ok, err := repo.MarkReminded(context.Background(), "b1", at)
	require.NoError(t, err)
	assert.True(t, ok)

	// cancelado entre el listado y la marca
	ok, err = repo.MarkReminded(context.Background(), "b2", at)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookings_UpdateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	b := bookings.Booking{ID: "missing", Status: bookings.StatusCancelled, UpdatedAt: time.Now()}
	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewBookingsRepo(db).Update(context.Background(), b)
	assert.ErrorIs(t, err, bookings.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookings_ListByOrganizationBuildsFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	starts := from.Add(10 * time.Hour)
	rows := sqlmock.NewRows(bookingCols).AddRow(
		"b1", "pet-1", "org-1", "ana",
		"consultation", starts, starts.Add(30*time.Minute), "confirmed", "",
		nil, from, from,
	)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE organization_id = $1 AND status = $2 AND starts_at >= $3 AND starts_at < $4")).
		WithArgs("org-1", bookings.StatusConfirmed, from, to).
		WillReturnRows(rows)

	got, err := NewBookingsRepo(db).ListByOrganization(context.Background(), "org-1", bookings.Filter{
		Status: bookings.StatusConfirmed,
		From:   &from,
		To:     &to,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, bookings.ServiceConsultation, got[0].Service)
	assert.Nil(t, got[0].RemindedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookings_CreateConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO bookings").WillReturnError(uniqueViolation())

	err = NewBookingsRepo(db).Create(context.Background(), bookings.Booking{ID: "b1"})
	assert.ErrorIs(t, err, bookings.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
