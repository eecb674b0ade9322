package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"petcare-hub/internal/domain/bookings"
)

type BookingsRepo struct {
	db *sql.DB
}

func NewBookingsRepo(db *sql.DB) *BookingsRepo {
	return &BookingsRepo{db: db}
}

const bookingColumns = `
	id, pet_id, organization_id, user_id,
	service, starts_at, ends_at, status, notes,
	reminded_at, created_at, updated_at`

func (r *BookingsRepo) Create(ctx context.Context, b bookings.Booking) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		b.ID, b.PetID, b.OrganizationID, b.UserID,
		b.Service, b.StartsAt, b.EndsAt, b.Status, b.Notes,
		toNullTime(b.RemindedAt), b.CreatedAt, b.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return bookings.ErrConflict
	}
	return err
}

func (r *BookingsRepo) Update(ctx context.Context, b bookings.Booking) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bookings
		SET status = $2, notes = $3, starts_at = $4, ends_at = $5, reminded_at = $6, updated_at = $7
		WHERE id = $1
	`, b.ID, b.Status, b.Notes, b.StartsAt, b.EndsAt, toNullTime(b.RemindedAt), b.UpdatedAt)
	if err != nil {
		return err
	}
	return rowsAffectedOr(res, bookings.ErrNotFound)
}

func (r *BookingsRepo) GetByID(ctx context.Context, id string) (bookings.Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return bookings.Booking{}, bookings.ErrNotFound
	}
	return b, err
}

func (r *BookingsRepo) ListByUser(ctx context.Context, userID string) ([]bookings.Booking, error) {
	return r.list(ctx, `WHERE user_id = $1 ORDER BY starts_at ASC`, userID)
}

func (r *BookingsRepo) ListByOrganization(ctx context.Context, orgID string, f bookings.Filter) ([]bookings.Booking, error) {
	where := []string{"organization_id = $1"}
	args := []any{orgID}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		where = append(where, fmt.Sprintf("starts_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where = append(where, fmt.Sprintf("starts_at < $%d", len(args)))
	}
	return r.list(ctx, "WHERE "+strings.Join(where, " AND ")+" ORDER BY starts_at ASC", args...)
}

func (r *BookingsRepo) ListByPet(ctx context.Context, petID string) ([]bookings.Booking, error) {
	return r.list(ctx, `WHERE pet_id = $1 ORDER BY starts_at ASC`, petID)
}

func (r *BookingsRepo) ListUnreminded(ctx context.Context, from, to time.Time) ([]bookings.Booking, error) {
	return r.list(ctx, `
		WHERE status = $1 AND reminded_at IS NULL AND starts_at >= $2 AND starts_at < $3
		ORDER BY starts_at ASC
	`, bookings.StatusConfirmed, from, to)
}

// MarkReminded no pisa el estado: una cancelación concurrente gana.
func (r *BookingsRepo) MarkReminded(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bookings
		SET reminded_at = $2, updated_at = $2
		WHERE id = $1 AND status = $3 AND reminded_at IS NULL
	`, id, at, bookings.StatusConfirmed)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *BookingsRepo) list(ctx context.Context, where string, args ...any) ([]bookings.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]bookings.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanBooking(s rowScanner) (bookings.Booking, error) {
	var b bookings.Booking
	var reminded sql.NullTime
	if err := s.Scan(
		&b.ID, &b.PetID, &b.OrganizationID, &b.UserID,
		&b.Service, &b.StartsAt, &b.EndsAt, &b.Status, &b.Notes,
		&reminded, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return bookings.Booking{}, err
	}
	b.RemindedAt = fromNullTime(reminded)
	return b, nil
}
