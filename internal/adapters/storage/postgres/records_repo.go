package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"petcare-hub/internal/domain/medicalrecords"
)

type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

const recordColumns = `
	id, pet_id, organization_id,
	type, occurred_at, recorded_at,
	title, notes, next_due_at, attachments,
	actor_type, actor_id,
	visibility, status`

func (r *RecordsRepo) Create(ctx context.Context, rec medicalrecords.Record) error {
	atts, err := marshalAttachments(rec.Attachments)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO medical_records (`+recordColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		rec.ID,
		rec.PetID,
		rec.OrganizationID,
		string(rec.Type),
		rec.OccurredAt,
		rec.RecordedAt,
		rec.Title,
		rec.Notes,
		toNullTime(rec.NextDueAt),
		atts,
		string(rec.Actor.Type),
		rec.Actor.ID,
		string(rec.Visibility),
		string(rec.Status),
	)
	return err
}

func (r *RecordsRepo) GetByID(ctx context.Context, id string) (medicalrecords.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medicalrecords.Record{}, medicalrecords.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM medical_records WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return medicalrecords.Record{}, medicalrecords.ErrNotFound
	}
	return rec, err
}

// scopeClause arma el filtro de visibilidad: shared siempre, private según scope.
func scopeClause(scope medicalrecords.Scope, args []any) (string, []any) {
	if scope.AllPrivate {
		return "", args
	}
	args = append(args, string(medicalrecords.VisibilityShared))
	clause := fmt.Sprintf(" AND (visibility = $%d", len(args))
	if len(scope.PrivateOrgs) > 0 {
		placeholders := make([]string, 0, len(scope.PrivateOrgs))
		for _, id := range scope.PrivateOrgs {
			args = append(args, id)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		clause += " OR organization_id IN (" + strings.Join(placeholders, ",") + ")"
	}
	return clause + ")", args
}

func (r *RecordsRepo) ListByPet(ctx context.Context, petID string, filter medicalrecords.ListFilter) ([]medicalrecords.Record, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + recordColumns + ` FROM medical_records WHERE pet_id = $1`)
	args := []any{petID}

	clause, args := scopeClause(filter.Scope, args)
	sb.WriteString(clause)

	// types filter
	if len(filter.Types) > 0 {
		placeholders := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			args = append(args, string(t))
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		sb.WriteString(" AND type IN (" + strings.Join(placeholders, ",") + ")")
	}

	if filter.From != nil {
		args = append(args, *filter.From)
		sb.WriteString(fmt.Sprintf(" AND occurred_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		sb.WriteString(fmt.Sprintf(" AND occurred_at <= $%d", len(args)))
	}

	// q: búsqueda simple en title + notes
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+q+"%")
		sb.WriteString(fmt.Sprintf(" AND (title ILIKE $%d OR notes ILIKE $%d)", len(args), len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = medicalrecords.DefaultLimit
	}
	if limit > medicalrecords.MaxLimit {
		limit = medicalrecords.MaxLimit
	}
	args = append(args, limit)
	sb.WriteString(fmt.Sprintf(" ORDER BY occurred_at DESC LIMIT $%d", len(args)))

	return r.query(ctx, sb.String(), args...)
}

func (r *RecordsRepo) ListDue(ctx context.Context, petID string, until time.Time, scope medicalrecords.Scope) ([]medicalrecords.Record, error) {
	args := []any{petID, string(medicalrecords.StatusVoided), until}
	clause, args := scopeClause(scope, args)
	return r.query(ctx, `
		SELECT `+recordColumns+` FROM medical_records
		WHERE pet_id = $1 AND status <> $2 AND next_due_at IS NOT NULL AND next_due_at <= $3`+clause+`
		ORDER BY next_due_at ASC
	`, args...)
}

func (r *RecordsRepo) SetAttachments(ctx context.Context, id string, attachments []medicalrecords.Attachment) error {
	atts, err := marshalAttachments(attachments)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE medical_records SET attachments = $2 WHERE id = $1`, id, atts)
	if err != nil {
		return err
	}
	return rowsAffectedOr(res, medicalrecords.ErrNotFound)
}

func (r *RecordsRepo) Void(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return medicalrecords.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE medical_records
		SET status = 'voided'
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	return rowsAffectedOr(res, medicalrecords.ErrNotFound)
}

func (r *RecordsRepo) query(ctx context.Context, q string, args ...any) ([]medicalrecords.Record, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medicalrecords.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanRecord(s rowScanner) (medicalrecords.Record, error) {
	var rec medicalrecords.Record
	var typ, actorType, vis, status string
	var nextDue sql.NullTime
	var atts []byte

	if err := s.Scan(
		&rec.ID,
		&rec.PetID,
		&rec.OrganizationID,
		&typ,
		&rec.OccurredAt,
		&rec.RecordedAt,
		&rec.Title,
		&rec.Notes,
		&nextDue,
		&atts,
		&actorType,
		&rec.Actor.ID,
		&vis,
		&status,
	); err != nil {
		return medicalrecords.Record{}, err
	}

	rec.Type = medicalrecords.RecordType(typ)
	rec.Actor.Type = medicalrecords.ActorType(actorType)
	rec.Visibility = medicalrecords.Visibility(vis)
	rec.Status = medicalrecords.Status(status)
	rec.NextDueAt = fromNullTime(nextDue)

	if len(atts) > 0 {
		if err := json.Unmarshal(atts, &rec.Attachments); err != nil {
			return medicalrecords.Record{}, fmt.Errorf("decode attachments: %w", err)
		}
	}
	return rec, nil
}

// attachments es JSONB; se manda como texto JSON.
func marshalAttachments(atts []medicalrecords.Attachment) (string, error) {
	if atts == nil {
		atts = []medicalrecords.Attachment{}
	}
	b, err := json.Marshal(atts)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
