package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-hub/internal/domain/medicalrecords"
)

var recordCols = []string{
	"id", "pet_id", "organization_id",
	"type", "occurred_at", "recorded_at",
	"title", "notes", "next_due_at", "attachments",
	"actor_type", "actor_id",
	"visibility", "status",
}

func TestScopeClause(t *testing.T) {
	base := []any{"pet-1"}

	tests := []struct {
		name       string
		scope      medicalrecords.Scope
		wantClause string
		wantArgs   []any
	}{
		{
			name:     "dueño ve todo",
			scope:    medicalrecords.Scope{AllPrivate: true, PrivateOrgs: []string{"clinic-1"}},
			wantArgs: []any{"pet-1"},
		},
		{
			name:       "staff de clínicas con turno",
			scope:      medicalrecords.Scope{PrivateOrgs: []string{"clinic-1", "clinic-2"}},
			wantClause: " AND (visibility = $2 OR organization_id IN ($3,$4))",
			wantArgs:   []any{"pet-1", "shared", "clinic-1", "clinic-2"},
		},
		{
			name:       "sin orgs solo compartidos",
			scope:      medicalrecords.Scope{},
			wantClause: " AND (visibility = $2)",
			wantArgs:   []any{"pet-1", "shared"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]any(nil), base...)
			clause, args := scopeClause(tt.scope, args)
			assert.Equal(t, tt.wantClause, clause)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestRecords_ListByPet_StaffScopeAndFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	occurred := from.Add(48 * time.Hour)
	rows := sqlmock.NewRows(recordCols).AddRow(
		"rec-1", "pet-1", "clinic-1",
		"VACCINATION", occurred, occurred,
		"Rabia", "", nil, []byte(`[{"key":"records/pet-1/rec-1/a.pdf","name":"a.pdf"}]`),
		"CLINIC_STAFF", "vet-1",
		"private", "active",
	)
	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE pet_id = $1 AND (visibility = $2 OR organization_id IN ($3)) AND type IN ($4) AND occurred_at >= $5 AND (title ILIKE $6 OR notes ILIKE $6) ORDER BY occurred_at DESC LIMIT $7",
	)).
		WithArgs("pet-1", "shared", "clinic-1", "VACCINATION", from, "%rabia%", medicalrecords.DefaultLimit).
		WillReturnRows(rows)

	got, err := NewRecordsRepo(db).ListByPet(context.Background(), "pet-1", medicalrecords.ListFilter{
		Scope: medicalrecords.Scope{PrivateOrgs: []string{"clinic-1"}},
		Types: []medicalrecords.RecordType{medicalrecords.TypeVaccination},
		From:  &from,
		Query: " rabia ",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, medicalrecords.VisibilityPrivate, got[0].Visibility)
	assert.Equal(t, medicalrecords.ActorTypeClinicStaff, got[0].Actor.Type)
	require.Len(t, got[0].Attachments, 1)
	assert.Nil(t, got[0].NextDueAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecords_ListByPet_OwnerHasNoVisibilityPredicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE pet_id = $1 ORDER BY occurred_at DESC LIMIT $2")).
		WithArgs("pet-1", medicalrecords.MaxLimit).
		WillReturnRows(sqlmock.NewRows(recordCols))

	got, err := NewRecordsRepo(db).ListByPet(context.Background(), "pet-1", medicalrecords.ListFilter{
		Scope: medicalrecords.Scope{AllPrivate: true},
		Limit: medicalrecords.MaxLimit + 100,
	})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecords_ListDue_ScopeAfterFixedArgs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	until := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("next_due_at <= $3 AND (visibility = $4 OR organization_id IN ($5))")).
		WithArgs("pet-1", "voided", until, "shared", "clinic-1").
		WillReturnRows(sqlmock.NewRows(recordCols))

	_, err = NewRecordsRepo(db).ListDue(context.Background(), "pet-1", until, medicalrecords.Scope{PrivateOrgs: []string{"clinic-1"}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecords_VoidNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE medical_records").WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewRecordsRepo(db).Void(context.Background(), "missing")
	assert.ErrorIs(t, err, medicalrecords.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
