package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utec-virtual/recursos-api/internal/models"
)

func newResourceRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func resourceRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "titulo", "descripcion", "url", "asignatura",
		"type_id", "platform_id", "faculty_id", "cycle_id",
		"tipo", "plataforma", "facultad", "ciclo",
		"publicado", "user_id", "docente",
		"created_at", "updated_at", "deleted_at",
	})
}

func sampleResourceRow(rows *sqlmock.Rows, id, ownerID string) *sqlmock.Rows {
	return rows.AddRow(
		id, "Guía de Genially", "Introducción", "https://genial.ly/abc", "Matemática I",
		1, 2, 3, 4,
		"Presentación", "Genially", "Ingeniería", "01-2026",
		true, ownerID, "María Pérez",
		time.Now(), time.Now(), nil,
	)
}

func TestResourceRepositoryListByOwner(t *testing.T) {
	db, mock, cleanup := newResourceRepoMock(t)
	defer cleanup()
	repo := NewResourceRepository(db)

	mock.ExpectQuery("SELECT(.|\n)*FROM resources r(.|\n)*WHERE r.user_id = \\$1 AND r.deleted_at IS NULL").
		WithArgs("u1").
		WillReturnRows(sampleResourceRow(resourceRows(), "r1", "u1"))

	resources, err := repo.ListByOwner(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, "Genially", resources[0].Platform)
	assert.Equal(t, "María Pérez", resources[0].OwnerName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newResourceRepoMock(t)
	defer cleanup()
	repo := NewResourceRepository(db)

	rows := sampleResourceRow(resourceRows(), "r1", "u1")
	rows = sampleResourceRow(rows, "r2", "u2")
	mock.ExpectQuery("SELECT(.|\n)*FROM resources r(.|\n)*WHERE r.deleted_at IS NULL").
		WillReturnRows(rows)

	resources, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, resources, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceRepositoryUpdateNotOwned(t *testing.T) {
	db, mock, cleanup := newResourceRepoMock(t)
	defer cleanup()
	repo := NewResourceRepository(db)

	mock.ExpectExec("UPDATE resources SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	fields := models.ResourceFields{Title: "Otro", URL: "https://example.com", TypeID: 1, PlatformID: 2, FacultyID: 3, CycleID: 4}
	_, err := repo.Update(context.Background(), "r1", "intruso", fields)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestResourceRepositorySoftDelete(t *testing.T) {
	db, mock, cleanup := newResourceRepoMock(t)
	defer cleanup()
	repo := NewResourceRepository(db)

	mock.ExpectExec("UPDATE resources SET deleted_at").
		WithArgs("r1", "u1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SoftDelete(context.Background(), "r1", "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceRepositorySoftDeleteMissing(t *testing.T) {
	db, mock, cleanup := newResourceRepoMock(t)
	defer cleanup()
	repo := NewResourceRepository(db)

	mock.ExpectExec("UPDATE resources SET deleted_at").
		WithArgs("gone", "u1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SoftDelete(context.Background(), "gone", "u1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
