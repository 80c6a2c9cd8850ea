package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utec-virtual/recursos-api/internal/models"
)

func newPlatformRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestPlatformRepositoryList(t *testing.T) {
	db, mock, cleanup := newPlatformRepoMock(t)
	defer cleanup()
	repo := NewPlatformRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "description", "website_url", "logo_url", "is_active", "created_at", "updated_at"}).
		AddRow(1, "Canva", "Diseño", "https://canva.com", "", true, time.Now(), time.Now()).
		AddRow(2, "Genially", "Interactivos", "https://genial.ly", "", true, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, website_url, logo_url, is_active, created_at, updated_at FROM platforms ORDER BY name")).
		WillReturnRows(rows)

	platforms, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, platforms, 2)
	assert.Equal(t, "Canva", platforms[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlatformRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newPlatformRepoMock(t)
	defer cleanup()
	repo := NewPlatformRepository(db)

	mock.ExpectQuery("INSERT INTO platforms").
		WithArgs("Canva", "Diseño", "https://canva.com", "", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	platform := &models.Platform{Name: "Canva", Description: "Diseño", WebsiteURL: "https://canva.com", IsActive: true}
	require.NoError(t, repo.Create(context.Background(), platform))
	assert.Equal(t, int64(7), platform.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlatformRepositoryDeleteIsHard(t *testing.T) {
	db, mock, cleanup := newPlatformRepoMock(t)
	defer cleanup()
	repo := NewPlatformRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM platforms WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlatformRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newPlatformRepoMock(t)
	defer cleanup()
	repo := NewPlatformRepository(db)

	mock.ExpectExec("DELETE FROM platforms").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
