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

func newUserRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "email", "name", "password_hash", "role", "is_active", "created_at", "updated_at", "deleted_at"})
}

func TestUserRepositoryFindByUsername(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, email, name, password_hash, role, is_active, created_at, updated_at, deleted_at FROM users WHERE username = $1 AND deleted_at IS NULL LIMIT 1")).
		WithArgs("mperez").
		WillReturnRows(userRows().AddRow("u1", "mperez", "mperez@utec.edu.sv", "María Pérez", "$2a$10$hash", "docente", true, time.Now(), time.Now(), nil))

	user, err := repo.FindByUsername(context.Background(), "mperez")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, models.RoleDocente, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByUsernameNotFound(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT .* FROM users WHERE username").
		WithArgs("nadie").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUsername(context.Background(), "nadie")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserRepositoryAssignRole(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET role = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL")).
		WithArgs("u1", models.RoleCoordinador, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AssignRole(context.Background(), "u1", models.RoleCoordinador))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryAssignRoleMissingUser(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("UPDATE users SET role").
		WithArgs("ghost", models.RoleSuperadmin, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AssignRole(context.Background(), "ghost", models.RoleSuperadmin)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(1, 1))

	user := &models.User{Username: "nuevo", Email: "nuevo@utec.edu.sv", Name: "Nuevo Usuario", PasswordHash: "$2a$10$hash", Role: models.RoleDocente, IsActive: true}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryList(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, email, name, password_hash, role, is_active, created_at, updated_at, deleted_at FROM users WHERE deleted_at IS NULL AND (LOWER(username) LIKE $1 OR LOWER(name) LIKE $1) ORDER BY created_at DESC LIMIT 20 OFFSET 0")).
		WithArgs("%maria%").
		WillReturnRows(userRows().AddRow("u1", "mperez", "m@utec.edu.sv", "María", "h", "docente", true, time.Now(), time.Now(), nil))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE deleted_at IS NULL")).
		WithArgs("%maria%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	users, total, err := repo.List(context.Background(), models.UserFilter{Search: "Maria"})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositorySoftDelete(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET deleted_at = $2, is_active = FALSE, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL")).
		WithArgs("u1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SoftDelete(context.Background(), "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
