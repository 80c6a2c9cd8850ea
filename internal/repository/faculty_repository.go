package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/utec-virtual/recursos-api/internal/models"
)

// FacultyRepository handles persistence for the faculty taxonomy.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository creates a new repository instance.
func NewFacultyRepository(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

// List returns every faculty ordered by name.
func (r *FacultyRepository) List(ctx context.Context) ([]models.Faculty, error) {
	const query = `SELECT id, name, code, description, is_active, created_at, updated_at FROM faculties ORDER BY name`
	var faculties []models.Faculty
	if err := r.db.SelectContext(ctx, &faculties, query); err != nil {
		return nil, fmt.Errorf("list faculties: %w", err)
	}
	return faculties, nil
}

// FindByID returns a faculty by id.
func (r *FacultyRepository) FindByID(ctx context.Context, id int64) (*models.Faculty, error) {
	const query = `SELECT id, name, code, description, is_active, created_at, updated_at FROM faculties WHERE id = $1 LIMIT 1`
	var faculty models.Faculty
	if err := r.db.GetContext(ctx, &faculty, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find faculty: %w", err)
	}
	return &faculty, nil
}

// Create inserts a faculty and fills in its generated id.
func (r *FacultyRepository) Create(ctx context.Context, faculty *models.Faculty) error {
	now := time.Now().UTC()
	faculty.CreatedAt = now
	faculty.UpdatedAt = now

	const query = `INSERT INTO faculties (name, code, description, is_active, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		faculty.Name, faculty.Code, faculty.Description, faculty.IsActive, now, now,
	).Scan(&faculty.ID); err != nil {
		return fmt.Errorf("create faculty: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a faculty.
func (r *FacultyRepository) Update(ctx context.Context, faculty *models.Faculty) error {
	faculty.UpdatedAt = time.Now().UTC()
	const query = `UPDATE faculties SET name = :name, code = :code, description = :description, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, faculty)
	if err != nil {
		return fmt.Errorf("update faculty: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetActive toggles the is_active flag.
func (r *FacultyRepository) SetActive(ctx context.Context, id int64, active bool) error {
	const query = `UPDATE faculties SET is_active = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, active, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set faculty active: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the faculty row.
func (r *FacultyRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM faculties WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete faculty: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
