package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/utec-virtual/recursos-api/internal/models"
)

// CycleRepository handles persistence for academic cycles.
type CycleRepository struct {
	db *sqlx.DB
}

// NewCycleRepository creates a new repository instance.
func NewCycleRepository(db *sqlx.DB) *CycleRepository {
	return &CycleRepository{db: db}
}

// List returns every cycle, most recent teaching period first.
func (r *CycleRepository) List(ctx context.Context) ([]models.AcademicCycle, error) {
	const query = `SELECT id, name, year, semester, start_date, end_date, is_active, created_at, updated_at FROM academic_cycles ORDER BY year DESC, semester DESC`
	var cycles []models.AcademicCycle
	if err := r.db.SelectContext(ctx, &cycles, query); err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}
	return cycles, nil
}

// FindByID returns a cycle by id.
func (r *CycleRepository) FindByID(ctx context.Context, id int64) (*models.AcademicCycle, error) {
	const query = `SELECT id, name, year, semester, start_date, end_date, is_active, created_at, updated_at FROM academic_cycles WHERE id = $1 LIMIT 1`
	var cycle models.AcademicCycle
	if err := r.db.GetContext(ctx, &cycle, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find cycle: %w", err)
	}
	return &cycle, nil
}

// Create inserts a cycle and fills in its generated id.
func (r *CycleRepository) Create(ctx context.Context, cycle *models.AcademicCycle) error {
	now := time.Now().UTC()
	cycle.CreatedAt = now
	cycle.UpdatedAt = now

	const query = `INSERT INTO academic_cycles (name, year, semester, start_date, end_date, is_active, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		cycle.Name, cycle.Year, cycle.Semester, cycle.StartDate, cycle.EndDate, cycle.IsActive, now, now,
	).Scan(&cycle.ID); err != nil {
		return fmt.Errorf("create cycle: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a cycle.
func (r *CycleRepository) Update(ctx context.Context, cycle *models.AcademicCycle) error {
	cycle.UpdatedAt = time.Now().UTC()
	const query = `UPDATE academic_cycles SET name = :name, year = :year, semester = :semester, start_date = :start_date, end_date = :end_date, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, cycle)
	if err != nil {
		return fmt.Errorf("update cycle: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetActive toggles the is_active flag.
func (r *CycleRepository) SetActive(ctx context.Context, id int64, active bool) error {
	const query = `UPDATE academic_cycles SET is_active = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, active, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set cycle active: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the cycle row.
func (r *CycleRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM academic_cycles WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete cycle: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
