package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/utec-virtual/recursos-api/internal/models"
)

// PlatformRepository handles persistence for the platform taxonomy.
// Taxonomy rows are hard-deleted, unlike resources.
type PlatformRepository struct {
	db *sqlx.DB
}

// NewPlatformRepository creates a new repository instance.
func NewPlatformRepository(db *sqlx.DB) *PlatformRepository {
	return &PlatformRepository{db: db}
}

// List returns every platform ordered by name.
func (r *PlatformRepository) List(ctx context.Context) ([]models.Platform, error) {
	const query = `SELECT id, name, description, website_url, logo_url, is_active, created_at, updated_at FROM platforms ORDER BY name`
	var platforms []models.Platform
	if err := r.db.SelectContext(ctx, &platforms, query); err != nil {
		return nil, fmt.Errorf("list platforms: %w", err)
	}
	return platforms, nil
}

// FindByID returns a platform by id.
func (r *PlatformRepository) FindByID(ctx context.Context, id int64) (*models.Platform, error) {
	const query = `SELECT id, name, description, website_url, logo_url, is_active, created_at, updated_at FROM platforms WHERE id = $1 LIMIT 1`
	var platform models.Platform
	if err := r.db.GetContext(ctx, &platform, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find platform: %w", err)
	}
	return &platform, nil
}

// Create inserts a platform and fills in its generated id.
func (r *PlatformRepository) Create(ctx context.Context, platform *models.Platform) error {
	now := time.Now().UTC()
	platform.CreatedAt = now
	platform.UpdatedAt = now

	const query = `INSERT INTO platforms (name, description, website_url, logo_url, is_active, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		platform.Name, platform.Description, platform.WebsiteURL, platform.LogoURL, platform.IsActive, now, now,
	).Scan(&platform.ID); err != nil {
		return fmt.Errorf("create platform: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a platform.
func (r *PlatformRepository) Update(ctx context.Context, platform *models.Platform) error {
	platform.UpdatedAt = time.Now().UTC()
	const query = `UPDATE platforms SET name = :name, description = :description, website_url = :website_url, logo_url = :logo_url, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, platform)
	if err != nil {
		return fmt.Errorf("update platform: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetActive toggles the is_active flag.
func (r *PlatformRepository) SetActive(ctx context.Context, id int64, active bool) error {
	const query = `UPDATE platforms SET is_active = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, active, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set platform active: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the platform row.
func (r *PlatformRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM platforms WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete platform: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
