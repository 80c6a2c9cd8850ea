package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/utec-virtual/recursos-api/internal/models"
)

// ResourceTypeRepository handles persistence for resource types.
type ResourceTypeRepository struct {
	db *sqlx.DB
}

// NewResourceTypeRepository creates a new repository instance.
func NewResourceTypeRepository(db *sqlx.DB) *ResourceTypeRepository {
	return &ResourceTypeRepository{db: db}
}

// List returns every resource type ordered by name.
func (r *ResourceTypeRepository) List(ctx context.Context) ([]models.ResourceType, error) {
	const query = `SELECT id, name, description, icon, is_active, created_at, updated_at FROM resource_types ORDER BY name`
	var types []models.ResourceType
	if err := r.db.SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("list resource types: %w", err)
	}
	return types, nil
}

// FindByID returns a resource type by id.
func (r *ResourceTypeRepository) FindByID(ctx context.Context, id int64) (*models.ResourceType, error) {
	const query = `SELECT id, name, description, icon, is_active, created_at, updated_at FROM resource_types WHERE id = $1 LIMIT 1`
	var rt models.ResourceType
	if err := r.db.GetContext(ctx, &rt, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find resource type: %w", err)
	}
	return &rt, nil
}

// Create inserts a resource type and fills in its generated id.
func (r *ResourceTypeRepository) Create(ctx context.Context, rt *models.ResourceType) error {
	now := time.Now().UTC()
	rt.CreatedAt = now
	rt.UpdatedAt = now

	const query = `INSERT INTO resource_types (name, description, icon, is_active, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		rt.Name, rt.Description, rt.Icon, rt.IsActive, now, now,
	).Scan(&rt.ID); err != nil {
		return fmt.Errorf("create resource type: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a resource type.
func (r *ResourceTypeRepository) Update(ctx context.Context, rt *models.ResourceType) error {
	rt.UpdatedAt = time.Now().UTC()
	const query = `UPDATE resource_types SET name = :name, description = :description, icon = :icon, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, rt)
	if err != nil {
		return fmt.Errorf("update resource type: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetActive toggles the is_active flag.
func (r *ResourceTypeRepository) SetActive(ctx context.Context, id int64, active bool) error {
	const query = `UPDATE resource_types SET is_active = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, active, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set resource type active: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the resource type row.
func (r *ResourceTypeRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM resource_types WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete resource type: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
