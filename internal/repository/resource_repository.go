package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/utec-virtual/recursos-api/internal/models"
)

// ResourceRepository provides access to catalogued resources. Ownership
// scoping lives in the WHERE clauses: an update or delete for a row the
// caller does not own affects zero rows and reports not-found, so a
// bypassed service check still cannot touch foreign rows.
type ResourceRepository struct {
	db *sqlx.DB
}

// NewResourceRepository creates a new instance of ResourceRepository.
func NewResourceRepository(db *sqlx.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

const resourceSelect = `SELECT
	r.id, r.titulo, r.descripcion, r.url, r.asignatura,
	r.type_id, r.platform_id, r.faculty_id, r.cycle_id,
	COALESCE(rt.name, '') AS tipo,
	COALESCE(p.name, '') AS plataforma,
	COALESCE(f.name, '') AS facultad,
	COALESCE(ac.name, '') AS ciclo,
	r.publicado, r.user_id,
	COALESCE(u.name, '') AS docente,
	r.created_at, r.updated_at, r.deleted_at
FROM resources r
LEFT JOIN resource_types rt ON r.type_id = rt.id
LEFT JOIN platforms p ON r.platform_id = p.id
LEFT JOIN faculties f ON r.faculty_id = f.id
LEFT JOIN academic_cycles ac ON r.cycle_id = ac.id
LEFT JOIN users u ON r.user_id = u.id`

// Create inserts a resource owned by ownerID and returns the joined row.
func (r *ResourceRepository) Create(ctx context.Context, ownerID string, fields models.ResourceFields) (*models.Resource, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	const query = `INSERT INTO resources (id, titulo, descripcion, url, asignatura, type_id, platform_id, faculty_id, cycle_id, publicado, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)`
	if _, err := r.db.ExecContext(ctx, query,
		id, fields.Title, fields.Description, fields.URL, fields.Subject,
		fields.TypeID, fields.PlatformID, fields.FacultyID, fields.CycleID,
		fields.Published, ownerID, now,
	); err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	return r.FindByID(ctx, id, ownerID)
}

// FindByID returns a single owned, non-deleted resource.
func (r *ResourceRepository) FindByID(ctx context.Context, id, ownerID string) (*models.Resource, error) {
	query := resourceSelect + ` WHERE r.id = $1 AND r.user_id = $2 AND r.deleted_at IS NULL`
	var resource models.Resource
	if err := r.db.GetContext(ctx, &resource, query, id, ownerID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find resource: %w", err)
	}
	return &resource, nil
}

// ListByOwner returns the caller's non-deleted resources, newest first.
func (r *ResourceRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Resource, error) {
	query := resourceSelect + ` WHERE r.user_id = $1 AND r.deleted_at IS NULL ORDER BY r.created_at DESC`
	var resources []models.Resource
	if err := r.db.SelectContext(ctx, &resources, query, ownerID); err != nil {
		return nil, fmt.Errorf("list resources by owner: %w", err)
	}
	return resources, nil
}

// ListAll returns every non-deleted resource, newest first.
func (r *ResourceRepository) ListAll(ctx context.Context) ([]models.Resource, error) {
	query := resourceSelect + ` WHERE r.deleted_at IS NULL ORDER BY r.created_at DESC`
	var resources []models.Resource
	if err := r.db.SelectContext(ctx, &resources, query); err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return resources, nil
}

// Update replaces the mutable fields of an owned resource. A row that
// does not exist, is deleted, or belongs to someone else reports
// sql.ErrNoRows.
func (r *ResourceRepository) Update(ctx context.Context, id, ownerID string, fields models.ResourceFields) (*models.Resource, error) {
	const query = `UPDATE resources SET titulo = $3, descripcion = $4, url = $5, asignatura = $6, type_id = $7, platform_id = $8, faculty_id = $9, cycle_id = $10, publicado = $11, updated_at = $12
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query,
		id, ownerID,
		fields.Title, fields.Description, fields.URL, fields.Subject,
		fields.TypeID, fields.PlatformID, fields.FacultyID, fields.CycleID,
		fields.Published, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("update resource: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, sql.ErrNoRows
	}

	return r.FindByID(ctx, id, ownerID)
}

// SoftDelete stamps deleted_at on an owned resource.
func (r *ResourceRepository) SoftDelete(ctx context.Context, id, ownerID string) error {
	const query = `UPDATE resources SET deleted_at = $3 WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, ownerID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete resource: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
