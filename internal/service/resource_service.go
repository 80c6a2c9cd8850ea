package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/utec-virtual/recursos-api/internal/models"
	appErrors "github.com/utec-virtual/recursos-api/pkg/errors"
)

type resourceRepository interface {
	Create(ctx context.Context, ownerID string, fields models.ResourceFields) (*models.Resource, error)
	FindByID(ctx context.Context, id, ownerID string) (*models.Resource, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Resource, error)
	ListAll(ctx context.Context) ([]models.Resource, error)
	Update(ctx context.Context, id, ownerID string, fields models.ResourceFields) (*models.Resource, error)
	SoftDelete(ctx context.Context, id, ownerID string) error
}

type resourceRoleResolver interface {
	CanDeleteResources(ctx context.Context, userID string) (bool, error)
}

type resourceAuditor interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// ResourceService implements the resource catalogue use cases. Any
// authenticated user can read and create; updates are owner-only and
// deletion additionally requires the coordinador or superadmin role.
type ResourceService struct {
	resources resourceRepository
	access    resourceRoleResolver
	audit     resourceAuditor
	validator *validator.Validate
	logger    *zap.Logger
}

// NewResourceService constructs a ResourceService instance.
func NewResourceService(resources resourceRepository, access resourceRoleResolver, audit resourceAuditor, validate *validator.Validate, logger *zap.Logger) *ResourceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ResourceService{resources: resources, access: access, audit: audit, validator: validate, logger: logger}
}

// Create registers a new resource owned by the caller.
func (s *ResourceService) Create(ctx context.Context, ownerID string, fields models.ResourceFields) (*models.Resource, error) {
	if err := s.validator.Struct(fields); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid resource payload")
	}

	resource, err := s.resources.Create(ctx, ownerID, fields)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create resource")
	}
	return resource, nil
}

// Get returns one of the caller's resources.
func (s *ResourceService) Get(ctx context.Context, id, ownerID string) (*models.Resource, error) {
	resource, err := s.resources.FindByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "recurso no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load resource")
	}
	return resource, nil
}

// ListOwn returns the caller's resources, newest first.
func (s *ResourceService) ListOwn(ctx context.Context, ownerID string) ([]models.Resource, error) {
	resources, err := s.resources.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list resources")
	}
	if resources == nil {
		resources = []models.Resource{}
	}
	return resources, nil
}

// ListAll returns every resource in the catalogue regardless of owner.
// Reads are not role-restricted.
func (s *ResourceService) ListAll(ctx context.Context) ([]models.Resource, error) {
	resources, err := s.resources.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list resources")
	}
	if resources == nil {
		resources = []models.Resource{}
	}
	return resources, nil
}

// Update replaces the fields of a resource the caller owns. A foreign
// or deleted resource reports not found rather than forbidden, so the
// response does not reveal whether the row exists.
func (s *ResourceService) Update(ctx context.Context, id, ownerID string, fields models.ResourceFields) (*models.Resource, error) {
	if err := s.validator.Struct(fields); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid resource payload")
	}

	resource, err := s.resources.Update(ctx, id, ownerID, fields)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "recurso no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update resource")
	}
	return resource, nil
}

// Delete soft-deletes a resource. The caller needs a deleting role and
// must own the row; both conditions are enforced, so a superadmin still
// cannot delete someone else's resource through this path.
func (s *ResourceService) Delete(ctx context.Context, id, callerID string, meta models.RequestMeta) error {
	allowed, err := s.access.CanDeleteResources(ctx, callerID)
	if err != nil {
		return err
	}
	if !allowed {
		return appErrors.Clone(appErrors.ErrForbidden, "no tiene permisos para eliminar recursos")
	}

	if err := s.resources.SoftDelete(ctx, id, callerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "recurso no encontrado")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete resource")
	}

	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &callerID,
		Action:     models.AuditActionResourceDelete,
		Resource:   "resources",
		ResourceID: &id,
		NewValues:  []byte(fmt.Sprintf(`{"id":%q}`, id)),
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	}); err != nil {
		s.logger.Warn("failed to record resource delete audit log", zap.Error(err))
	}

	return nil
}
