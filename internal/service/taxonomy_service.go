package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/utec-virtual/recursos-api/internal/dto"
	"github.com/utec-virtual/recursos-api/internal/models"
	appErrors "github.com/utec-virtual/recursos-api/pkg/errors"
)

type platformRepository interface {
	List(ctx context.Context) ([]models.Platform, error)
	FindByID(ctx context.Context, id int64) (*models.Platform, error)
	Create(ctx context.Context, platform *models.Platform) error
	Update(ctx context.Context, platform *models.Platform) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type facultyRepository interface {
	List(ctx context.Context) ([]models.Faculty, error)
	FindByID(ctx context.Context, id int64) (*models.Faculty, error)
	Create(ctx context.Context, faculty *models.Faculty) error
	Update(ctx context.Context, faculty *models.Faculty) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type cycleRepository interface {
	List(ctx context.Context) ([]models.AcademicCycle, error)
	FindByID(ctx context.Context, id int64) (*models.AcademicCycle, error)
	Create(ctx context.Context, cycle *models.AcademicCycle) error
	Update(ctx context.Context, cycle *models.AcademicCycle) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type resourceTypeRepository interface {
	List(ctx context.Context) ([]models.ResourceType, error)
	FindByID(ctx context.Context, id int64) (*models.ResourceType, error)
	Create(ctx context.Context, rt *models.ResourceType) error
	Update(ctx context.Context, rt *models.ResourceType) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type taxonomyAuditor interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// TaxonomyService manages the four classification catalogues. Reads are
// open to any session so forms can populate their selects; every
// mutation is superadmin-only (enforced by the route middleware) and
// audited. Deletes are hard: taxonomy rows are reference data, not
// user content.
type TaxonomyService struct {
	platforms platformRepository
	faculties facultyRepository
	cycles    cycleRepository
	types     resourceTypeRepository
	audit     taxonomyAuditor
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTaxonomyService constructs a TaxonomyService instance.
func NewTaxonomyService(platforms platformRepository, faculties facultyRepository, cycles cycleRepository, types resourceTypeRepository, audit taxonomyAuditor, validate *validator.Validate, logger *zap.Logger) *TaxonomyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &TaxonomyService{
		platforms: platforms,
		faculties: faculties,
		cycles:    cycles,
		types:     types,
		audit:     audit,
		validator: validate,
		logger:    logger,
	}
}

func (s *TaxonomyService) recordChange(ctx context.Context, actorID, kind string, id int64, payload string) {
	resourceID := fmt.Sprintf("%d", id)
	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     models.AuditActionTaxonomyChange,
		Resource:   kind,
		ResourceID: &resourceID,
		NewValues:  []byte(payload),
	}); err != nil {
		s.logger.Warn("failed to record taxonomy audit log", zap.Error(err), zap.String("kind", kind))
	}
}

func taxonomyNotFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, what+" no encontrado")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "taxonomy operation failed")
}

// ListPlatforms returns all platforms, name-ordered.
func (s *TaxonomyService) ListPlatforms(ctx context.Context) ([]models.Platform, error) {
	items, err := s.platforms.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list platforms")
	}
	if items == nil {
		items = []models.Platform{}
	}
	return items, nil
}

// CreatePlatform registers a new hosting platform.
func (s *TaxonomyService) CreatePlatform(ctx context.Context, actorID string, payload dto.PlatformPayload) (*models.Platform, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid platform payload")
	}
	platform := &models.Platform{
		Name:        payload.Name,
		Description: payload.Description,
		WebsiteURL:  payload.WebsiteURL,
		LogoURL:     payload.LogoURL,
		IsActive:    payload.IsActive == nil || *payload.IsActive,
	}
	if err := s.platforms.Create(ctx, platform); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create platform")
	}
	s.recordChange(ctx, actorID, "platforms", platform.ID, fmt.Sprintf(`{"created":%q}`, platform.Name))
	return platform, nil
}

// UpdatePlatform replaces the platform's fields.
func (s *TaxonomyService) UpdatePlatform(ctx context.Context, actorID string, id int64, payload dto.PlatformPayload) (*models.Platform, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid platform payload")
	}
	platform, err := s.platforms.FindByID(ctx, id)
	if err != nil {
		return nil, taxonomyNotFound(err, "plataforma")
	}
	platform.Name = payload.Name
	platform.Description = payload.Description
	platform.WebsiteURL = payload.WebsiteURL
	platform.LogoURL = payload.LogoURL
	if payload.IsActive != nil {
		platform.IsActive = *payload.IsActive
	}
	if err := s.platforms.Update(ctx, platform); err != nil {
		return nil, taxonomyNotFound(err, "plataforma")
	}
	s.recordChange(ctx, actorID, "platforms", id, fmt.Sprintf(`{"updated":%q}`, platform.Name))
	return platform, nil
}

// SetPlatformActive toggles a platform's availability in forms.
func (s *TaxonomyService) SetPlatformActive(ctx context.Context, actorID string, id int64, active bool) error {
	if err := s.platforms.SetActive(ctx, id, active); err != nil {
		return taxonomyNotFound(err, "plataforma")
	}
	s.recordChange(ctx, actorID, "platforms", id, fmt.Sprintf(`{"is_active":%t}`, active))
	return nil
}

// DeletePlatform removes the platform row permanently.
func (s *TaxonomyService) DeletePlatform(ctx context.Context, actorID string, id int64) error {
	if err := s.platforms.Delete(ctx, id); err != nil {
		return taxonomyNotFound(err, "plataforma")
	}
	s.recordChange(ctx, actorID, "platforms", id, `{"deleted":true}`)
	return nil
}

// ListFaculties returns all faculties, name-ordered.
func (s *TaxonomyService) ListFaculties(ctx context.Context) ([]models.Faculty, error) {
	items, err := s.faculties.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faculties")
	}
	if items == nil {
		items = []models.Faculty{}
	}
	return items, nil
}

// CreateFaculty registers a new faculty.
func (s *TaxonomyService) CreateFaculty(ctx context.Context, actorID string, payload dto.FacultyPayload) (*models.Faculty, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty payload")
	}
	faculty := &models.Faculty{
		Name:        payload.Name,
		Code:        payload.Code,
		Description: payload.Description,
		IsActive:    payload.IsActive == nil || *payload.IsActive,
	}
	if err := s.faculties.Create(ctx, faculty); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create faculty")
	}
	s.recordChange(ctx, actorID, "faculties", faculty.ID, fmt.Sprintf(`{"created":%q}`, faculty.Name))
	return faculty, nil
}

// UpdateFaculty replaces the faculty's fields.
func (s *TaxonomyService) UpdateFaculty(ctx context.Context, actorID string, id int64, payload dto.FacultyPayload) (*models.Faculty, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty payload")
	}
	faculty, err := s.faculties.FindByID(ctx, id)
	if err != nil {
		return nil, taxonomyNotFound(err, "facultad")
	}
	faculty.Name = payload.Name
	faculty.Code = payload.Code
	faculty.Description = payload.Description
	if payload.IsActive != nil {
		faculty.IsActive = *payload.IsActive
	}
	if err := s.faculties.Update(ctx, faculty); err != nil {
		return nil, taxonomyNotFound(err, "facultad")
	}
	s.recordChange(ctx, actorID, "faculties", id, fmt.Sprintf(`{"updated":%q}`, faculty.Name))
	return faculty, nil
}

// SetFacultyActive toggles a faculty.
func (s *TaxonomyService) SetFacultyActive(ctx context.Context, actorID string, id int64, active bool) error {
	if err := s.faculties.SetActive(ctx, id, active); err != nil {
		return taxonomyNotFound(err, "facultad")
	}
	s.recordChange(ctx, actorID, "faculties", id, fmt.Sprintf(`{"is_active":%t}`, active))
	return nil
}

// DeleteFaculty removes the faculty row permanently.
func (s *TaxonomyService) DeleteFaculty(ctx context.Context, actorID string, id int64) error {
	if err := s.faculties.Delete(ctx, id); err != nil {
		return taxonomyNotFound(err, "facultad")
	}
	s.recordChange(ctx, actorID, "faculties", id, `{"deleted":true}`)
	return nil
}

// ListCycles returns all academic cycles, newest first.
func (s *TaxonomyService) ListCycles(ctx context.Context) ([]models.AcademicCycle, error) {
	items, err := s.cycles.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list cycles")
	}
	if items == nil {
		items = []models.AcademicCycle{}
	}
	return items, nil
}

// CreateCycle registers a new academic cycle.
func (s *TaxonomyService) CreateCycle(ctx context.Context, actorID string, payload dto.CyclePayload) (*models.AcademicCycle, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid cycle payload")
	}
	cycle := &models.AcademicCycle{
		Name:      payload.Name,
		Year:      payload.Year,
		Semester:  payload.Semester,
		StartDate: payload.StartDate,
		EndDate:   payload.EndDate,
		IsActive:  payload.IsActive == nil || *payload.IsActive,
	}
	if err := s.cycles.Create(ctx, cycle); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create cycle")
	}
	s.recordChange(ctx, actorID, "academic_cycles", cycle.ID, fmt.Sprintf(`{"created":%q}`, cycle.Name))
	return cycle, nil
}

// UpdateCycle replaces the cycle's fields.
func (s *TaxonomyService) UpdateCycle(ctx context.Context, actorID string, id int64, payload dto.CyclePayload) (*models.AcademicCycle, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid cycle payload")
	}
	cycle, err := s.cycles.FindByID(ctx, id)
	if err != nil {
		return nil, taxonomyNotFound(err, "ciclo")
	}
	cycle.Name = payload.Name
	cycle.Year = payload.Year
	cycle.Semester = payload.Semester
	cycle.StartDate = payload.StartDate
	cycle.EndDate = payload.EndDate
	if payload.IsActive != nil {
		cycle.IsActive = *payload.IsActive
	}
	if err := s.cycles.Update(ctx, cycle); err != nil {
		return nil, taxonomyNotFound(err, "ciclo")
	}
	s.recordChange(ctx, actorID, "academic_cycles", id, fmt.Sprintf(`{"updated":%q}`, cycle.Name))
	return cycle, nil
}

// SetCycleActive toggles an academic cycle.
func (s *TaxonomyService) SetCycleActive(ctx context.Context, actorID string, id int64, active bool) error {
	if err := s.cycles.SetActive(ctx, id, active); err != nil {
		return taxonomyNotFound(err, "ciclo")
	}
	s.recordChange(ctx, actorID, "academic_cycles", id, fmt.Sprintf(`{"is_active":%t}`, active))
	return nil
}

// DeleteCycle removes the cycle row permanently.
func (s *TaxonomyService) DeleteCycle(ctx context.Context, actorID string, id int64) error {
	if err := s.cycles.Delete(ctx, id); err != nil {
		return taxonomyNotFound(err, "ciclo")
	}
	s.recordChange(ctx, actorID, "academic_cycles", id, `{"deleted":true}`)
	return nil
}

// ListResourceTypes returns all resource types, name-ordered.
func (s *TaxonomyService) ListResourceTypes(ctx context.Context) ([]models.ResourceType, error) {
	items, err := s.types.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list resource types")
	}
	if items == nil {
		items = []models.ResourceType{}
	}
	return items, nil
}

// CreateResourceType registers a new resource type.
func (s *TaxonomyService) CreateResourceType(ctx context.Context, actorID string, payload dto.ResourceTypePayload) (*models.ResourceType, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid resource type payload")
	}
	rt := &models.ResourceType{
		Name:        payload.Name,
		Description: payload.Description,
		Icon:        payload.Icon,
		IsActive:    payload.IsActive == nil || *payload.IsActive,
	}
	if err := s.types.Create(ctx, rt); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create resource type")
	}
	s.recordChange(ctx, actorID, "resource_types", rt.ID, fmt.Sprintf(`{"created":%q}`, rt.Name))
	return rt, nil
}

// UpdateResourceType replaces the resource type's fields.
func (s *TaxonomyService) UpdateResourceType(ctx context.Context, actorID string, id int64, payload dto.ResourceTypePayload) (*models.ResourceType, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid resource type payload")
	}
	rt, err := s.types.FindByID(ctx, id)
	if err != nil {
		return nil, taxonomyNotFound(err, "tipo de recurso")
	}
	rt.Name = payload.Name
	rt.Description = payload.Description
	rt.Icon = payload.Icon
	if payload.IsActive != nil {
		rt.IsActive = *payload.IsActive
	}
	if err := s.types.Update(ctx, rt); err != nil {
		return nil, taxonomyNotFound(err, "tipo de recurso")
	}
	s.recordChange(ctx, actorID, "resource_types", id, fmt.Sprintf(`{"updated":%q}`, rt.Name))
	return rt, nil
}

// SetResourceTypeActive toggles a resource type.
func (s *TaxonomyService) SetResourceTypeActive(ctx context.Context, actorID string, id int64, active bool) error {
	if err := s.types.SetActive(ctx, id, active); err != nil {
		return taxonomyNotFound(err, "tipo de recurso")
	}
	s.recordChange(ctx, actorID, "resource_types", id, fmt.Sprintf(`{"is_active":%t}`, active))
	return nil
}

// DeleteResourceType removes the resource type row permanently.
func (s *TaxonomyService) DeleteResourceType(ctx context.Context, actorID string, id int64) error {
	if err := s.types.Delete(ctx, id); err != nil {
		return taxonomyNotFound(err, "tipo de recurso")
	}
	s.recordChange(ctx, actorID, "resource_types", id, `{"deleted":true}`)
	return nil
}
