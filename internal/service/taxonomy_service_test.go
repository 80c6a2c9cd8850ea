package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utec-virtual/recursos-api/internal/dto"
	"github.com/utec-virtual/recursos-api/internal/models"
	appErrors "github.com/utec-virtual/recursos-api/pkg/errors"
)

type mockPlatformRepo struct {
	platforms map[int64]*models.Platform
	nextID    int64
}

func (m *mockPlatformRepo) List(ctx context.Context) ([]models.Platform, error) {
	var out []models.Platform
	for _, p := range m.platforms {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockPlatformRepo) FindByID(ctx context.Context, id int64) (*models.Platform, error) {
	if p, ok := m.platforms[id]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockPlatformRepo) Create(ctx context.Context, platform *models.Platform) error {
	m.nextID++
	platform.ID = m.nextID
	if m.platforms == nil {
		m.platforms = make(map[int64]*models.Platform)
	}
	m.platforms[platform.ID] = platform
	return nil
}

func (m *mockPlatformRepo) Update(ctx context.Context, platform *models.Platform) error {
	if _, ok := m.platforms[platform.ID]; !ok {
		return sql.ErrNoRows
	}
	m.platforms[platform.ID] = platform
	return nil
}

func (m *mockPlatformRepo) SetActive(ctx context.Context, id int64, active bool) error {
	p, ok := m.platforms[id]
	if !ok {
		return sql.ErrNoRows
	}
	p.IsActive = active
	return nil
}

func (m *mockPlatformRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.platforms[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.platforms, id)
	return nil
}

type noopFacultyRepo struct{}

func (noopFacultyRepo) List(ctx context.Context) ([]models.Faculty, error)        { return nil, nil }
func (noopFacultyRepo) FindByID(ctx context.Context, id int64) (*models.Faculty, error) {
	return nil, sql.ErrNoRows
}
func (noopFacultyRepo) Create(ctx context.Context, faculty *models.Faculty) error { return nil }
func (noopFacultyRepo) Update(ctx context.Context, faculty *models.Faculty) error { return nil }
func (noopFacultyRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return sql.ErrNoRows
}
func (noopFacultyRepo) Delete(ctx context.Context, id int64) error { return sql.ErrNoRows }

type mockCycleRepo struct {
	created []*models.AcademicCycle
}

func (m *mockCycleRepo) List(ctx context.Context) ([]models.AcademicCycle, error) { return nil, nil }
func (m *mockCycleRepo) FindByID(ctx context.Context, id int64) (*models.AcademicCycle, error) {
	return nil, sql.ErrNoRows
}
func (m *mockCycleRepo) Create(ctx context.Context, cycle *models.AcademicCycle) error {
	cycle.ID = int64(len(m.created) + 1)
	m.created = append(m.created, cycle)
	return nil
}
func (m *mockCycleRepo) Update(ctx context.Context, cycle *models.AcademicCycle) error { return nil }
func (m *mockCycleRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return sql.ErrNoRows
}
func (m *mockCycleRepo) Delete(ctx context.Context, id int64) error { return sql.ErrNoRows }

type noopTypeRepo struct{}

func (noopTypeRepo) List(ctx context.Context) ([]models.ResourceType, error) { return nil, nil }
func (noopTypeRepo) FindByID(ctx context.Context, id int64) (*models.ResourceType, error) {
	return nil, sql.ErrNoRows
}
func (noopTypeRepo) Create(ctx context.Context, rt *models.ResourceType) error { return nil }
func (noopTypeRepo) Update(ctx context.Context, rt *models.ResourceType) error { return nil }
func (noopTypeRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return sql.ErrNoRows
}
func (noopTypeRepo) Delete(ctx context.Context, id int64) error { return sql.ErrNoRows }

func newTaxonomyServiceTest(platforms *mockPlatformRepo, cycles *mockCycleRepo, audit *mockAuditor) *TaxonomyService {
	return NewTaxonomyService(platforms, noopFacultyRepo{}, cycles, noopTypeRepo{}, audit, nil, nil)
}

func TestTaxonomyServiceCreatePlatformDefaultsActive(t *testing.T) {
	repo := &mockPlatformRepo{}
	audit := &mockAuditor{}
	svc := newTaxonomyServiceTest(repo, &mockCycleRepo{}, audit)

	platform, err := svc.CreatePlatform(context.Background(), "admin", dto.PlatformPayload{Name: "Genially"})
	require.NoError(t, err)
	assert.True(t, platform.IsActive)
	assert.NotZero(t, platform.ID)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionTaxonomyChange, audit.logs[0].Action)
	assert.Equal(t, "platforms", audit.logs[0].Resource)
}

func TestTaxonomyServiceCreatePlatformRequiresName(t *testing.T) {
	svc := newTaxonomyServiceTest(&mockPlatformRepo{}, &mockCycleRepo{}, &mockAuditor{})

	_, err := svc.CreatePlatform(context.Background(), "admin", dto.PlatformPayload{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTaxonomyServiceUpdatePlatformMissing(t *testing.T) {
	svc := newTaxonomyServiceTest(&mockPlatformRepo{}, &mockCycleRepo{}, &mockAuditor{})

	_, err := svc.UpdatePlatform(context.Background(), "admin", 42, dto.PlatformPayload{Name: "Genially"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "plataforma")
}

func TestTaxonomyServiceDeletePlatformIsHard(t *testing.T) {
	repo := &mockPlatformRepo{platforms: map[int64]*models.Platform{
		1: {ID: 1, Name: "Genially", IsActive: true},
	}}
	svc := newTaxonomyServiceTest(repo, &mockCycleRepo{}, &mockAuditor{})

	require.NoError(t, svc.DeletePlatform(context.Background(), "admin", 1))
	assert.Empty(t, repo.platforms)

	err := svc.DeletePlatform(context.Background(), "admin", 1)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTaxonomyServiceSetPlatformActive(t *testing.T) {
	repo := &mockPlatformRepo{platforms: map[int64]*models.Platform{
		1: {ID: 1, Name: "Genially", IsActive: true},
	}}
	svc := newTaxonomyServiceTest(repo, &mockCycleRepo{}, &mockAuditor{})

	require.NoError(t, svc.SetPlatformActive(context.Background(), "admin", 1, false))
	assert.False(t, repo.platforms[1].IsActive)
}

func TestTaxonomyServiceCreateCycleValidatesSemester(t *testing.T) {
	cycles := &mockCycleRepo{}
	svc := newTaxonomyServiceTest(&mockPlatformRepo{}, cycles, &mockAuditor{})

	_, err := svc.CreateCycle(context.Background(), "admin", dto.CyclePayload{Name: "03-2026", Year: 2026, Semester: 3})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, cycles.created)

	cycle, err := svc.CreateCycle(context.Background(), "admin", dto.CyclePayload{Name: "01-2026", Year: 2026, Semester: 1})
	require.NoError(t, err)
	assert.True(t, cycle.IsActive)
}

func TestTaxonomyServiceListPlatformsEmptyNotNil(t *testing.T) {
	svc := newTaxonomyServiceTest(&mockPlatformRepo{}, &mockCycleRepo{}, &mockAuditor{})

	items, err := svc.ListPlatforms(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
