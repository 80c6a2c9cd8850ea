package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utec-virtual/recursos-api/internal/models"
	appErrors "github.com/utec-virtual/recursos-api/pkg/errors"
)

type mockResourceRepo struct {
	resources map[string]*models.Resource
	listErr   error
}

func (m *mockResourceRepo) Create(ctx context.Context, ownerID string, fields models.ResourceFields) (*models.Resource, error) {
	r := &models.Resource{ID: "r-new", Title: fields.Title, URL: fields.URL, OwnerID: ownerID, Published: fields.Published}
	if m.resources == nil {
		m.resources = make(map[string]*models.Resource)
	}
	m.resources[r.ID] = r
	return r, nil
}

func (m *mockResourceRepo) FindByID(ctx context.Context, id, ownerID string) (*models.Resource, error) {
	r, ok := m.resources[id]
	if !ok || r.OwnerID != ownerID {
		return nil, sql.ErrNoRows
	}
	return r, nil
}

func (m *mockResourceRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Resource, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.Resource
	for _, r := range m.resources {
		if r.OwnerID == ownerID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockResourceRepo) ListAll(ctx context.Context) ([]models.Resource, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.Resource
	for _, r := range m.resources {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockResourceRepo) Update(ctx context.Context, id, ownerID string, fields models.ResourceFields) (*models.Resource, error) {
	r, ok := m.resources[id]
	if !ok || r.OwnerID != ownerID {
		return nil, sql.ErrNoRows
	}
	r.Title = fields.Title
	r.URL = fields.URL
	r.Published = fields.Published
	return r, nil
}

func (m *mockResourceRepo) SoftDelete(ctx context.Context, id, ownerID string) error {
	r, ok := m.resources[id]
	if !ok || r.OwnerID != ownerID {
		return sql.ErrNoRows
	}
	delete(m.resources, id)
	return nil
}

type mockRoleResolver struct {
	canDelete bool
	err       error
}

func (m *mockRoleResolver) CanDeleteResources(ctx context.Context, userID string) (bool, error) {
	return m.canDelete, m.err
}

type mockAuditor struct {
	logs []*models.AuditLog
}

func (m *mockAuditor) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.logs = append(m.logs, log)
	return nil
}

func validResourceFields() models.ResourceFields {
	return models.ResourceFields{
		Title:      "Guía de Genially",
		URL:        "https://view.genially.com/abc",
		Subject:    "Informática",
		TypeID:     1,
		PlatformID: 2,
		FacultyID:  3,
		CycleID:    4,
		Published:  true,
	}
}

func TestResourceServiceCreate(t *testing.T) {
	repo := &mockResourceRepo{}
	svc := NewResourceService(repo, &mockRoleResolver{}, &mockAuditor{}, nil, nil)

	resource, err := svc.Create(context.Background(), "u1", validResourceFields())
	require.NoError(t, err)
	assert.Equal(t, "u1", resource.OwnerID)
	assert.True(t, resource.Published)
}

func TestResourceServiceCreateInvalidPayload(t *testing.T) {
	svc := NewResourceService(&mockResourceRepo{}, &mockRoleResolver{}, &mockAuditor{}, nil, nil)

	fields := validResourceFields()
	fields.URL = "not-a-url"
	_, err := svc.Create(context.Background(), "u1", fields)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestResourceServiceGetOwned(t *testing.T) {
	repo := &mockResourceRepo{resources: map[string]*models.Resource{
		"r1": {ID: "r1", Title: "Guía de Genially", OwnerID: "u1"},
	}}
	svc := NewResourceService(repo, &mockRoleResolver{}, &mockAuditor{}, nil, nil)

	resource, err := svc.Get(context.Background(), "r1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Guía de Genially", resource.Title)
}

func TestResourceServiceGetForeignResourceNotFound(t *testing.T) {
	repo := &mockResourceRepo{resources: map[string]*models.Resource{
		"r1": {ID: "r1", OwnerID: "otro"},
	}}
	svc := NewResourceService(repo, &mockRoleResolver{}, &mockAuditor{}, nil, nil)

	_, err := svc.Get(context.Background(), "r1", "u1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestResourceServiceListOwnEmpty(t *testing.T) {
	svc := NewResourceService(&mockResourceRepo{}, &mockRoleResolver{}, &mockAuditor{}, nil, nil)

	resources, err := svc.ListOwn(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, resources)
	assert.Empty(t, resources)
}

func TestResourceServiceUpdateForeignResourceNotFound(t *testing.T) {
	repo := &mockResourceRepo{resources: map[string]*models.Resource{
		"r1": {ID: "r1", OwnerID: "otro"},
	}}
	svc := NewResourceService(repo, &mockRoleResolver{}, &mockAuditor{}, nil, nil)

	_, err := svc.Update(context.Background(), "r1", "u1", validResourceFields())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestResourceServiceDeleteForbiddenForDocente(t *testing.T) {
	repo := &mockResourceRepo{resources: map[string]*models.Resource{
		"r1": {ID: "r1", OwnerID: "u1"},
	}}
	svc := NewResourceService(repo, &mockRoleResolver{canDelete: false}, &mockAuditor{}, nil, nil)

	err := svc.Delete(context.Background(), "r1", "u1", models.RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Contains(t, repo.resources, "r1")
}

func TestResourceServiceDeleteNotOwnedNotFound(t *testing.T) {
	repo := &mockResourceRepo{resources: map[string]*models.Resource{
		"r1": {ID: "r1", OwnerID: "otro"},
	}}
	svc := NewResourceService(repo, &mockRoleResolver{canDelete: true}, &mockAuditor{}, nil, nil)

	err := svc.Delete(context.Background(), "r1", "coord", models.RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestResourceServiceDeleteOwnedByDeleter(t *testing.T) {
	repo := &mockResourceRepo{resources: map[string]*models.Resource{
		"r1": {ID: "r1", OwnerID: "coord"},
	}}
	audit := &mockAuditor{}
	svc := NewResourceService(repo, &mockRoleResolver{canDelete: true}, audit, nil, nil)

	err := svc.Delete(context.Background(), "r1", "coord", models.RequestMeta{IP: "10.0.0.1"})
	require.NoError(t, err)
	assert.NotContains(t, repo.resources, "r1")
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionResourceDelete, audit.logs[0].Action)
}
