package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utec-virtual/recursos-api/internal/models"
	appErrors "github.com/utec-virtual/recursos-api/pkg/errors"
)

type mockDashboardRepo struct {
	resources []models.Resource
	err       error
}

func (m *mockDashboardRepo) ListAll(ctx context.Context) ([]models.Resource, error) {
	return m.resources, m.err
}

func TestDashboardServiceStats(t *testing.T) {
	reports, _, _, _ := newReportServiceTest()
	svc := NewDashboardService(&mockDashboardRepo{resources: sampleResources()}, reports, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Published)
	assert.Equal(t, 1, stats.Unpublished)
	assert.Equal(t, 67, stats.PublishedPct)
	require.Len(t, stats.ByPlatform, 2)
	assert.Equal(t, "Genially", stats.ByPlatform[0].Value)
}

func TestDashboardServiceStatsEmptyCatalogue(t *testing.T) {
	reports, _, _, _ := newReportServiceTest()
	svc := NewDashboardService(&mockDashboardRepo{}, reports, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.PublishedPct)
}

func TestDashboardServiceStatsRepoError(t *testing.T) {
	reports, _, _, _ := newReportServiceTest()
	svc := NewDashboardService(&mockDashboardRepo{err: errors.New("db down")}, reports, nil)

	_, err := svc.Stats(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}
