package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/utec-virtual/recursos-api/internal/dto"
	"github.com/utec-virtual/recursos-api/internal/models"
	appErrors "github.com/utec-virtual/recursos-api/pkg/errors"
)

type dashboardResourceRepository interface {
	ListAll(ctx context.Context) ([]models.Resource, error)
}

type resourceAggregator interface {
	Aggregate(resources []models.Resource) dto.ReportStats
}

// DashboardService computes catalogue-wide statistics. Every call
// reads fresh data; nothing is cached.
type DashboardService struct {
	resources dashboardResourceRepository
	reports   resourceAggregator
	logger    *zap.Logger
}

// NewDashboardService constructs a DashboardService instance.
func NewDashboardService(resources dashboardResourceRepository, reports resourceAggregator, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{resources: resources, reports: reports, logger: logger}
}

// Stats aggregates every non-deleted resource through the report
// engine's aggregation.
func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	resources, err := s.resources.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load resources")
	}

	stats := s.reports.Aggregate(resources)
	return &dto.DashboardStatsResponse{
		Total:        stats.Total,
		Published:    stats.Published,
		Unpublished:  stats.Unpublished,
		PublishedPct: stats.PublishedPct,
		ByPlatform:   stats.ByPlatform,
		ByFaculty:    stats.ByFaculty,
		ByType:       stats.ByType,
		ByCycle:      stats.ByCycle,
	}, nil
}
