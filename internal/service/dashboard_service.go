package service

import (
	"context"

	"repairdesk/internal/domain"
	"repairdesk/internal/port"
)

// DashboardService exposes aggregate shop metrics.
type DashboardService interface {
	GetMetrics(ctx context.Context) (*domain.DashboardMetrics, error)
}

type dashboardService struct {
	repo port.DashboardRepository
}

// NewDashboardService creates a new DashboardService implementation.
func NewDashboardService(repo port.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

func (s *dashboardService) GetMetrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	return s.repo.GetMetrics(ctx)
}
