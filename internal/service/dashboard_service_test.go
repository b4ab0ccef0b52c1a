package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"repairdesk/internal/domain"
	"repairdesk/internal/service"
	"repairdesk/mocks"
)

func TestDashboardService_GetMetrics(t *testing.T) {
	repo := new(mocks.MockDashboardRepo)
	svc := service.NewDashboardService(repo)
	repo.On("GetMetrics", mock.Anything).Return(&domain.DashboardMetrics{
		ActiveJobs:   4,
		PendingJobs:  2,
		TodayRevenue: dec("3540"),
		TotalDue:     dec("1200"),
		LowStock:     3,
	}, nil)

	m, err := svc.GetMetrics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, m.ActiveJobs)
	assert.True(t, m.TodayRevenue.Equal(dec("3540")))
	assert.Equal(t, 3, m.LowStock)
}

func TestDashboardService_GetMetrics_StoreDown(t *testing.T) {
	repo := new(mocks.MockDashboardRepo)
	svc := service.NewDashboardService(repo)
	repo.On("GetMetrics", mock.Anything).Return(nil, domain.ErrStoreUnavailable)

	_, err := svc.GetMetrics(context.Background())

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
