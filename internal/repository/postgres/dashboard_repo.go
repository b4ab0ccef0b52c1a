package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"repairdesk/internal/domain"
	"repairdesk/internal/port"
)

type dashboardRepo struct {
	db *sqlx.DB
}

// NewDashboardRepo creates a new PostgreSQL-backed DashboardRepository.
func NewDashboardRepo(db *sqlx.DB) port.DashboardRepository {
	return &dashboardRepo{db: db}
}

const dashboardMetricsQuery = `SELECT
	(SELECT COUNT(*) FROM job_sheets WHERE status = 'in_progress') AS active_jobs,
	(SELECT COUNT(*) FROM job_sheets
		WHERE status = 'completed' AND updated_at >= date_trunc('day', NOW())) AS completed_today,
	(SELECT COUNT(*) FROM job_sheets WHERE status = 'pending') AS pending_jobs,
	(SELECT COALESCE(SUM(internal_amount), 0) FROM payments
		WHERE created_at >= date_trunc('day', NOW())) AS today_revenue,
	(SELECT COALESCE(SUM(internal_amount), 0) FROM payments WHERE status = 'paid') AS total_collected,
	(SELECT COALESCE(SUM(balance), 0) FROM payments WHERE status = 'pending') AS total_due,
	(SELECT COUNT(CASE WHEN quantity > min_quantity THEN 1 END) FROM inventory) AS available_stock,
	(SELECT COUNT(CASE WHEN quantity > 0 AND quantity <= min_quantity THEN 1 END) FROM inventory) AS low_stock,
	(SELECT COUNT(CASE WHEN quantity <= 0 THEN 1 END) FROM inventory) AS out_of_stock`

func (r *dashboardRepo) GetMetrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	var m domain.DashboardMetrics
	if err := r.db.GetContext(ctx, &m, dashboardMetricsQuery); err != nil {
		return nil, wrapErr("dashboardRepo.GetMetrics", err)
	}
	return &m, nil
}
