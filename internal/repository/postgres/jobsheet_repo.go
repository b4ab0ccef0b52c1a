package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"repairdesk/internal/domain"
	"repairdesk/internal/port"
)

type jobSheetRepo struct {
	db *sqlx.DB
}

// NewJobSheetRepo creates a new PostgreSQL-backed JobSheetRepository.
func NewJobSheetRepo(db *sqlx.DB) port.JobSheetRepository {
	return &jobSheetRepo{db: db}
}

const jobSheetDetailSelect = `SELECT js.*,
	c.name AS customer_name, c.phone AS customer_phone, c.state AS customer_state,
	t.name AS technician_name
FROM job_sheets js
JOIN customers c ON c.id = js.customer_id
LEFT JOIN technicians t ON t.id = js.technician_id`

func (r *jobSheetRepo) NumberExists(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM job_sheets WHERE job_id = $1)", number)
	if err != nil {
		return false, wrapErr("jobSheetRepo.NumberExists", err)
	}
	return exists, nil
}

func (r *jobSheetRepo) Create(ctx context.Context, js *domain.JobSheet) error {
	js.ID = uuid.New()
	now := time.Now().UTC()
	js.CreatedAt = now
	js.UpdatedAt = now

	query := `INSERT INTO job_sheets (id, job_id, customer_id, product_type_id, brand_id, model_id,
		model_number, serial_number, purchase_date, warranty_status, job_type, job_classification,
		job_mode, technician_id, agent_id, customer_complaint, reported_issue, agent_remarks,
		job_start_at, status, estimated_amount, quotation_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		$19, $20, $21, $22, $23, $24)`

	_, err := r.db.ExecContext(ctx, query,
		js.ID, js.JobID, js.CustomerID, js.ProductTypeID, js.BrandID, js.ModelID,
		js.ModelNumber, js.SerialNumber, js.PurchaseDate, js.WarrantyStatus, js.JobType, js.JobClassification,
		js.JobMode, js.TechnicianID, js.AgentID, js.CustomerComplaint, js.ReportedIssue, js.AgentRemarks,
		js.JobStartAt, js.Status, js.EstimatedAmount, js.QuotationID, js.CreatedAt, js.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicateNumber
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return wrapErr("jobSheetRepo.Create", err)
	}
	return nil
}

func (r *jobSheetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.JobSheetDetail, error) {
	var js domain.JobSheetDetail
	err := r.db.GetContext(ctx, &js, jobSheetDetailSelect+" WHERE js.id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, wrapErr("jobSheetRepo.GetByID", err)
	}
	return &js, nil
}

func (r *jobSheetRepo) List(ctx context.Context, status domain.JobStatus, offset, limit int) ([]domain.JobSheetDetail, int, error) {
	var total int
	var sheets []domain.JobSheetDetail
	if status != "" {
		if err := r.db.GetContext(ctx, &total,
			"SELECT COUNT(*) FROM job_sheets WHERE status = $1", status); err != nil {
			return nil, 0, wrapErr("jobSheetRepo.List count", err)
		}
		if err := r.db.SelectContext(ctx, &sheets,
			jobSheetDetailSelect+" WHERE js.status = $1 ORDER BY js.created_at DESC LIMIT $2 OFFSET $3",
			status, limit, offset); err != nil {
			return nil, 0, wrapErr("jobSheetRepo.List", err)
		}
		return sheets, total, nil
	}

	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM job_sheets"); err != nil {
		return nil, 0, wrapErr("jobSheetRepo.List count", err)
	}
	if err := r.db.SelectContext(ctx, &sheets,
		jobSheetDetailSelect+" ORDER BY js.created_at DESC LIMIT $1 OFFSET $2", limit, offset); err != nil {
		return nil, 0, wrapErr("jobSheetRepo.List", err)
	}
	return sheets, total, nil
}

func (r *jobSheetRepo) Update(ctx context.Context, js *domain.JobSheet) error {
	js.UpdatedAt = time.Now().UTC()
	query := `UPDATE job_sheets SET customer_id = $1, product_type_id = $2, brand_id = $3, model_id = $4,
		model_number = $5, serial_number = $6, purchase_date = $7, warranty_status = $8, job_type = $9,
		job_classification = $10, job_mode = $11, technician_id = $12, agent_id = $13,
		customer_complaint = $14, reported_issue = $15, agent_remarks = $16, job_start_at = $17,
		status = $18, estimated_amount = $19, quotation_id = $20, updated_at = $21
		WHERE id = $22`
	result, err := r.db.ExecContext(ctx, query,
		js.CustomerID, js.ProductTypeID, js.BrandID, js.ModelID,
		js.ModelNumber, js.SerialNumber, js.PurchaseDate, js.WarrantyStatus, js.JobType,
		js.JobClassification, js.JobMode, js.TechnicianID, js.AgentID,
		js.CustomerComplaint, js.ReportedIssue, js.AgentRemarks, js.JobStartAt,
		js.Status, js.EstimatedAmount, js.QuotationID, js.UpdatedAt, js.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return wrapErr("jobSheetRepo.Update", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobSheetRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE job_sheets SET status = $1, updated_at = NOW() WHERE id = $2", status, id)
	if err != nil {
		return wrapErr("jobSheetRepo.UpdateStatus", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobSheetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM job_sheets WHERE id = $1", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrReferencedEntity
		}
		return wrapErr("jobSheetRepo.Delete", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
