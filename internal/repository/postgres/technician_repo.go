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

type technicianRepo struct {
	db *sqlx.DB
}

// NewTechnicianRepo creates a new PostgreSQL-backed TechnicianRepository.
func NewTechnicianRepo(db *sqlx.DB) port.TechnicianRepository {
	return &technicianRepo{db: db}
}

func (r *technicianRepo) Create(ctx context.Context, t *domain.Technician) error {
	t.ID = uuid.New()
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `INSERT INTO technicians (id, employee_id, name, phone, role, joining_date, base_salary,
		status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.EmployeeID, t.Name, t.Phone, t.Role, t.JoiningDate, t.BaseSalary,
		t.Status, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmployeeID
		}
		return wrapErr("technicianRepo.Create", err)
	}
	return nil
}

func (r *technicianRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Technician, error) {
	var t domain.Technician
	err := r.db.GetContext(ctx, &t, "SELECT * FROM technicians WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, wrapErr("technicianRepo.GetByID", err)
	}
	return &t, nil
}

func (r *technicianRepo) List(ctx context.Context, offset, limit int) ([]domain.Technician, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM technicians"); err != nil {
		return nil, 0, wrapErr("technicianRepo.List count", err)
	}

	var techs []domain.Technician
	err := r.db.SelectContext(ctx, &techs,
		"SELECT * FROM technicians ORDER BY name LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, wrapErr("technicianRepo.List", err)
	}
	return techs, total, nil
}

func (r *technicianRepo) Update(ctx context.Context, t *domain.Technician) error {
	t.UpdatedAt = time.Now().UTC()
	query := `UPDATE technicians SET employee_id = $1, name = $2, phone = $3, role = $4,
		joining_date = $5, base_salary = $6, status = $7, updated_at = $8
		WHERE id = $9`
	result, err := r.db.ExecContext(ctx, query,
		t.EmployeeID, t.Name, t.Phone, t.Role, t.JoiningDate, t.BaseSalary, t.Status, t.UpdatedAt, t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmployeeID
		}
		return wrapErr("technicianRepo.Update", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *technicianRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM technicians WHERE id = $1", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrReferencedEntity
		}
		return wrapErr("technicianRepo.Delete", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
