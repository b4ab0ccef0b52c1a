package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"repairdesk/internal/domain"
	"repairdesk/internal/port"
)

type paymentRepo struct {
	db *sqlx.DB
}

// NewPaymentRepo creates a new PostgreSQL-backed PaymentRepository.
func NewPaymentRepo(db *sqlx.DB) port.PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()

	query := `INSERT INTO payments (id, job_sheet_id, client_amount, internal_amount, discount,
		advance_paid, balance, payment_mode, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.JobSheetID, p.ClientAmount, p.InternalAmount, p.Discount,
		p.AdvancePaid, p.Balance, p.PaymentMode, p.Status, p.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return wrapErr("paymentRepo.Create", err)
	}
	return nil
}

func (r *paymentRepo) List(ctx context.Context, offset, limit int) ([]domain.Payment, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM payments"); err != nil {
		return nil, 0, wrapErr("paymentRepo.List count", err)
	}

	var payments []domain.Payment
	err := r.db.SelectContext(ctx, &payments,
		"SELECT * FROM payments ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, wrapErr("paymentRepo.List", err)
	}
	return payments, total, nil
}

func (r *paymentRepo) ListByJobSheet(ctx context.Context, jobSheetID uuid.UUID) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.SelectContext(ctx, &payments,
		"SELECT * FROM payments WHERE job_sheet_id = $1 ORDER BY created_at DESC", jobSheetID)
	if err != nil {
		return nil, wrapErr("paymentRepo.ListByJobSheet", err)
	}
	return payments, nil
}
