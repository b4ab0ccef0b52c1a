package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"repairdesk/internal/domain"
	"repairdesk/internal/port"
)

type quotationRepo struct {
	db *sqlx.DB
}

// NewQuotationRepo creates a new PostgreSQL-backed QuotationRepository.
func NewQuotationRepo(db *sqlx.DB) port.QuotationRepository {
	return &quotationRepo{db: db}
}

func (r *quotationRepo) NumberExists(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM quotations WHERE quotation_number = $1)", number)
	if err != nil {
		return false, wrapErr("quotationRepo.NumberExists", err)
	}
	return exists, nil
}

func (r *quotationRepo) Create(ctx context.Context, q *domain.Quotation) error {
	q.ID = uuid.New()
	now := time.Now().UTC()
	q.CreatedAt = now
	q.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapErr("quotationRepo.Create begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO quotations (id, quotation_number, customer_id, customer_name, customer_phone,
		customer_address, city, state, pin_code, product_type, brand, model, model_number, serial_number,
		service_charge, discount, invoice_type, gst_rate, parts_total, subtotal, gst_amount, cgst_amount,
		sgst_amount, igst_amount, total_amount, payment_terms, validity_days, status, remarks,
		job_sheet_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19,
		$20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32)`

	_, err = tx.ExecContext(ctx, query,
		q.ID, q.QuotationNumber, q.CustomerID, q.CustomerName, q.CustomerPhone,
		q.CustomerAddress, q.City, q.State, q.PinCode, q.ProductType, q.Brand, q.Model, q.ModelNumber, q.SerialNumber,
		q.ServiceCharge, q.Discount, q.InvoiceType, q.GSTRate, q.PartsTotal, q.Subtotal, q.GSTAmount, q.CGSTAmount,
		q.SGSTAmount, q.IGSTAmount, q.TotalAmount, q.PaymentTerms, q.ValidityDays, q.Status, q.Remarks,
		q.JobSheetID, q.CreatedAt, q.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicateNumber
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return wrapErr("quotationRepo.Create", err)
	}

	if err := insertQuotationParts(ctx, tx, q); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return wrapErr("quotationRepo.Create commit", err)
	}
	return nil
}

func insertQuotationParts(ctx context.Context, tx *sqlx.Tx, q *domain.Quotation) error {
	const partQuery = `INSERT INTO quotation_parts (id, quotation_id, part_name, quantity, unit_price, amount)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range q.Parts {
		p := &q.Parts[i]
		p.ID = uuid.New()
		p.QuotationID = q.ID
		if _, err := tx.ExecContext(ctx, partQuery,
			p.ID, p.QuotationID, p.PartName, p.Quantity, p.UnitPrice, p.Amount); err != nil {
			return wrapErr("quotationRepo.insertParts", err)
		}
	}
	return nil
}

func (r *quotationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	var q domain.Quotation
	err := r.db.GetContext(ctx, &q, "SELECT * FROM quotations WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, wrapErr("quotationRepo.GetByID", err)
	}
	quotes := []domain.Quotation{q}
	if err := r.attachParts(ctx, quotes); err != nil {
		return nil, err
	}
	return &quotes[0], nil
}

func (r *quotationRepo) List(ctx context.Context, status domain.QuotationStatus, offset, limit int) ([]domain.Quotation, int, error) {
	var total int
	var quotes []domain.Quotation
	var err error
	if status != "" {
		err = r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM quotations WHERE status = $1", status)
	} else {
		err = r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM quotations")
	}
	if err != nil {
		return nil, 0, wrapErr("quotationRepo.List count", err)
	}

	if status != "" {
		err = r.db.SelectContext(ctx, &quotes,
			"SELECT * FROM quotations WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
			status, limit, offset)
	} else {
		err = r.db.SelectContext(ctx, &quotes,
			"SELECT * FROM quotations ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	}
	if err != nil {
		return nil, 0, wrapErr("quotationRepo.List", err)
	}
	if err := r.attachParts(ctx, quotes); err != nil {
		return nil, 0, err
	}
	return quotes, total, nil
}

func (r *quotationRepo) attachParts(ctx context.Context, quotes []domain.Quotation) error {
	if len(quotes) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(quotes))
	index := make(map[uuid.UUID]int, len(quotes))
	for i := range quotes {
		quotes[i].Parts = []domain.QuotationPart{}
		ids[i] = quotes[i].ID
		index[quotes[i].ID] = i
	}

	query, args, err := sqlx.In("SELECT * FROM quotation_parts WHERE quotation_id IN (?) ORDER BY part_name", ids)
	if err != nil {
		return fmt.Errorf("quotationRepo.attachParts: %w", err)
	}
	var parts []domain.QuotationPart
	if err := r.db.SelectContext(ctx, &parts, r.db.Rebind(query), args...); err != nil {
		return wrapErr("quotationRepo.attachParts", err)
	}
	for _, p := range parts {
		if i, ok := index[p.QuotationID]; ok {
			quotes[i].Parts = append(quotes[i].Parts, p)
		}
	}
	return nil
}

func (r *quotationRepo) Update(ctx context.Context, q *domain.Quotation, replaceParts bool) error {
	q.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapErr("quotationRepo.Update begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `UPDATE quotations SET customer_id = $1, customer_name = $2, customer_phone = $3,
		customer_address = $4, city = $5, state = $6, pin_code = $7, product_type = $8, brand = $9,
		model = $10, model_number = $11, serial_number = $12, service_charge = $13, discount = $14,
		invoice_type = $15, gst_rate = $16, parts_total = $17, subtotal = $18, gst_amount = $19,
		cgst_amount = $20, sgst_amount = $21, igst_amount = $22, total_amount = $23, payment_terms = $24,
		validity_days = $25, status = $26, remarks = $27, job_sheet_id = $28, updated_at = $29
		WHERE id = $30`
	result, err := tx.ExecContext(ctx, query,
		q.CustomerID, q.CustomerName, q.CustomerPhone,
		q.CustomerAddress, q.City, q.State, q.PinCode, q.ProductType, q.Brand,
		q.Model, q.ModelNumber, q.SerialNumber, q.ServiceCharge, q.Discount,
		q.InvoiceType, q.GSTRate, q.PartsTotal, q.Subtotal, q.GSTAmount,
		q.CGSTAmount, q.SGSTAmount, q.IGSTAmount, q.TotalAmount, q.PaymentTerms,
		q.ValidityDays, q.Status, q.Remarks, q.JobSheetID, q.UpdatedAt, q.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return wrapErr("quotationRepo.Update", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}

	if replaceParts {
		if _, err := tx.ExecContext(ctx, "DELETE FROM quotation_parts WHERE quotation_id = $1", q.ID); err != nil {
			return wrapErr("quotationRepo.Update parts", err)
		}
		if err := insertQuotationParts(ctx, tx, q); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapErr("quotationRepo.Update commit", err)
	}
	return nil
}

func (r *quotationRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.QuotationStatus, jobSheetID *uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE quotations SET status = $1, job_sheet_id = COALESCE($2, job_sheet_id), updated_at = NOW()
		 WHERE id = $3 AND status = $4`,
		to, jobSheetID, id, from)
	if err != nil {
		return wrapErr("quotationRepo.TransitionStatus", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *quotationRepo) LinkCustomer(ctx context.Context, id, customerID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE quotations SET customer_id = $1, updated_at = NOW()
		 WHERE id = $2 AND customer_id IS NULL`,
		customerID, id)
	if err != nil {
		return wrapErr("quotationRepo.LinkCustomer", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *quotationRepo) ListExpirable(ctx context.Context, now time.Time, limit int) ([]domain.Quotation, error) {
	var quotes []domain.Quotation
	err := r.db.SelectContext(ctx, &quotes,
		`SELECT * FROM quotations
		 WHERE status = 'sent' AND created_at + make_interval(days => validity_days) < $1
		 ORDER BY created_at
		 LIMIT $2`,
		now, limit)
	if err != nil {
		return nil, wrapErr("quotationRepo.ListExpirable", err)
	}
	return quotes, nil
}

func (r *quotationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapErr("quotationRepo.Delete begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM quotation_parts WHERE quotation_id = $1", id); err != nil {
		return wrapErr("quotationRepo.Delete parts", err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE job_sheets SET quotation_id = NULL WHERE quotation_id = $1", id); err != nil {
		return wrapErr("quotationRepo.Delete unlink", err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM quotations WHERE id = $1", id)
	if err != nil {
		return wrapErr("quotationRepo.Delete", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return wrapErr("quotationRepo.Delete commit", err)
	}
	return nil
}
