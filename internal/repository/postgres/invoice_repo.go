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

// invoiceRepo serves both invoice books; only the table names differ.
type invoiceRepo struct {
	db         *sqlx.DB
	kind       domain.DocumentKind
	table      string
	partsTable string
	name       string
}

// NewInvoiceRepo creates a PostgreSQL-backed InvoiceRepository over the invoice tables.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db, kind: domain.KindInvoice, table: "invoices", partsTable: "invoice_parts", name: "invoiceRepo"}
}

// NewDInvoiceRepo creates a PostgreSQL-backed InvoiceRepository over the D-invoice tables.
func NewDInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db, kind: domain.KindDInvoice, table: "d_invoices", partsTable: "d_invoice_parts", name: "dInvoiceRepo"}
}

func (r *invoiceRepo) Kind() domain.DocumentKind {
	return r.kind
}

func (r *invoiceRepo) NumberExists(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE invoice_number = $1)", r.table), number)
	if err != nil {
		return false, wrapErr(r.name+".NumberExists", err)
	}
	return exists, nil
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	inv.ID = uuid.New()
	inv.Kind = r.kind
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if inv.InvoiceDate.IsZero() {
		inv.InvoiceDate = now
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapErr(r.name+".Create begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := fmt.Sprintf(`INSERT INTO %s (id, invoice_number, job_sheet_id, invoice_type, service_charge,
		discount, gst_rate, parts_total, subtotal, gst_amount, cgst_amount, sgst_amount, igst_amount,
		total_amount, customer_state, payment_method, model_number, serial_number, brand, gstin,
		work_done, remarks, invoice_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19,
		$20, $21, $22, $23, $24, $25)`, r.table)

	_, err = tx.ExecContext(ctx, query,
		inv.ID, inv.InvoiceNumber, inv.JobSheetID, inv.InvoiceType, inv.ServiceCharge,
		inv.Discount, inv.GSTRate, inv.PartsTotal, inv.Subtotal, inv.GSTAmount, inv.CGSTAmount,
		inv.SGSTAmount, inv.IGSTAmount, inv.TotalAmount, inv.CustomerState, inv.PaymentMethod,
		inv.ModelNumber, inv.SerialNumber, inv.Brand, inv.GSTIN, inv.WorkDone, inv.Remarks,
		inv.InvoiceDate, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicateNumber
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return wrapErr(r.name+".Create", err)
	}

	partQuery := fmt.Sprintf(`INSERT INTO %s (id, invoice_id, part_name, quantity, unit_price, amount)
		VALUES ($1, $2, $3, $4, $5, $6)`, r.partsTable)
	for i := range inv.Parts {
		p := &inv.Parts[i]
		p.ID = uuid.New()
		p.InvoiceID = inv.ID
		if _, err := tx.ExecContext(ctx, partQuery,
			p.ID, p.InvoiceID, p.PartName, p.Quantity, p.UnitPrice, p.Amount); err != nil {
			return wrapErr(r.name+".Create part", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapErr(r.name+".Create commit", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv, fmt.Sprintf("SELECT * FROM %s WHERE id = $1", r.table), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, wrapErr(r.name+".GetByID", err)
	}
	inv.Kind = r.kind

	invoices := []domain.Invoice{inv}
	if err := r.attachParts(ctx, invoices); err != nil {
		return nil, err
	}
	return &invoices[0], nil
}

func (r *invoiceRepo) List(ctx context.Context, offset, limit int) ([]domain.Invoice, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) FROM %s", r.table)); err != nil {
		return nil, 0, wrapErr(r.name+".List count", err)
	}

	var invoices []domain.Invoice
	err := r.db.SelectContext(ctx, &invoices,
		fmt.Sprintf("SELECT * FROM %s ORDER BY created_at DESC LIMIT $1 OFFSET $2", r.table), limit, offset)
	if err != nil {
		return nil, 0, wrapErr(r.name+".List", err)
	}
	if err := r.attachParts(ctx, invoices); err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

func (r *invoiceRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.SelectContext(ctx, &invoices,
		fmt.Sprintf("SELECT * FROM %s WHERE invoice_date >= $1 AND invoice_date < $2 ORDER BY invoice_date, invoice_number", r.table),
		from, to)
	if err != nil {
		return nil, wrapErr(r.name+".ListByDateRange", err)
	}
	if err := r.attachParts(ctx, invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// attachParts loads the parts of every invoice in one query.
func (r *invoiceRepo) attachParts(ctx context.Context, invoices []domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(invoices))
	index := make(map[uuid.UUID]int, len(invoices))
	for i := range invoices {
		invoices[i].Kind = r.kind
		invoices[i].Parts = []domain.InvoicePart{}
		ids[i] = invoices[i].ID
		index[invoices[i].ID] = i
	}

	query, args, err := sqlx.In(
		fmt.Sprintf("SELECT * FROM %s WHERE invoice_id IN (?) ORDER BY part_name", r.partsTable), ids)
	if err != nil {
		return fmt.Errorf("%s.attachParts: %w", r.name, err)
	}
	var parts []domain.InvoicePart
	if err := r.db.SelectContext(ctx, &parts, r.db.Rebind(query), args...); err != nil {
		return wrapErr(r.name+".attachParts", err)
	}
	for _, p := range parts {
		if i, ok := index[p.InvoiceID]; ok {
			invoices[i].Parts = append(invoices[i].Parts, p)
		}
	}
	return nil
}

func (r *invoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	query := fmt.Sprintf(`UPDATE %s SET payment_method = $1, gstin = $2, work_done = $3, remarks = $4,
		model_number = $5, serial_number = $6, brand = $7, updated_at = $8
		WHERE id = $9`, r.table)
	result, err := r.db.ExecContext(ctx, query,
		inv.PaymentMethod, inv.GSTIN, inv.WorkDone, inv.Remarks,
		inv.ModelNumber, inv.SerialNumber, inv.Brand, inv.UpdatedAt, inv.ID)
	if err != nil {
		return wrapErr(r.name+".Update", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapErr(r.name+".Delete begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE invoice_id = $1", r.partsTable), id); err != nil {
		return wrapErr(r.name+".Delete parts", err)
	}
	result, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.table), id)
	if err != nil {
		return wrapErr(r.name+".Delete", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return wrapErr(r.name+".Delete commit", err)
	}
	return nil
}
