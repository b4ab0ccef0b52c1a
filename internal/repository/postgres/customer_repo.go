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

type customerRepo struct {
	db *sqlx.DB
}

// NewCustomerRepo creates a new PostgreSQL-backed CustomerRepository.
func NewCustomerRepo(db *sqlx.DB) port.CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(ctx context.Context, c *domain.Customer) error {
	c.ID = uuid.New()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `INSERT INTO customers (id, name, phone, alternate_phone, address, city, state, pin_code,
		created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Phone, c.AlternatePhone, c.Address, c.City, c.State, c.PinCode,
		c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return wrapErr("customerRepo.Create", err)
	}
	return nil
}

func (r *customerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.GetContext(ctx, &c, "SELECT * FROM customers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, wrapErr("customerRepo.GetByID", err)
	}
	return &c, nil
}

func (r *customerRepo) List(ctx context.Context, search string, offset, limit int) ([]domain.Customer, int, error) {
	where := ""
	args := []interface{}{}
	if search != "" {
		where = " WHERE name ILIKE $1 OR phone ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM customers"+where, args...); err != nil {
		return nil, 0, wrapErr("customerRepo.List count", err)
	}

	n := len(args)
	query := "SELECT * FROM customers" + where +
		" ORDER BY created_at DESC LIMIT $" + itoa(n+1) + " OFFSET $" + itoa(n+2)
	args = append(args, limit, offset)

	var customers []domain.Customer
	if err := r.db.SelectContext(ctx, &customers, query, args...); err != nil {
		return nil, 0, wrapErr("customerRepo.List", err)
	}
	return customers, total, nil
}

func (r *customerRepo) Update(ctx context.Context, c *domain.Customer) error {
	c.UpdatedAt = time.Now().UTC()
	query := `UPDATE customers SET name = $1, phone = $2, alternate_phone = $3, address = $4,
		city = $5, state = $6, pin_code = $7, updated_at = $8
		WHERE id = $9`
	result, err := r.db.ExecContext(ctx, query,
		c.Name, c.Phone, c.AlternatePhone, c.Address, c.City, c.State, c.PinCode, c.UpdatedAt, c.ID)
	if err != nil {
		return wrapErr("customerRepo.Update", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *customerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrReferencedEntity
		}
		return wrapErr("customerRepo.Delete", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
