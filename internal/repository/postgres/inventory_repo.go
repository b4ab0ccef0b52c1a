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

type inventoryRepo struct {
	db *sqlx.DB
}

// NewInventoryRepo creates a new PostgreSQL-backed InventoryRepository.
func NewInventoryRepo(db *sqlx.DB) port.InventoryRepository {
	return &inventoryRepo{db: db}
}

func (r *inventoryRepo) Create(ctx context.Context, item *domain.InventoryItem) error {
	item.ID = uuid.New()
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	query := `INSERT INTO inventory (id, name, category, quantity, min_quantity, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.Category, item.Quantity, item.MinQuantity, item.UnitPrice,
		item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return wrapErr("inventoryRepo.Create", err)
	}
	return nil
}

func (r *inventoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := r.db.GetContext(ctx, &item, "SELECT * FROM inventory WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, wrapErr("inventoryRepo.GetByID", err)
	}
	return &item, nil
}

func (r *inventoryRepo) List(ctx context.Context, offset, limit int) ([]domain.InventoryItem, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM inventory"); err != nil {
		return nil, 0, wrapErr("inventoryRepo.List count", err)
	}

	var items []domain.InventoryItem
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM inventory ORDER BY name LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, wrapErr("inventoryRepo.List", err)
	}
	return items, total, nil
}

func (r *inventoryRepo) Update(ctx context.Context, item *domain.InventoryItem) error {
	item.UpdatedAt = time.Now().UTC()
	query := `UPDATE inventory SET name = $1, category = $2, quantity = $3, min_quantity = $4,
		unit_price = $5, updated_at = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query,
		item.Name, item.Category, item.Quantity, item.MinQuantity, item.UnitPrice, item.UpdatedAt, item.ID)
	if err != nil {
		return wrapErr("inventoryRepo.Update", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *inventoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM inventory WHERE id = $1", id)
	if err != nil {
		return wrapErr("inventoryRepo.Delete", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
