package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"repairdesk/internal/domain"
	"repairdesk/internal/port"
)

// InventoryInput is the DTO for creating a stock item.
type InventoryInput struct {
	Name        string                   `json:"name" binding:"required,max=255"`
	Category    domain.InventoryCategory `json:"category" binding:"required,oneof=accessories spares devices"`
	Quantity    int                      `json:"quantity" binding:"min=0"`
	MinQuantity *int                     `json:"min_quantity" binding:"omitempty,min=0"`
	UnitPrice   decimal.Decimal          `json:"unit_price"`
}

// UpdateInventoryInput is the DTO for updating a stock item.
type UpdateInventoryInput struct {
	Name        *string                   `json:"name" binding:"omitempty,max=255"`
	Category    *domain.InventoryCategory `json:"category" binding:"omitempty,oneof=accessories spares devices"`
	Quantity    *int                      `json:"quantity" binding:"omitempty,min=0"`
	MinQuantity *int                      `json:"min_quantity" binding:"omitempty,min=0"`
	UnitPrice   *decimal.Decimal          `json:"unit_price"`
}

// InventoryView is a stock item with its derived stock status.
type InventoryView struct {
	domain.InventoryItem
	StockStatus domain.StockStatus `json:"stock_status"`
}

func newInventoryView(item domain.InventoryItem) InventoryView {
	return InventoryView{InventoryItem: item, StockStatus: item.StockStatus()}
}

// InventoryService defines the stock management contract.
type InventoryService interface {
	Create(ctx context.Context, input InventoryInput) (*InventoryView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*InventoryView, error)
	List(ctx context.Context, offset, limit int) ([]InventoryView, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInventoryInput) (*InventoryView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type inventoryService struct {
	repo port.InventoryRepository
}

// NewInventoryService creates a new InventoryService implementation.
func NewInventoryService(repo port.InventoryRepository) InventoryService {
	return &inventoryService{repo: repo}
}

func (s *inventoryService) Create(ctx context.Context, input InventoryInput) (*InventoryView, error) {
	if input.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("inventoryService.Create: unit price: %w", domain.ErrNegativeAmount)
	}
	item := domain.InventoryItem{
		Name:        input.Name,
		Category:    input.Category,
		Quantity:    input.Quantity,
		MinQuantity: domain.DefaultMinQuantity,
		UnitPrice:   input.UnitPrice,
	}
	if input.MinQuantity != nil {
		item.MinQuantity = *input.MinQuantity
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, fmt.Errorf("inventoryService.Create: %w", err)
	}
	view := newInventoryView(item)
	return &view, nil
}

func (s *inventoryService) GetByID(ctx context.Context, id uuid.UUID) (*InventoryView, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := newInventoryView(*item)
	return &view, nil
}

func (s *inventoryService) List(ctx context.Context, offset, limit int) ([]InventoryView, int, error) {
	items, total, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	views := make([]InventoryView, len(items))
	for i, item := range items {
		views[i] = newInventoryView(item)
	}
	return views, total, nil
}

func (s *inventoryService) Update(ctx context.Context, id uuid.UUID, input UpdateInventoryInput) (*InventoryView, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.MinQuantity != nil {
		item.MinQuantity = *input.MinQuantity
	}
	if input.UnitPrice != nil {
		item.UnitPrice = *input.UnitPrice
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("inventoryService.Update: %w", err)
	}
	view := newInventoryView(*item)
	return &view, nil
}

func (s *inventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
