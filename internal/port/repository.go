package port

import (
	"context"

	"github.com/google/uuid"

	"repairdesk/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	Count(ctx context.Context) (int, error)
}

// CustomerRepository defines the contract for customer persistence.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, search string, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TechnicianRepository defines the contract for technician persistence.
type TechnicianRepository interface {
	Create(ctx context.Context, tech *domain.Technician) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Technician, error)
	List(ctx context.Context, offset, limit int) ([]domain.Technician, int, error)
	Update(ctx context.Context, tech *domain.Technician) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CatalogRepository defines the contract for product type, brand and model lookups.
type CatalogRepository interface {
	ListProductTypes(ctx context.Context) ([]domain.ProductType, error)
	CreateProductType(ctx context.Context, pt *domain.ProductType) error
	ListBrands(ctx context.Context, productTypeID *uuid.UUID) ([]domain.Brand, error)
	CreateBrand(ctx context.Context, brand *domain.Brand) error
	ListModels(ctx context.Context, brandID uuid.UUID) ([]domain.DeviceModel, error)
	CreateModel(ctx context.Context, model *domain.DeviceModel) error
}

// InventoryRepository defines the contract for stock item persistence.
type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error)
	List(ctx context.Context, offset, limit int) ([]domain.InventoryItem, int, error)
	Update(ctx context.Context, item *domain.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentRepository defines the contract for payment persistence.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	List(ctx context.Context, offset, limit int) ([]domain.Payment, int, error)
	ListByJobSheet(ctx context.Context, jobSheetID uuid.UUID) ([]domain.Payment, error)
}

// DashboardRepository computes aggregate shop metrics.
type DashboardRepository interface {
	GetMetrics(ctx context.Context) (*domain.DashboardMetrics, error)
}
