package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"repairdesk/internal/domain"
	"repairdesk/internal/port"
)

type catalogRepo struct {
	db *sqlx.DB
}

// NewCatalogRepo creates a new PostgreSQL-backed CatalogRepository.
func NewCatalogRepo(db *sqlx.DB) port.CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) ListProductTypes(ctx context.Context) ([]domain.ProductType, error) {
	var out []domain.ProductType
	if err := r.db.SelectContext(ctx, &out, "SELECT * FROM product_types ORDER BY display_name"); err != nil {
		return nil, wrapErr("catalogRepo.ListProductTypes", err)
	}
	return out, nil
}

func (r *catalogRepo) CreateProductType(ctx context.Context, pt *domain.ProductType) error {
	pt.ID = uuid.New()
	pt.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO product_types (id, name, display_name, created_at) VALUES ($1, $2, $3, $4)",
		pt.ID, pt.Name, pt.DisplayName, pt.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCatalogName
		}
		return wrapErr("catalogRepo.CreateProductType", err)
	}
	return nil
}

func (r *catalogRepo) ListBrands(ctx context.Context, productTypeID *uuid.UUID) ([]domain.Brand, error) {
	var out []domain.Brand
	var err error
	if productTypeID != nil {
		err = r.db.SelectContext(ctx, &out,
			"SELECT * FROM brands WHERE product_type_id = $1 ORDER BY display_name", *productTypeID)
	} else {
		err = r.db.SelectContext(ctx, &out, "SELECT * FROM brands ORDER BY display_name")
	}
	if err != nil {
		return nil, wrapErr("catalogRepo.ListBrands", err)
	}
	return out, nil
}

func (r *catalogRepo) CreateBrand(ctx context.Context, b *domain.Brand) error {
	b.ID = uuid.New()
	b.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO brands (id, name, display_name, product_type_id, created_at) VALUES ($1, $2, $3, $4, $5)",
		b.ID, b.Name, b.DisplayName, b.ProductTypeID, b.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicateCatalogName
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return wrapErr("catalogRepo.CreateBrand", err)
	}
	return nil
}

func (r *catalogRepo) ListModels(ctx context.Context, brandID uuid.UUID) ([]domain.DeviceModel, error) {
	var out []domain.DeviceModel
	err := r.db.SelectContext(ctx, &out,
		"SELECT * FROM models WHERE brand_id = $1 ORDER BY display_name", brandID)
	if err != nil {
		return nil, wrapErr("catalogRepo.ListModels", err)
	}
	return out, nil
}

func (r *catalogRepo) CreateModel(ctx context.Context, m *domain.DeviceModel) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO models (id, name, display_name, brand_id, created_at) VALUES ($1, $2, $3, $4, $5)",
		m.ID, m.Name, m.DisplayName, m.BrandID, m.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicateCatalogName
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return wrapErr("catalogRepo.CreateModel", err)
	}
	return nil
}
