package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"repairdesk/internal/domain"
	"repairdesk/internal/port"
)

// CatalogEntryInput is the DTO for creating a product type, brand or model.
type CatalogEntryInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	DisplayName string `json:"display_name" binding:"required,max=255"`
}

// BrandInput is the DTO for creating a brand.
type BrandInput struct {
	CatalogEntryInput
	ProductTypeID *uuid.UUID `json:"product_type_id"`
}

// ModelInput is the DTO for creating a device model.
type ModelInput struct {
	CatalogEntryInput
	BrandID uuid.UUID `json:"brand_id" binding:"required"`
}

// CatalogService defines the product catalog contract.
type CatalogService interface {
	ListProductTypes(ctx context.Context) ([]domain.ProductType, error)
	CreateProductType(ctx context.Context, input CatalogEntryInput) (*domain.ProductType, error)
	ListBrands(ctx context.Context, productTypeID *uuid.UUID) ([]domain.Brand, error)
	CreateBrand(ctx context.Context, input BrandInput) (*domain.Brand, error)
	ListModels(ctx context.Context, brandID uuid.UUID) ([]domain.DeviceModel, error)
	CreateModel(ctx context.Context, input ModelInput) (*domain.DeviceModel, error)
}

type catalogService struct {
	repo port.CatalogRepository
}

// NewCatalogService creates a new CatalogService implementation.
func NewCatalogService(repo port.CatalogRepository) CatalogService {
	return &catalogService{repo: repo}
}

// slug normalises catalog keys so "Air Conditioner" and "air_conditioner" collide.
func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

func (s *catalogService) ListProductTypes(ctx context.Context) ([]domain.ProductType, error) {
	return s.repo.ListProductTypes(ctx)
}

func (s *catalogService) CreateProductType(ctx context.Context, input CatalogEntryInput) (*domain.ProductType, error) {
	pt := &domain.ProductType{Name: slug(input.Name), DisplayName: input.DisplayName}
	if err := s.repo.CreateProductType(ctx, pt); err != nil {
		return nil, fmt.Errorf("catalogService.CreateProductType: %w", err)
	}
	return pt, nil
}

func (s *catalogService) ListBrands(ctx context.Context, productTypeID *uuid.UUID) ([]domain.Brand, error) {
	return s.repo.ListBrands(ctx, productTypeID)
}

func (s *catalogService) CreateBrand(ctx context.Context, input BrandInput) (*domain.Brand, error) {
	b := &domain.Brand{
		Name:          slug(input.Name),
		DisplayName:   input.DisplayName,
		ProductTypeID: input.ProductTypeID,
	}
	if err := s.repo.CreateBrand(ctx, b); err != nil {
		return nil, fmt.Errorf("catalogService.CreateBrand: %w", err)
	}
	return b, nil
}

func (s *catalogService) ListModels(ctx context.Context, brandID uuid.UUID) ([]domain.DeviceModel, error) {
	return s.repo.ListModels(ctx, brandID)
}

func (s *catalogService) CreateModel(ctx context.Context, input ModelInput) (*domain.DeviceModel, error) {
	m := &domain.DeviceModel{
		Name:        slug(input.Name),
		DisplayName: input.DisplayName,
		BrandID:     input.BrandID,
	}
	if err := s.repo.CreateModel(ctx, m); err != nil {
		return nil, fmt.Errorf("catalogService.CreateModel: %w", err)
	}
	return m, nil
}
