package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"repairdesk/internal/domain"
	"repairdesk/internal/service"
	"repairdesk/mocks"
)

func TestInventoryService_Create_StockStatus(t *testing.T) {
	low := 5
	tests := []struct {
		name     string
		quantity int
		min      *int
		want     domain.StockStatus
	}{
		{"out of stock", 0, nil, domain.StockOutOfStock},
		{"at threshold", 5, &low, domain.StockLow},
		{"available", 6, &low, domain.StockAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockInventoryRepo)
			svc := service.NewInventoryService(repo)
			repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.InventoryItem")).Return(nil)

			view, err := svc.Create(context.Background(), service.InventoryInput{
				Name:        "USB-C cable",
				Category:    domain.CategoryAccessories,
				Quantity:    tt.quantity,
				MinQuantity: tt.min,
				UnitPrice:   dec("149"),
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, view.StockStatus)
		})
	}
}

func TestInventoryService_Create_DefaultMinimum(t *testing.T) {
	repo := new(mocks.MockInventoryRepo)
	svc := service.NewInventoryService(repo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(item *domain.InventoryItem) bool {
		return item.MinQuantity == domain.DefaultMinQuantity
	})).Return(nil)

	_, err := svc.Create(context.Background(), service.InventoryInput{
		Name:     "Screen guard",
		Category: domain.CategorySpares,
		Quantity: 40,
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestInventoryService_Create_RejectsNegativePrice(t *testing.T) {
	repo := new(mocks.MockInventoryRepo)
	svc := service.NewInventoryService(repo)

	_, err := svc.Create(context.Background(), service.InventoryInput{
		Name:      "Battery",
		Category:  domain.CategorySpares,
		UnitPrice: dec("-1"),
	})

	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
	repo.AssertNotCalled(t, "Create")
}

func TestInventoryService_Update_RecomputesStatus(t *testing.T) {
	repo := new(mocks.MockInventoryRepo)
	svc := service.NewInventoryService(repo)

	id := uuid.New()
	item := &domain.InventoryItem{ID: id, Name: "Charger", Quantity: 20, MinQuantity: 5}
	repo.On("GetByID", mock.Anything, id).Return(item, nil)
	repo.On("Update", mock.Anything, item).Return(nil)

	qty := 3
	view, err := svc.Update(context.Background(), id, service.UpdateInventoryInput{Quantity: &qty})

	require.NoError(t, err)
	assert.Equal(t, 3, view.Quantity)
	assert.Equal(t, domain.StockLow, view.StockStatus)
}
