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

func TestPaymentService_Create_Settles(t *testing.T) {
	tests := []struct {
		name        string
		client      string
		discount    string
		advance     string
		wantBalance string
		wantStatus  domain.PaymentStatus
	}{
		{"balance due", "2000", "100", "500", "1400", domain.PaymentPending},
		{"fully paid", "2000", "0", "2000", "0", domain.PaymentPaid},
		{"overpaid", "1000", "200", "900", "-100", domain.PaymentPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockPaymentRepo)
			jobSheets := new(mocks.MockJobSheetRepo)
			svc := service.NewPaymentService(repo, jobSheets)

			jsID := uuid.New()
			jobSheets.On("GetByID", mock.Anything, jsID).Return(&domain.JobSheetDetail{JobSheet: domain.JobSheet{ID: jsID}}, nil)
			repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)

			p, err := svc.Create(context.Background(), service.PaymentInput{
				JobSheetID:   jsID,
				ClientAmount: dec(tt.client),
				Discount:     dec(tt.discount),
				AdvancePaid:  dec(tt.advance),
				PaymentMode:  "upi",
			})

			require.NoError(t, err)
			assert.True(t, p.Balance.Equal(dec(tt.wantBalance)), "balance %s", p.Balance)
			assert.Equal(t, tt.wantStatus, p.Status)
		})
	}
}

func TestPaymentService_Create_RejectsNegative(t *testing.T) {
	repo := new(mocks.MockPaymentRepo)
	jobSheets := new(mocks.MockJobSheetRepo)
	svc := service.NewPaymentService(repo, jobSheets)

	_, err := svc.Create(context.Background(), service.PaymentInput{
		JobSheetID:  uuid.New(),
		AdvancePaid: dec("-10"),
	})

	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
	jobSheets.AssertNotCalled(t, "GetByID")
	repo.AssertNotCalled(t, "Create")
}

func TestPaymentService_Create_UnknownJobSheet(t *testing.T) {
	repo := new(mocks.MockPaymentRepo)
	jobSheets := new(mocks.MockJobSheetRepo)
	svc := service.NewPaymentService(repo, jobSheets)

	jsID := uuid.New()
	jobSheets.On("GetByID", mock.Anything, jsID).Return(nil, domain.ErrNotFound)

	_, err := svc.Create(context.Background(), service.PaymentInput{JobSheetID: jsID})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
