package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"repairdesk/internal/domain"
	"repairdesk/internal/service"
	"repairdesk/mocks"
)

func fixedClock() time.Time {
	return time.Date(2025, 7, 14, 10, 0, 0, 0, time.UTC)
}

func testNumbering() service.NumberingOptions {
	return service.NumberingOptions{MaxCandidates: 50, WriteRetries: 3, Now: fixedClock}
}

func TestJobSheetService_Create_AllocatesLowestFreeNumber(t *testing.T) {
	repo := new(mocks.MockJobSheetRepo)
	customers := new(mocks.MockCustomerRepo)
	svc := service.NewJobSheetService(repo, customers, testNumbering(), zap.NewNop())

	customerID := uuid.New()
	agentID := uuid.New()
	newID := uuid.New()

	customers.On("GetByID", mock.Anything, customerID).Return(&domain.Customer{ID: customerID}, nil)
	repo.On("NumberExists", mock.Anything, "JS-2025-001").Return(true, nil)
	repo.On("NumberExists", mock.Anything, "JS-2025-002").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(js *domain.JobSheet) bool {
		return js.JobID == "JS-2025-002" &&
			js.Status == domain.JobStatusPending &&
			js.WarrantyStatus == domain.WarrantyOut &&
			js.JobMode == domain.JobModeIndoor &&
			*js.AgentID == agentID
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.JobSheet).ID = newID
	}).Return(nil)
	repo.On("GetByID", mock.Anything, newID).Return(&domain.JobSheetDetail{
		JobSheet: domain.JobSheet{ID: newID, JobID: "JS-2025-002"},
	}, nil)

	js, err := svc.Create(context.Background(), service.CreateJobSheetInput{CustomerID: customerID}, &agentID)

	require.NoError(t, err)
	assert.Equal(t, "JS-2025-002", js.JobID)
	repo.AssertExpectations(t)
	customers.AssertExpectations(t)
}

func TestJobSheetService_Create_RetriesOnDuplicate(t *testing.T) {
	repo := new(mocks.MockJobSheetRepo)
	customers := new(mocks.MockCustomerRepo)
	svc := service.NewJobSheetService(repo, customers, testNumbering(), zap.NewNop())

	customerID := uuid.New()
	customers.On("GetByID", mock.Anything, customerID).Return(&domain.Customer{ID: customerID}, nil)

	// The first lookup sees 001 free, but another writer commits it before us.
	repo.On("NumberExists", mock.Anything, "JS-2025-001").Return(false, nil).Once()
	repo.On("NumberExists", mock.Anything, "JS-2025-001").Return(true, nil)
	repo.On("NumberExists", mock.Anything, "JS-2025-002").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(js *domain.JobSheet) bool { return js.JobID == "JS-2025-001" })).
		Return(fmt.Errorf("jobSheetRepo.Create: %w", domain.ErrDuplicateNumber)).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(js *domain.JobSheet) bool { return js.JobID == "JS-2025-002" })).
		Return(nil).Once()
	repo.On("GetByID", mock.Anything, mock.Anything).Return(&domain.JobSheetDetail{
		JobSheet: domain.JobSheet{JobID: "JS-2025-002"},
	}, nil)

	js, err := svc.Create(context.Background(), service.CreateJobSheetInput{CustomerID: customerID}, nil)

	require.NoError(t, err)
	assert.Equal(t, "JS-2025-002", js.JobID)
	repo.AssertNumberOfCalls(t, "Create", 2)
}

func TestJobSheetService_Create_StoreUnavailable(t *testing.T) {
	repo := new(mocks.MockJobSheetRepo)
	customers := new(mocks.MockCustomerRepo)
	svc := service.NewJobSheetService(repo, customers, testNumbering(), zap.NewNop())

	customerID := uuid.New()
	customers.On("GetByID", mock.Anything, customerID).Return(&domain.Customer{ID: customerID}, nil)
	repo.On("NumberExists", mock.Anything, "JS-2025-001").Return(false, domain.ErrStoreUnavailable)

	_, err := svc.Create(context.Background(), service.CreateJobSheetInput{CustomerID: customerID}, nil)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	repo.AssertNotCalled(t, "Create")
}

func TestJobSheetService_Create_UnknownCustomer(t *testing.T) {
	repo := new(mocks.MockJobSheetRepo)
	customers := new(mocks.MockCustomerRepo)
	svc := service.NewJobSheetService(repo, customers, testNumbering(), zap.NewNop())

	customerID := uuid.New()
	customers.On("GetByID", mock.Anything, customerID).Return(nil, domain.ErrNotFound)

	_, err := svc.Create(context.Background(), service.CreateJobSheetInput{CustomerID: customerID}, nil)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "NumberExists")
}

func TestJobSheetService_Update_TechnicianRules(t *testing.T) {
	techA := uuid.New()
	techB := uuid.New()

	tests := []struct {
		name       string
		status     domain.JobStatus
		previous   *uuid.UUID
		input      service.UpdateJobSheetInput
		wantStatus domain.JobStatus
		wantTech   *uuid.UUID
	}{
		{
			name:       "assign to pending starts the job",
			status:     domain.JobStatusPending,
			input:      service.UpdateJobSheetInput{TechnicianID: &techA},
			wantStatus: domain.JobStatusInProgress,
			wantTech:   &techA,
		},
		{
			name:       "reassign keeps status",
			status:     domain.JobStatusInProgress,
			previous:   &techA,
			input:      service.UpdateJobSheetInput{TechnicianID: &techB},
			wantStatus: domain.JobStatusInProgress,
			wantTech:   &techB,
		},
		{
			name:       "clear in-progress returns to pending",
			status:     domain.JobStatusInProgress,
			previous:   &techA,
			input:      service.UpdateJobSheetInput{ClearTechnician: true},
			wantStatus: domain.JobStatusPending,
		},
		{
			name:       "clear completed keeps status",
			status:     domain.JobStatusCompleted,
			previous:   &techA,
			input:      service.UpdateJobSheetInput{ClearTechnician: true},
			wantStatus: domain.JobStatusCompleted,
		},
		{
			name:       "assign to completed keeps status",
			status:     domain.JobStatusCompleted,
			input:      service.UpdateJobSheetInput{TechnicianID: &techA},
			wantStatus: domain.JobStatusCompleted,
			wantTech:   &techA,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockJobSheetRepo)
			svc := service.NewJobSheetService(repo, new(mocks.MockCustomerRepo), testNumbering(), zap.NewNop())

			id := uuid.New()
			current := &domain.JobSheetDetail{JobSheet: domain.JobSheet{ID: id, Status: tt.status, TechnicianID: tt.previous}}
			repo.On("GetByID", mock.Anything, id).Return(current, nil)

			var saved *domain.JobSheet
			repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.JobSheet")).
				Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.JobSheet) }).
				Return(nil)

			_, err := svc.Update(context.Background(), id, tt.input)

			require.NoError(t, err)
			require.NotNil(t, saved)
			assert.Equal(t, tt.wantStatus, saved.Status)
			assert.Equal(t, tt.wantTech, saved.TechnicianID)
		})
	}
}

func TestJobSheetService_UpdateStatus_Invalid(t *testing.T) {
	repo := new(mocks.MockJobSheetRepo)
	svc := service.NewJobSheetService(repo, new(mocks.MockCustomerRepo), testNumbering(), zap.NewNop())

	err := svc.UpdateStatus(context.Background(), uuid.New(), "lost")

	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	repo.AssertNotCalled(t, "UpdateStatus")
}
