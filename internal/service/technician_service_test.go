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

	"repairdesk/internal/domain"
	"repairdesk/internal/service"
	"repairdesk/mocks"
)

func TestTechnicianService_Create_StartsActive(t *testing.T) {
	repo := new(mocks.MockTechnicianRepo)
	svc := service.NewTechnicianService(repo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Technician")).Return(nil)

	tech, err := svc.Create(context.Background(), service.TechnicianInput{
		EmployeeID:  "EMP-007",
		Name:        "Suresh",
		JoiningDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		BaseSalary:  dec("18000"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TechnicianActive, tech.Status)
	assert.True(t, tech.BaseSalary.Equal(dec("18000")))
}

func TestTechnicianService_Create_DuplicateEmployeeID(t *testing.T) {
	repo := new(mocks.MockTechnicianRepo)
	svc := service.NewTechnicianService(repo)
	repo.On("Create", mock.Anything, mock.Anything).
		Return(fmt.Errorf("technicianRepo.Create: %w", domain.ErrDuplicateEmployeeID))

	_, err := svc.Create(context.Background(), service.TechnicianInput{EmployeeID: "EMP-007", Name: "Suresh"})

	assert.ErrorIs(t, err, domain.ErrDuplicateEmployeeID)
}

func TestTechnicianService_Update_Status(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.TechnicianStatus
		wantErr error
	}{
		{"deactivate", domain.TechnicianInactive, nil},
		{"reactivate", domain.TechnicianActive, nil},
		{"unknown", domain.TechnicianStatus("on_leave"), domain.ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockTechnicianRepo)
			svc := service.NewTechnicianService(repo)

			id := uuid.New()
			repo.On("GetByID", mock.Anything, id).Return(&domain.Technician{ID: id, Status: domain.TechnicianActive}, nil)
			repo.On("Update", mock.Anything, mock.Anything).Return(nil)

			status := tt.status
			tech, err := svc.Update(context.Background(), id, service.UpdateTechnicianInput{Status: &status})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Update")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, tech.Status)
		})
	}
}
