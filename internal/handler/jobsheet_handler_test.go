package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"repairdesk/internal/domain"
	"repairdesk/internal/handler"
	"repairdesk/internal/middleware"
	"repairdesk/internal/service"
	"repairdesk/mocks"
)

func TestJobSheetHandler_Create_UsesSignedInAgent(t *testing.T) {
	mockJS := new(mocks.MockJobSheetService)
	h := handler.NewJobSheetHandler(mockJS, nil)

	agentID := uuid.New()
	customerID := uuid.New()
	created := &domain.JobSheetDetail{JobSheet: domain.JobSheet{ID: uuid.New(), JobID: "JS-2025-001"}}

	mockJS.On("Create", mock.Anything,
		mock.MatchedBy(func(in service.CreateJobSheetInput) bool { return in.CustomerID == customerID }),
		&agentID,
	).Return(created, nil)

	w, c := postJSON(t, "/api/v1/job-sheets", map[string]interface{}{
		"customer_id":        customerID,
		"customer_complaint": "screen flickers",
	})
	c.Set(middleware.ContextKeyUserID, agentID)
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockJS.AssertExpectations(t)
}

func TestJobSheetHandler_Create_DuplicateNumber(t *testing.T) {
	mockJS := new(mocks.MockJobSheetService)
	h := handler.NewJobSheetHandler(mockJS, nil)

	mockJS.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateNumber)

	w, c := postJSON(t, "/api/v1/job-sheets", map[string]interface{}{"customer_id": uuid.New()})
	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_NUMBER", decodeResponse(t, w).Error.Code)
}

func TestJobSheetHandler_List_InvalidStatus(t *testing.T) {
	mockJS := new(mocks.MockJobSheetService)
	h := handler.NewJobSheetHandler(mockJS, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/job-sheets?status=lost", http.NoBody)
	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockJS.AssertNotCalled(t, "List")
}

func TestJobSheetHandler_UpdateStatus(t *testing.T) {
	mockJS := new(mocks.MockJobSheetService)
	h := handler.NewJobSheetHandler(mockJS, nil)

	id := uuid.New()
	mockJS.On("UpdateStatus", mock.Anything, id, domain.JobStatusDelivered).Return(nil)
	mockJS.On("GetByID", mock.Anything, id).Return(&domain.JobSheetDetail{
		JobSheet: domain.JobSheet{ID: id, Status: domain.JobStatusDelivered},
	}, nil)

	w, c := postJSON(t, "/api/v1/job-sheets/"+id.String()+"/status", map[string]string{"status": "delivered"})
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.UpdateStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockJS.AssertExpectations(t)
}

func TestJobSheetHandler_GetByID_InvalidID(t *testing.T) {
	h := handler.NewJobSheetHandler(new(mocks.MockJobSheetService), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/job-sheets/nope", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decodeResponse(t, w).Error.Code)
}
