package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"repairdesk/internal/service"
	"repairdesk/mocks"
)

func TestQuotationExpiryWorker_Sweep_DrainsFullBatches(t *testing.T) {
	quotations := new(mocks.MockQuotationService)
	w := service.NewQuotationExpiryWorker(quotations, service.QuotationExpiryConfig{BatchSize: 2}, zap.NewNop())

	quotations.On("ExpireStale", mock.Anything, mock.Anything, 2).Return(2, nil).Twice()
	quotations.On("ExpireStale", mock.Anything, mock.Anything, 2).Return(1, nil).Once()

	assert.Equal(t, 5, w.Sweep(context.Background()))
	quotations.AssertNumberOfCalls(t, "ExpireStale", 3)
}

func TestQuotationExpiryWorker_Sweep_StopsOnError(t *testing.T) {
	quotations := new(mocks.MockQuotationService)
	w := service.NewQuotationExpiryWorker(quotations, service.QuotationExpiryConfig{BatchSize: 10}, zap.NewNop())

	quotations.On("ExpireStale", mock.Anything, mock.Anything, 10).Return(3, errors.New("db down")).Once()

	assert.Equal(t, 3, w.Sweep(context.Background()))
	quotations.AssertNumberOfCalls(t, "ExpireStale", 1)
}

func TestQuotationExpiryWorker_Start_ReturnsOnCancel(t *testing.T) {
	quotations := new(mocks.MockQuotationService)
	quotations.On("ExpireStale", mock.Anything, mock.Anything, 100).Return(0, nil)
	w := service.NewQuotationExpiryWorker(quotations, service.QuotationExpiryConfig{PollInterval: 5 * time.Millisecond}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestQuotationExpiryWorker_Start_ZeroIntervalUsesDefault(t *testing.T) {
	w := service.NewQuotationExpiryWorker(new(mocks.MockQuotationService), service.QuotationExpiryConfig{}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NotPanics(t, func() { w.Start(ctx) })
}
