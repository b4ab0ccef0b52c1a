package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// QuotationExpiryConfig holds settings for the quotation expiry worker.
type QuotationExpiryConfig struct {
	PollInterval time.Duration
	BatchSize    int
	SweepTimeout time.Duration
}

// QuotationExpiryWorker periodically expires sent quotations whose validity
// window has passed.
type QuotationExpiryWorker struct {
	quotations QuotationService
	cfg        QuotationExpiryConfig
	now        func() time.Time
	log        *zap.Logger
	wg         sync.WaitGroup
}

// NewQuotationExpiryWorker creates a new QuotationExpiryWorker.
func NewQuotationExpiryWorker(quotations QuotationService, cfg QuotationExpiryConfig, log *zap.Logger) *QuotationExpiryWorker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Hour
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.SweepTimeout <= 0 {
		cfg.SweepTimeout = time.Minute
	}
	return &QuotationExpiryWorker{
		quotations: quotations,
		cfg:        cfg,
		now:        time.Now,
		log:        log,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until an
// in-flight sweep has finished. At most one sweep runs at a time.
func (w *QuotationExpiryWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, 1)

	w.log.Info("quotationExpiryWorker: started",
		zap.Duration("poll", w.cfg.PollInterval),
		zap.Int("batch_size", w.cfg.BatchSize))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("quotationExpiryWorker: shutting down, waiting for in-flight sweep")
			w.wg.Wait()
			w.log.Info("quotationExpiryWorker: shutdown complete")
			return
		case <-ticker.C:
			select {
			case sem <- struct{}{}:
			default:
				continue
			}
			w.wg.Add(1)
			go func() {
				defer w.wg.Done()
				defer func() { <-sem }()

				// A fresh context lets a running sweep finish its batch during shutdown.
				sweepCtx, cancel := context.WithTimeout(context.Background(), w.cfg.SweepTimeout)
				defer cancel()
				w.Sweep(sweepCtx)
			}()
		}
	}
}

// Sweep expires stale quotations in batches until none remain.
func (w *QuotationExpiryWorker) Sweep(ctx context.Context) int {
	total := 0
	for {
		n, err := w.quotations.ExpireStale(ctx, w.now(), w.cfg.BatchSize)
		total += n
		if err != nil {
			w.log.Error("quotationExpiryWorker: sweep failed", zap.Int("expired", total), zap.Error(err))
			return total
		}
		if n < w.cfg.BatchSize {
			break
		}
	}
	if total > 0 {
		w.log.Info("quotationExpiryWorker: expired quotations", zap.Int("count", total))
	}
	return total
}
