package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "repairdesk/docs"
	"repairdesk/internal/config"
	"repairdesk/internal/email/noop"
	"repairdesk/internal/email/ses"
	"repairdesk/internal/handler"
	"repairdesk/internal/logger"
	"repairdesk/internal/middleware"
	"repairdesk/internal/port"
	pdfrender "repairdesk/internal/render/pdf"
	"repairdesk/internal/repository/postgres"
	"repairdesk/internal/router"
	"repairdesk/internal/service"
	s3storage "repairdesk/internal/storage/s3"
	"repairdesk/internal/validation"
)

const shutdownTimeout = 15 * time.Second

// @title RepairDesk API
// @version 1.0
// @description Job sheets, GST invoices, quotations, inventory and payments for a device repair shop.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validation.Register(v); err != nil {
			return fmt.Errorf("failed to register validators: %w", err)
		}
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	customerRepo := postgres.NewCustomerRepo(db)
	technicianRepo := postgres.NewTechnicianRepo(db)
	catalogRepo := postgres.NewCatalogRepo(db)
	jobSheetRepo := postgres.NewJobSheetRepo(db)
	inventoryRepo := postgres.NewInventoryRepo(db)
	paymentRepo := postgres.NewPaymentRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	dInvoiceRepo := postgres.NewDInvoiceRepo(db)
	quotationRepo := postgres.NewQuotationRepo(db)
	dashboardRepo := postgres.NewDashboardRepo(db)

	// Initialize storage and email delivery
	store, err := s3storage.NewDocumentStore(ctx, cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	var sender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		sender, err = ses.NewSESSender(ctx, cfg.Email)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		sender = noop.NewNoopSender(zlog)
	}

	// Initialize services
	pricing := service.NewPricing(cfg.Billing.HomeStates, cfg.Billing.DefaultGSTRate)
	numbering := service.NumberingOptions{
		MaxCandidates:    cfg.Numbering.MaxCandidates,
		WriteRetries: cfg.Numbering.WriteRetries,
		Now:          time.Now,
	}

	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	userSvc := service.NewUserService(userRepo, zlog)
	customerSvc := service.NewCustomerService(customerRepo)
	technicianSvc := service.NewTechnicianService(technicianRepo)
	catalogSvc := service.NewCatalogService(catalogRepo)
	jobSheetSvc := service.NewJobSheetService(jobSheetRepo, customerRepo, numbering, zlog)
	inventorySvc := service.NewInventoryService(inventoryRepo)
	paymentSvc := service.NewPaymentService(paymentRepo, jobSheetRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, jobSheetRepo, pricing, numbering, zlog)
	dInvoiceSvc := service.NewInvoiceService(dInvoiceRepo, jobSheetRepo, pricing, numbering, zlog)
	quotationSvc := service.NewQuotationService(quotationRepo, customerRepo, jobSheetSvc, pricing, numbering, zlog)
	dashboardSvc := service.NewDashboardService(dashboardRepo)
	exportSvc := service.NewExportService(invoiceSvc, dInvoiceSvc)
	documentSvc := service.NewDocumentService(
		[]port.InvoiceRepository{invoiceRepo, dInvoiceRepo},
		jobSheetRepo, customerRepo, quotationRepo,
		pdfrender.NewRenderer(), store, sender,
		service.DocumentDeliveryConfig{
			Bucket:        cfg.S3.Bucket,
			PresignExpiry: cfg.S3.PresignExpiry,
			Shop: port.ShopProfile{
				Name:    cfg.Billing.ShopName,
				Address: cfg.Billing.ShopAddress,
				GSTIN:   cfg.Billing.ShopGSTIN,
			},
		},
		zlog,
	)

	if err := userSvc.EnsureBootstrapAdmin(ctx, cfg.Auth); err != nil {
		return fmt.Errorf("failed to bootstrap admin user: %w", err)
	}

	// Background quotation expiry
	workerDone := make(chan struct{})
	if cfg.QuotationWorker.Enabled {
		worker := service.NewQuotationExpiryWorker(quotationSvc, service.QuotationExpiryConfig{
			PollInterval: time.Duration(cfg.QuotationWorker.PollIntervalSecs) * time.Second,
			BatchSize:    cfg.QuotationWorker.BatchSize,
		}, zlog)
		go func() {
			defer close(workerDone)
			worker.Start(ctx)
		}()
	} else {
		close(workerDone)
	}

	var limiter *middleware.ClientRateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewClientRateLimiter(cfg.RateLimit)
		defer limiter.Close()
	}

	// Initialize handlers
	r := router.Setup(cfg, zlog, authSvc, limiter, router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		User:       handler.NewUserHandler(userSvc),
		Customer:   handler.NewCustomerHandler(customerSvc),
		Technician: handler.NewTechnicianHandler(technicianSvc),
		Catalog:    handler.NewCatalogHandler(catalogSvc),
		JobSheet:   handler.NewJobSheetHandler(jobSheetSvc, paymentSvc),
		Inventory:  handler.NewInventoryHandler(inventorySvc),
		Payment:    handler.NewPaymentHandler(paymentSvc),
		Invoice:    handler.NewInvoiceHandler(invoiceSvc, documentSvc),
		DInvoice:   handler.NewInvoiceHandler(dInvoiceSvc, documentSvc),
		Export:     handler.NewExportHandler(exportSvc),
		Quotation:  handler.NewQuotationHandler(quotationSvc, documentSvc),
		Dashboard:  handler.NewDashboardHandler(dashboardSvc),
		Health:     handler.NewHealthHandler(db),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		zlog.Info("server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			stop()
			<-workerDone
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
	<-workerDone
	return nil
}
