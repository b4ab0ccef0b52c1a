package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"repairdesk/internal/config"
	"repairdesk/internal/handler"
	"repairdesk/internal/middleware"
	"repairdesk/internal/service"
)

// Handlers groups every HTTP handler mounted by Setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Customer   *handler.CustomerHandler
	Technician *handler.TechnicianHandler
	Catalog    *handler.CatalogHandler
	JobSheet   *handler.JobSheetHandler
	Inventory  *handler.InventoryHandler
	Payment    *handler.PaymentHandler
	Invoice    *handler.InvoiceHandler
	DInvoice   *handler.InvoiceHandler
	Export     *handler.ExportHandler
	Quotation  *handler.QuotationHandler
	Dashboard  *handler.DashboardHandler
	Health     *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
// limiter may be nil when rate limiting is disabled.
func Setup(
	cfg *config.Config,
	log *zap.Logger,
	authSvc service.AuthService,
	limiter *middleware.ClientRateLimiter,
	h Handlers,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.CORS))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	if cfg.Server.Environment != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	if limiter != nil {
		v1.Use(limiter.Middleware())
	}

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	adminOnly := middleware.AdminOnly()

	// User management
	users := protected.Group("/users")
	users.GET("/me", h.User.Me)
	users.POST("", adminOnly, h.User.Create)
	users.GET("", adminOnly, h.User.List)
	users.PUT("/:id", adminOnly, h.User.Update)

	customers := protected.Group("/customers")
	customers.POST("", h.Customer.Create)
	customers.GET("", h.Customer.List)
	customers.GET("/:id", h.Customer.GetByID)
	customers.PATCH("/:id", h.Customer.Update)
	customers.DELETE("/:id", adminOnly, h.Customer.Delete)

	technicians := protected.Group("/technicians")
	technicians.GET("", h.Technician.List)
	technicians.GET("/:id", h.Technician.GetByID)
	technicians.POST("", adminOnly, h.Technician.Create)
	technicians.PATCH("/:id", adminOnly, h.Technician.Update)
	technicians.DELETE("/:id", adminOnly, h.Technician.Delete)

	// Catalog
	protected.GET("/product-types", h.Catalog.ListProductTypes)
	protected.POST("/product-types", adminOnly, h.Catalog.CreateProductType)
	protected.GET("/brands", h.Catalog.ListBrands)
	protected.POST("/brands", adminOnly, h.Catalog.CreateBrand)
	protected.GET("/brands/:id/models", h.Catalog.ListModels)
	protected.POST("/models", adminOnly, h.Catalog.CreateModel)

	jobSheets := protected.Group("/job-sheets")
	jobSheets.POST("", h.JobSheet.Create)
	jobSheets.GET("", h.JobSheet.List)
	jobSheets.GET("/:id", h.JobSheet.GetByID)
	jobSheets.PATCH("/:id", h.JobSheet.Update)
	jobSheets.PATCH("/:id/status", h.JobSheet.UpdateStatus)
	jobSheets.GET("/:id/payments", h.JobSheet.ListPayments)
	jobSheets.DELETE("/:id", adminOnly, h.JobSheet.Delete)

	inventory := protected.Group("/inventory")
	inventory.GET("", h.Inventory.List)
	inventory.GET("/:id", h.Inventory.GetByID)
	inventory.POST("", h.Inventory.Create)
	inventory.PATCH("/:id", h.Inventory.Update)
	inventory.DELETE("/:id", adminOnly, h.Inventory.Delete)

	payments := protected.Group("/payments")
	payments.POST("", h.Payment.Create)
	payments.GET("", h.Payment.List)

	// Both invoice books share one route shape. The export route is
	// registered before /:id so gin matches it literally.
	invoices := protected.Group("/invoices")
	invoices.GET("/export", h.Export.Invoices)
	mountInvoiceBook(invoices, h.Invoice, adminOnly)
	mountInvoiceBook(protected.Group("/d-invoices"), h.DInvoice, adminOnly)

	quotations := protected.Group("/quotations")
	quotations.POST("", h.Quotation.Create)
	quotations.GET("", h.Quotation.List)
	quotations.GET("/:id", h.Quotation.GetByID)
	quotations.PATCH("/:id", h.Quotation.Update)
	quotations.PATCH("/:id/status", h.Quotation.UpdateStatus)
	quotations.POST("/:id/create-job-sheet", h.Quotation.CreateJobSheet)
	quotations.POST("/:id/deliver", h.Quotation.Deliver)
	quotations.DELETE("/:id", adminOnly, h.Quotation.Delete)

	protected.GET("/dashboard/metrics", h.Dashboard.Metrics)

	return r
}

func mountInvoiceBook(g *gin.RouterGroup, h *handler.InvoiceHandler, adminOnly gin.HandlerFunc) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.PATCH("/:id", h.Update)
	g.POST("/:id/deliver", h.Deliver)
	g.DELETE("/:id", adminOnly, h.Delete)
}
