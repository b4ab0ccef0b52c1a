package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"repairdesk/internal/tax"
)

// User is a staff member who signs in to the shop console.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Customer owns the devices brought in for service.
type Customer struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Phone          string    `db:"phone" json:"phone"`
	AlternatePhone string    `db:"alternate_phone" json:"alternate_phone"`
	Address        string    `db:"address" json:"address"`
	City           string    `db:"city" json:"city"`
	State          string    `db:"state" json:"state"`
	PinCode        string    `db:"pin_code" json:"pin_code"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Technician is an employee who can be assigned to job sheets.
type Technician struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	EmployeeID  string           `db:"employee_id" json:"employee_id"`
	Name        string           `db:"name" json:"name"`
	Phone       string           `db:"phone" json:"phone"`
	Role        string           `db:"role" json:"role"`
	JoiningDate time.Time        `db:"joining_date" json:"joining_date"`
	BaseSalary  decimal.Decimal  `db:"base_salary" json:"base_salary"`
	Status      TechnicianStatus `db:"status" json:"status"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updated_at"`
}

// ProductType is a device category such as "laptop" or "air_conditioner".
type ProductType struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	DisplayName string    `db:"display_name" json:"display_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Brand optionally belongs to a product type.
type Brand struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	DisplayName   string     `db:"display_name" json:"display_name"`
	ProductTypeID *uuid.UUID `db:"product_type_id" json:"product_type_id"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// DeviceModel is a concrete model offered by a brand.
type DeviceModel struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	DisplayName string    `db:"display_name" json:"display_name"`
	BrandID     uuid.UUID `db:"brand_id" json:"brand_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// JobSheet records a device taken in for repair or installation.
type JobSheet struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	JobID             string          `db:"job_id" json:"job_id"`
	CustomerID        uuid.UUID       `db:"customer_id" json:"customer_id"`
	ProductTypeID     *uuid.UUID      `db:"product_type_id" json:"product_type_id"`
	BrandID           *uuid.UUID      `db:"brand_id" json:"brand_id"`
	ModelID           *uuid.UUID      `db:"model_id" json:"model_id"`
	ModelNumber       string          `db:"model_number" json:"model_number"`
	SerialNumber      string          `db:"serial_number" json:"serial_number"`
	PurchaseDate      *time.Time      `db:"purchase_date" json:"purchase_date"`
	WarrantyStatus    WarrantyStatus  `db:"warranty_status" json:"warranty_status"`
	JobType           string          `db:"job_type" json:"job_type"`
	JobClassification string          `db:"job_classification" json:"job_classification"`
	JobMode           JobMode         `db:"job_mode" json:"job_mode"`
	TechnicianID      *uuid.UUID      `db:"technician_id" json:"technician_id"`
	AgentID           *uuid.UUID      `db:"agent_id" json:"agent_id"`
	CustomerComplaint string          `db:"customer_complaint" json:"customer_complaint"`
	ReportedIssue     string          `db:"reported_issue" json:"reported_issue"`
	AgentRemarks      string          `db:"agent_remarks" json:"agent_remarks"`
	JobStartAt        *time.Time      `db:"job_start_at" json:"job_start_at"`
	Status            JobStatus       `db:"status" json:"status"`
	EstimatedAmount   decimal.Decimal `db:"estimated_amount" json:"estimated_amount"`
	QuotationID       *uuid.UUID      `db:"quotation_id" json:"quotation_id"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// JobSheetDetail is a job sheet joined with customer and technician names.
type JobSheetDetail struct {
	JobSheet
	CustomerName   string  `db:"customer_name" json:"customer_name"`
	CustomerPhone  string  `db:"customer_phone" json:"customer_phone"`
	CustomerState  string  `db:"customer_state" json:"customer_state"`
	TechnicianName *string `db:"technician_name" json:"technician_name"`
}

// InventoryItem is a stocked spare, accessory or device.
type InventoryItem struct {
	ID          uuid.UUID         `db:"id" json:"id"`
	Name        string            `db:"name" json:"name"`
	Category    InventoryCategory `db:"category" json:"category"`
	Quantity    int               `db:"quantity" json:"quantity"`
	MinQuantity int               `db:"min_quantity" json:"min_quantity"`
	UnitPrice   decimal.Decimal   `db:"unit_price" json:"unit_price"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updated_at"`
}

// DefaultMinQuantity is the reorder threshold for new stock items.
const DefaultMinQuantity = 5

// StockStatus derives the stock level from quantity and threshold.
func (i InventoryItem) StockStatus() StockStatus {
	switch {
	case i.Quantity <= 0:
		return StockOutOfStock
	case i.Quantity <= i.MinQuantity:
		return StockLow
	default:
		return StockAvailable
	}
}

// Payment records money collected against a job sheet.
type Payment struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	JobSheetID     uuid.UUID       `db:"job_sheet_id" json:"job_sheet_id"`
	ClientAmount   decimal.Decimal `db:"client_amount" json:"client_amount"`
	InternalAmount decimal.Decimal `db:"internal_amount" json:"internal_amount"`
	Discount       decimal.Decimal `db:"discount" json:"discount"`
	AdvancePaid    decimal.Decimal `db:"advance_paid" json:"advance_paid"`
	Balance        decimal.Decimal `db:"balance" json:"balance"`
	PaymentMode    string          `db:"payment_mode" json:"payment_mode"`
	Status         PaymentStatus   `db:"status" json:"status"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// Settle derives the outstanding balance and the payment status.
func (p *Payment) Settle() {
	p.Balance = p.ClientAmount.Sub(p.Discount).Sub(p.AdvancePaid)
	if p.Balance.IsPositive() {
		p.Status = PaymentPending
	} else {
		p.Status = PaymentPaid
	}
}

// TaxBreakdown is the persisted output of the tax calculator.
type TaxBreakdown struct {
	PartsTotal  decimal.Decimal `db:"parts_total" json:"parts_total"`
	Subtotal    decimal.Decimal `db:"subtotal" json:"subtotal"`
	GSTAmount   decimal.Decimal `db:"gst_amount" json:"gst_amount"`
	CGSTAmount  decimal.Decimal `db:"cgst_amount" json:"cgst_amount"`
	SGSTAmount  decimal.Decimal `db:"sgst_amount" json:"sgst_amount"`
	IGSTAmount  decimal.Decimal `db:"igst_amount" json:"igst_amount"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
}

// NewTaxBreakdown converts a calculator result into its stored form, rounded
// to paise so the stored, returned and printed figures agree.
func NewTaxBreakdown(r tax.Result) TaxBreakdown {
	r = r.Round2()
	return TaxBreakdown{
		PartsTotal:  r.LineItemsTotal,
		Subtotal:    r.TaxableSubtotal,
		GSTAmount:   r.GSTAmount,
		CGSTAmount:  r.CGSTAmount,
		SGSTAmount:  r.SGSTAmount,
		IGSTAmount:  r.IGSTAmount,
		TotalAmount: r.TotalAmount,
	}
}

// Invoice is a bill raised against a job sheet. D-invoices share the shape
// but live in their own table and number sequence.
type Invoice struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	Kind          DocumentKind    `db:"-" json:"kind"`
	InvoiceNumber string          `db:"invoice_number" json:"invoice_number"`
	JobSheetID    uuid.UUID       `db:"job_sheet_id" json:"job_sheet_id"`
	InvoiceType   tax.InvoiceType `db:"invoice_type" json:"invoice_type"`
	ServiceCharge decimal.Decimal `db:"service_charge" json:"service_charge"`
	Discount      decimal.Decimal `db:"discount" json:"discount"`
	GSTRate       decimal.Decimal `db:"gst_rate" json:"gst_rate"`
	TaxBreakdown
	CustomerState string        `db:"customer_state" json:"customer_state"`
	PaymentMethod string        `db:"payment_method" json:"payment_method"`
	ModelNumber   string        `db:"model_number" json:"model_number"`
	SerialNumber  string        `db:"serial_number" json:"serial_number"`
	Brand         string        `db:"brand" json:"brand"`
	GSTIN         string        `db:"gstin" json:"gstin"`
	WorkDone      string        `db:"work_done" json:"work_done"`
	Remarks       string        `db:"remarks" json:"remarks"`
	InvoiceDate   time.Time     `db:"invoice_date" json:"invoice_date"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
	Parts         []InvoicePart `db:"-" json:"parts"`
}

// InvoicePart is a line item on an invoice or D-invoice.
type InvoicePart struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	InvoiceID uuid.UUID       `db:"invoice_id" json:"invoice_id"`
	PartName  string          `db:"part_name" json:"part_name"`
	Quantity  int             `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
}

// Quotation is a priced offer sent to a customer before work starts.
type Quotation struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	QuotationNumber string          `db:"quotation_number" json:"quotation_number"`
	CustomerID      *uuid.UUID      `db:"customer_id" json:"customer_id"`
	CustomerName    string          `db:"customer_name" json:"customer_name"`
	CustomerPhone   string          `db:"customer_phone" json:"customer_phone"`
	CustomerAddress string          `db:"customer_address" json:"customer_address"`
	City            string          `db:"city" json:"city"`
	State           string          `db:"state" json:"state"`
	PinCode         string          `db:"pin_code" json:"pin_code"`
	ProductType     string          `db:"product_type" json:"product_type"`
	Brand           string          `db:"brand" json:"brand"`
	Model           string          `db:"model" json:"model"`
	ModelNumber     string          `db:"model_number" json:"model_number"`
	SerialNumber    string          `db:"serial_number" json:"serial_number"`
	ServiceCharge   decimal.Decimal `db:"service_charge" json:"service_charge"`
	Discount        decimal.Decimal `db:"discount" json:"discount"`
	InvoiceType     tax.InvoiceType `db:"invoice_type" json:"invoice_type"`
	GSTRate         decimal.Decimal `db:"gst_rate" json:"gst_rate"`
	TaxBreakdown
	PaymentTerms string          `db:"payment_terms" json:"payment_terms"`
	ValidityDays int             `db:"validity_days" json:"validity_days"`
	Status       QuotationStatus `db:"status" json:"status"`
	Remarks      string          `db:"remarks" json:"remarks"`
	JobSheetID   *uuid.UUID      `db:"job_sheet_id" json:"job_sheet_id"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
	Parts        []QuotationPart `db:"-" json:"parts"`
}

// ExpiresAt is the end of the quotation's validity window.
func (q Quotation) ExpiresAt() time.Time {
	return q.CreatedAt.AddDate(0, 0, q.ValidityDays)
}

// QuotationPart is a line item on a quotation.
type QuotationPart struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	QuotationID uuid.UUID       `db:"quotation_id" json:"quotation_id"`
	PartName    string          `db:"part_name" json:"part_name"`
	Quantity    int             `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
}

// DashboardMetrics summarises the shop's current workload and money.
type DashboardMetrics struct {
	ActiveJobs     int             `db:"active_jobs" json:"active_jobs"`
	CompletedToday int             `db:"completed_today" json:"completed_today"`
	PendingJobs    int             `db:"pending_jobs" json:"pending_jobs"`
	TodayRevenue   decimal.Decimal `db:"today_revenue" json:"today_revenue"`
	TotalCollected decimal.Decimal `db:"total_collected" json:"total_collected"`
	TotalDue       decimal.Decimal `db:"total_due" json:"total_due"`
	AvailableStock int             `db:"available_stock" json:"available_stock"`
	LowStock       int             `db:"low_stock" json:"low_stock"`
	OutOfStock     int             `db:"out_of_stock" json:"out_of_stock"`
}

// DeliveredDocument describes a rendered PDF stored for download.
type DeliveredDocument struct {
	Kind        DocumentKind `json:"kind"`
	Number      string       `json:"number"`
	S3Key       string       `json:"s3_key"`
	DownloadURL string       `json:"download_url"`
	EmailedTo   string       `json:"emailed_to,omitempty"`
}
