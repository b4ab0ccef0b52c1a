package domain

// UserRole defines what a signed-in user may do.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleAgent UserRole = "agent"
)

// ValidUserRoles lists every assignable role.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin: true,
	RoleAgent: true,
}

// TechnicianStatus tracks whether a technician can take jobs.
type TechnicianStatus string

const (
	TechnicianActive   TechnicianStatus = "active"
	TechnicianInactive TechnicianStatus = "inactive"
)

// JobStatus is the lifecycle of a job sheet.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusDelivered  JobStatus = "delivered"
	JobStatusCancelled  JobStatus = "cancelled"
)

// ValidJobStatuses lists the statuses a job sheet may hold.
var ValidJobStatuses = map[JobStatus]bool{
	JobStatusPending:    true,
	JobStatusInProgress: true,
	JobStatusCompleted:  true,
	JobStatusDelivered:  true,
	JobStatusCancelled:  true,
}

// WarrantyStatus of the device at intake.
type WarrantyStatus string

const (
	WarrantyIn  WarrantyStatus = "in_warranty"
	WarrantyOut WarrantyStatus = "out_warranty"
)

// JobMode says where the work happens.
type JobMode string

const (
	JobModeIndoor  JobMode = "indoor"
	JobModeOutdoor JobMode = "outdoor"
)

// JobClassificationQuotation marks job sheets created from a quotation.
const JobClassificationQuotation = "quotation_converted"

// InventoryCategory groups stock items.
type InventoryCategory string

const (
	CategoryAccessories InventoryCategory = "accessories"
	CategorySpares      InventoryCategory = "spares"
	CategoryDevices     InventoryCategory = "devices"
)

// StockStatus is derived from quantity against the reorder threshold.
type StockStatus string

const (
	StockAvailable  StockStatus = "available"
	StockLow        StockStatus = "low"
	StockOutOfStock StockStatus = "out_of_stock"
)

// PaymentStatus of a job sheet payment record.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// QuotationStatus is the lifecycle of a quotation.
type QuotationStatus string

const (
	QuotationDraft     QuotationStatus = "draft"
	QuotationSent      QuotationStatus = "sent"
	QuotationAccepted  QuotationStatus = "accepted"
	QuotationRejected  QuotationStatus = "rejected"
	QuotationConverted QuotationStatus = "converted"
	QuotationExpired   QuotationStatus = "expired"
)

// ValidQuotationStatuses lists statuses a client may set directly.
// Converted is only reached through job sheet conversion.
var ValidQuotationStatuses = map[QuotationStatus]bool{
	QuotationDraft:    true,
	QuotationSent:     true,
	QuotationAccepted: true,
	QuotationRejected: true,
	QuotationExpired:  true,
}

// DocumentKind distinguishes the two invoice books.
type DocumentKind string

const (
	KindInvoice   DocumentKind = "invoice"
	KindDInvoice  DocumentKind = "dinvoice"
	KindQuotation DocumentKind = "quotation"
)
