package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUserInactive          = errors.New("user is inactive")
	ErrInsufficientRole      = errors.New("insufficient role for this action")
	ErrDuplicateUsername     = errors.New("username already exists")
	ErrDuplicateEmployeeID   = errors.New("employee id already exists")
	ErrDuplicateCatalogName  = errors.New("catalog entry already exists")
	ErrDuplicateNumber       = errors.New("document number already exists")
	ErrStoreUnavailable      = errors.New("data store unavailable")
	ErrInvalidInvoiceType    = errors.New("invalid invoice type")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrQuotationNotAccepted  = errors.New("only accepted quotations can be converted to job sheets")
	ErrQuotationConverted    = errors.New("quotation has already been converted")
	ErrReferencedEntity      = errors.New("entity is referenced by other records")
	ErrUploadFailed          = errors.New("document upload to storage failed")
	ErrEmailDeliveryFailed   = errors.New("email delivery failed")
	ErrUnsupportedExportType = errors.New("unsupported export format")
	ErrNegativeAmount        = errors.New("amount must not be negative")
	ErrInvalidDateRange      = errors.New("date range ends before it starts")
)
