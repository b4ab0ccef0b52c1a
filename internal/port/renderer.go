package port

import "repairdesk/internal/domain"

// ShopProfile identifies the issuing business on rendered documents.
type ShopProfile struct {
	Name    string
	Address string
	GSTIN   string
}

// InvoiceView is everything printed on an invoice or D-invoice.
type InvoiceView struct {
	Shop     ShopProfile
	Invoice  domain.Invoice
	JobSheet domain.JobSheetDetail
	Customer domain.Customer
}

// DocumentRenderer turns documents into printable PDFs.
type DocumentRenderer interface {
	RenderInvoice(view InvoiceView) ([]byte, error)
	RenderQuotation(shop ShopProfile, q domain.Quotation) ([]byte, error)
}
