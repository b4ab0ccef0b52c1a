// Package export writes invoice registers as CSV or XLSX.
package export

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"repairdesk/internal/domain"
)

// Format is a supported export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a query value to a Format; empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", domain.ErrUnsupportedExportType
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// columns defines the register header row.
var columns = []string{
	"Book",
	"Invoice Number",
	"Invoice Date",
	"Invoice Type",
	"Customer State",
	"Supply",
	"Service Charge",
	"Parts Total",
	"Discount",
	"GST Rate",
	"Taxable Amount",
	"CGST",
	"SGST",
	"IGST",
	"Total",
	"Payment Method",
	"GSTIN",
	"Part Count",
	"Created At",
}

// moneyColumns are written as numbers in spreadsheets.
var moneyColumns = map[int]bool{6: true, 7: true, 8: true, 9: true, 10: true, 11: true, 12: true, 13: true, 14: true}

// Write renders invoices in the given format to w.
func Write(w io.Writer, format Format, invoices []domain.Invoice) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, invoices)
	case FormatXLSX:
		return writeXLSX(w, invoices)
	}
	return domain.ErrUnsupportedExportType
}

// invoiceToRow converts one invoice to a register row.
func invoiceToRow(inv *domain.Invoice) []string {
	row := make([]string, len(columns))
	row[0] = bookLabel(inv.Kind)
	row[1] = inv.InvoiceNumber
	row[2] = inv.InvoiceDate.Format("2006-01-02")
	row[3] = string(inv.InvoiceType)
	row[4] = inv.CustomerState
	row[5] = supplyLabel(inv)
	row[6] = inv.ServiceCharge.StringFixed(2)
	row[7] = inv.PartsTotal.StringFixed(2)
	row[8] = inv.Discount.StringFixed(2)
	row[9] = inv.GSTRate.StringFixed(2)
	row[10] = inv.Subtotal.StringFixed(2)
	row[11] = inv.CGSTAmount.StringFixed(2)
	row[12] = inv.SGSTAmount.StringFixed(2)
	row[13] = inv.IGSTAmount.StringFixed(2)
	row[14] = inv.TotalAmount.StringFixed(2)
	row[15] = inv.PaymentMethod
	row[16] = inv.GSTIN
	row[17] = strconv.Itoa(len(inv.Parts))
	row[18] = inv.CreatedAt.Format(time.RFC3339)
	return row
}

func bookLabel(kind domain.DocumentKind) string {
	if kind == domain.KindDInvoice {
		return "D-Invoice"
	}
	return "Invoice"
}

func supplyLabel(inv *domain.Invoice) string {
	switch {
	case !inv.IGSTAmount.IsZero():
		return "Inter-state"
	case !inv.CGSTAmount.IsZero() || !inv.SGSTAmount.IsZero():
		return "Intra-state"
	}
	return ""
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {name}_{from}_{to}.{ext}.
func BuildFilename(name string, format Format, from, to time.Time) string {
	return fmt.Sprintf("%s_%s_%s.%s", SanitizeFilename(name),
		from.Format("2006-01-02"), to.Format("2006-01-02"), format)
}
