package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"repairdesk/internal/domain"
	"repairdesk/internal/tax"
)

func sampleInvoices() []domain.Invoice {
	return []domain.Invoice{
		{
			Kind:          domain.KindInvoice,
			InvoiceNumber: "INV-2025-0001",
			InvoiceType:   tax.InvoiceTypeGST,
			CustomerState: "Andhra Pradesh",
			ServiceCharge: decimal.NewFromInt(500),
			GSTRate:       decimal.NewFromInt(18),
			TaxBreakdown: domain.TaxBreakdown{
				PartsTotal:  decimal.NewFromInt(680),
				Subtotal:    decimal.NewFromInt(1000),
				GSTAmount:   decimal.NewFromInt(180),
				CGSTAmount:  decimal.NewFromInt(90),
				SGSTAmount:  decimal.NewFromInt(90),
				TotalAmount: decimal.NewFromInt(1180),
			},
			PaymentMethod: "cash",
			InvoiceDate:   time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
			CreatedAt:     time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC),
			Parts:         []domain.InvoicePart{{PartName: "Fan"}},
		},
		{
			Kind:          domain.KindDInvoice,
			InvoiceNumber: "DINV-2025-0001",
			InvoiceType:   tax.InvoiceTypeNonGST,
			ServiceCharge: decimal.NewFromInt(250),
			TaxBreakdown: domain.TaxBreakdown{
				Subtotal:    decimal.NewFromInt(250),
				TotalAmount: decimal.NewFromInt(250),
			},
			InvoiceDate: time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC),
			CreatedAt:   time.Date(2025, 4, 3, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedExportType)
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleInvoices()))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, BOM))

	rows, err := csv.NewReader(bytes.NewReader(data[len(BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, columns, rows[0])
	assert.Equal(t, "Invoice", rows[1][0])
	assert.Equal(t, "INV-2025-0001", rows[1][1])
	assert.Equal(t, "2025-04-02", rows[1][2])
	assert.Equal(t, "Intra-state", rows[1][5])
	assert.Equal(t, "90.00", rows[1][11])
	assert.Equal(t, "1180.00", rows[1][14])
	assert.Equal(t, "1", rows[1][17])

	assert.Equal(t, "D-Invoice", rows[2][0])
	assert.Equal(t, "", rows[2][5])
	assert.Equal(t, "250.00", rows[2][14])
}

func TestWrite_XLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sampleInvoices()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Invoice Number", rows[0][1])
	assert.Equal(t, "DINV-2025-0001", rows[2][1])
	assert.Equal(t, "1180", rows[1][14])
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("ods"), nil)
	assert.ErrorIs(t, err, domain.ErrUnsupportedExportType)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"invoices", "invoices"},
		{"GST register (Q1)", "GST_register_Q1"},
		{"a  //  b", "a_b"},
		{"___", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), tt.in)
	}
}

func TestBuildFilename(t *testing.T) {
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "invoice_register_2025-04-01_2025-04-30.xlsx",
		BuildFilename("invoice register", FormatXLSX, from, to))
}
