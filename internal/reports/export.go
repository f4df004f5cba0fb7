package reports

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"

	"github.com/C00lPIXER/aperture/pkg/config"
)

const (
	reportTitle      = "Sales Report"
	placedAtLayout   = "Mon Jan 02 2006"
	pdfFontFamily    = "report"
	fallbackFont     = "Helvetica"
	rupeeSign        = "₹"
	fallbackCurrency = "Rs. "

	ContentTypePDF   = "application/pdf"
	ContentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var excelColumns = []struct {
	header string
	width  float64
}{
	{"Order ID", 38},
	{"Customer", 30},
	{"Quantity", 10},
	{"Total", 15},
	{"Status", 15},
	{"Order Placed", 20},
}

// Exporter renders reports as downloadable documents.
type Exporter struct {
	fontPath string
}

func NewExporter(cfg config.ReportsConfig) *Exporter {
	return &Exporter{fontPath: strings.TrimSpace(cfg.PDFFontPath)}
}

// Filename names an export the way downloads have always been named.
func Filename(ext string, now time.Time) string {
	return fmt.Sprintf("Sales_Report_%d.%s", now.UnixMilli(), ext)
}

// PDF writes the summary followed by one block per order. The rupee sign
// needs a UTF-8 font; without one the core font prints "Rs.".
func (e *Exporter) PDF(report *Report, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	family, currency := fallbackFont, fallbackCurrency
	if e.fontPath != "" {
		pdf.AddUTF8Font(pdfFontFamily, "", e.fontPath)
		family, currency = pdfFontFamily, rupeeSign
	}
	money := func(v decimal.Decimal) string { return currency + v.StringFixed(2) }

	pdf.AddPage()
	pdf.SetFont(family, "", 16)
	pdf.CellFormat(0, 10, reportTitle, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(family, "", 12)
	for _, line := range []string{
		"Total Sales: " + money(report.ReportData.TotalSales),
		"Total Discounts: " + money(report.ReportData.TotalDiscount),
		"Coupon Deductions: " + money(report.ReportData.CouponDeductions),
		fmt.Sprintf("Total Orders: %d", report.ReportData.OrdersCount),
	} {
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(family, "U", 14)
	pdf.CellFormat(0, 8, "Order Details:", "", 1, "L", false, 0, "")

	pdf.SetFont(family, "", 10)
	for _, row := range report.Orders {
		for _, line := range []string{
			"Order ID: " + row.ID.String(),
			"Customer: " + row.Customer,
			fmt.Sprintf("Quantity: %d", row.Items),
			"Total: " + money(row.TotalPrice),
			"Status: " + row.OrderStatus.String(),
			"Order Placed: " + row.PlacedAt.Format(placedAtLayout),
		} {
			pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

// Excel writes the order table to a single "Sales Report" sheet.
func (e *Exporter) Excel(report *Report, w io.Writer) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(reportTitle)
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	header := sheet.AddRow()
	for i, col := range excelColumns {
		header.AddCell().SetString(col.header)
		if err := sheet.SetColWidth(i, i, col.width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	for _, order := range report.Orders {
		row := sheet.AddRow()
		row.AddCell().SetString(order.ID.String())
		row.AddCell().SetString(order.Customer)
		row.AddCell().SetInt(order.Items)
		row.AddCell().SetFloatWithFormat(order.TotalPrice.InexactFloat64(), "0.00")
		row.AddCell().SetString(order.OrderStatus.String())
		row.AddCell().SetString(order.PlacedAt.Format(placedAtLayout))
	}

	return file.Write(w)
}
