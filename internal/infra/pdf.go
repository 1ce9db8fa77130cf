package infra

// pdf.go — daily sales report rendering using go-pdf/fpdf.
// The nightly job writes one A5 summary per calendar day:
//   - Restaurant header and report date
//   - Order count and total revenue
//   - Most-ordered dishes table
// The output file is saved to storagePath/sales_{date}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// ReportLine is one dish row in the rendered report.
type ReportLine struct {
	Name         string
	TimesOrdered int
}

// GenerateSalesReportPDF renders the daily summary. storagePath is created if
// needed. Returns the absolute path to the generated file.
func GenerateSalesReportPDF(date string, totalOrders int, totalRevenue decimal.Decimal, dishes []ReportLine, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	filePath := filepath.Join(storagePath, fmt.Sprintf("sales_%s.pdf", date))

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 8, "Daily Sales Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, date, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(4)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW*0.5, 6, "Total orders", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW*0.5, 6, fmt.Sprintf("%d", totalOrders), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW*0.5, 6, "Total revenue", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW*0.5, 6, totalRevenue.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// ── Popular dishes ───────────────────────────────────────────────────────
	if len(dishes) > 0 {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW*0.7, 6, "Dish", "B", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.3, 6, "Orders", "B", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for _, d := range dishes {
			pdf.CellFormat(contentW*0.7, 5, d.Name, "", 0, "L", false, 0, "")
			pdf.CellFormat(contentW*0.3, 5, fmt.Sprintf("%d", d.TimesOrdered), "", 1, "R", false, 0, "")
		}
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
