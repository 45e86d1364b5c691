package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/hirewire/ledger-service/internal/model"
)

// fontName is a gofpdf core font, so no font file ships with the binary.
const fontName = "Helvetica"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(report *model.EarningsReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(fontName, "B", 14)
	pdf.CellFormat(0, 10, "Marketplace Earnings Report", "", 1, "C", false, 0, "")

	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Period %s to %s", formatDate(report.PeriodStart), formatDate(report.PeriodEnd)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total paid: %s", formatMoney(report.TotalPaid)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, "Earnings by profession", "", 1, "L", false, 0, "")

	professionWidths := []float64{120, 60}
	drawTableRow(pdf, []string{"Profession", "Earned"}, professionWidths, true)
	for _, row := range report.Professions {
		drawTableRow(pdf, []string{row.Profession, formatMoney(row.Earned)}, professionWidths, false)
	}
	if len(report.Professions) == 0 {
		pdf.SetFont(fontName, "", 10)
		pdf.MultiCell(0, 6, "No paid jobs in this period.", "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, "Top clients by spend", "", 1, "L", false, 0, "")

	clientWidths := []float64{15, 105, 60}
	drawTableRow(pdf, []string{"#", "Client", "Paid"}, clientWidths, true)
	for i, client := range report.Clients {
		drawTableRow(pdf, []string{fmt.Sprintf("%d", i+1), client.FullName(), formatMoney(client.Paid)}, clientWidths, false)
	}
	if len(report.Clients) == 0 {
		pdf.SetFont(fontName, "", 10)
		pdf.MultiCell(0, 6, "No client payments in this period.", "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i == len(cols)-1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// formatMoney renders minor currency units as a decimal amount.
func formatMoney(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}
