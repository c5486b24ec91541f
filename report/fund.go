// Package report computes ledger aggregates and renders the portal's PDF
// exports.
package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/societyhub/society-portal-go/models"
)

// Total computes the running fund balance over the full entry set: credits
// add, debits subtract. Display filters never feed into this.
func Total(entries []models.FundEntry) float64 {
	var total float64
	for _, e := range entries {
		if e.Type == models.FundCredit {
			total += e.Amount
		} else {
			total -= e.Amount
		}
	}
	return total
}

// Filter returns the display subset matching the optional type and date
// filters. Empty filter values match everything.
func Filter(entries []models.FundEntry, typ, date string) []models.FundEntry {
	out := make([]models.FundEntry, 0, len(entries))
	for _, e := range entries {
		if typ != "" && e.Type != typ {
			continue
		}
		if date != "" && e.Date != date {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FormatAmount renders an amount with the currency prefix, two decimals.
func FormatAmount(v float64) string {
	return fmt.Sprintf("₹ %.2f", v)
}

// FundReport renders the fixed-column fund ledger table as a PDF.
func FundReport(entries []models.FundEntry) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Fund Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 10, "Total Fund: "+FormatAmount(Total(entries)))
	pdf.Ln(12)

	widths := []float64{35, 75, 30, 40}
	headers := []string{"Date", "Title", "Type", "Amount"}
	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, e := range entries {
		pdf.CellFormat(widths[0], 8, e.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, e.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, e.Type, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 8, FormatAmount(e.Amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render fund report: %w", err)
	}
	return buf.Bytes(), nil
}
