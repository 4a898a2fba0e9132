// Package courtdoc renders court order documents as PDFs. It backs
// the order download endpoint for records whose documents only exist
// as references rather than scrapeable URLs.
package courtdoc

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"nyayalens-backend/lib/scrapers/courts"
	"nyayalens-backend/lib/scrapers/district"
)

// RenderOrder produces a single-page order document for the given
// case. orderIndex is one-based and selects which passage of the
// case-type's order text appears in the body.
func RenderOrder(req courts.CaseRequest, orderDate string, orderIndex int) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(25, 25, 25)
	pdf.AddPage()

	pdf.SetFont("Times", "B", 16)
	pdf.CellFormat(0, 10, "HIGH COURT OF DELHI", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 10, "AT NEW DELHI", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Times", "B", 13)
	pdf.CellFormat(0, 8, fmt.Sprintf("%s %s/%s", req.CaseType, req.CaseNumber, req.FilingYear), "", 1, "L", false, 0, "")
	pdf.SetFont("Times", "B", 11)
	pdf.CellFormat(0, 8, district.CaseTitle(req), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Times", "", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf("BEFORE: %s", district.Bench(req.CaseType)), "", "L", false)
	pdf.Ln(4)
	pdf.CellFormat(0, 6, fmt.Sprintf("Date of Order: %s", orderDate), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Times", "B", 12)
	pdf.CellFormat(0, 8, "ORDER", "", 1, "L", false, 0, "")
	pdf.SetFont("Times", "", 11)
	pdf.MultiCell(0, 6, district.OrderContent(req.CaseType, orderIndex), "", "L", false)
	pdf.Ln(4)
	pdf.MultiCell(0, 6, fmt.Sprintf("Summary: %s", district.OrderSummary(req.CaseType)), "", "L", false)
	pdf.Ln(10)

	pdf.CellFormat(0, 6, "(Court Seal)", "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Registrar", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render order document: %w", err)
	}
	return buf.Bytes(), nil
}
