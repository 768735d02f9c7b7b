package invoices

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/shreemobiles/storefront-backend/pkg/db/models"
)

// taxRate is the GST rate baked into every listed price. Prices are
// tax-inclusive, so the document derives the pre-tax subtotal backwards
// from the stored total rather than adding tax on top.
const taxRate = 0.18

// pageBreakY is the vertical bound after which the item table continues on
// a new page.
const pageBreakY = 260.0

var one = decimal.NewFromInt(1)

// PDFFilename is the download name for an invoice document.
func PDFFilename(invoice *models.Invoice) string {
	return fmt.Sprintf("invoice-%s.pdf", invoice.InvoiceNumber)
}

// splitTotal derives the displayed subtotal and tax from the stored total.
// The two always sum back to the total exactly.
func splitTotal(total float64) (subtotal, tax decimal.Decimal) {
	stored := decimal.NewFromFloat(total)
	subtotal = stored.Div(one.Add(decimal.NewFromFloat(taxRate))).Round(2)
	tax = stored.Sub(subtotal)
	return subtotal, tax
}

func money(d decimal.Decimal) string {
	return "Rs. " + d.StringFixed(2)
}

func moneyFloat(v float64) string {
	return money(decimal.NewFromFloat(v))
}

// RenderPDF lays the invoice out as a PDF document. The grand total line
// prints the stored invoice total verbatim; nothing is re-summed from the
// items at render time.
func RenderPDF(invoice *models.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+invoice.InvoiceNumber, false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	writeHeader(pdf, invoice)
	writeItemTableHeader(pdf)

	for i, item := range invoice.Items {
		if pdf.GetY() > pageBreakY {
			pdf.AddPage()
			writeItemTableHeader(pdf)
		}
		writeItemRow(pdf, i+1, item)
	}

	if pdf.GetY() > pageBreakY-30 {
		pdf.AddPage()
	}
	writeTotals(pdf, invoice)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(pdf *gofpdf.Fpdf, invoice *models.Invoice) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Shree Mobiles", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Tax Invoice", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Invoice No: "+invoice.InvoiceNumber, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Date: "+invoice.CreatedAt.Format("02 Jan 2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Billed To: "+invoice.CustomerName, "", 1, "L", false, 0, "")
	if invoice.CustomerEmail != "" {
		pdf.CellFormat(0, 5, invoice.CustomerEmail, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func writeItemTableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(10, 7, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(70, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(15, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Discount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Line Total", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
}

func writeItemRow(pdf *gofpdf.Fpdf, seq int, item models.InvoiceItem) {
	lineTotal := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
	lineDiscount := decimal.NewFromFloat(item.OriginalPrice).
		Sub(decimal.NewFromFloat(item.Price)).
		Mul(decimal.NewFromInt(int64(item.Quantity)))

	discountCell := "-"
	if lineDiscount.IsPositive() {
		discountCell = money(lineDiscount)
	}

	pdf.CellFormat(10, 7, fmt.Sprintf("%d", seq), "1", 0, "C", false, 0, "")
	pdf.CellFormat(70, 7, item.Name, "1", 0, "L", false, 0, "")
	pdf.CellFormat(15, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 7, moneyFloat(item.Price), "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, discountCell, "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, money(lineTotal), "1", 1, "R", false, 0, "")
}

func writeTotals(pdf *gofpdf.Fpdf, invoice *models.Invoice) {
	subtotal, tax := splitTotal(invoice.Total)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(125, 6, "", "", 0, "", false, 0, "")
	pdf.CellFormat(30, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, money(subtotal), "", 1, "R", false, 0, "")

	pdf.CellFormat(125, 6, "", "", 0, "", false, 0, "")
	pdf.CellFormat(30, 6, "GST (18% incl.)", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, money(tax), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(125, 8, "", "", 0, "", false, 0, "")
	pdf.CellFormat(30, 8, "TOTAL", "T", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, moneyFloat(invoice.Total), "T", 1, "R", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "All prices are inclusive of GST. Thank you for shopping with Shree Mobiles.", "", 1, "L", false, 0, "")
}
