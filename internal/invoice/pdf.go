package invoice

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// column widths in millimeters, summing to the printable width of an
// A4 portrait page with 10mm margins.
var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"SKU", 28, "L"},
	{"Product", 62, "L"},
	{"Size", 15, "C"},
	{"Qty", 15, "R"},
	{"Unit price", 35, "R"},
	{"Line total", 35, "R"},
}

const (
	pdfRowHeight    = 7.0
	pdfBreakMarginY = 265.0
)

func (s *service) PDF(snapshot Snapshot) (*Document, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d / {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Order "+documentRef(snapshot.Order)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Status: %s    Created: %s", snapshot.Order.Status, snapshot.Order.CreatedAt.Format("2006-01-02"))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// issuer, buyer and shipping blocks side by side
	blocks := [][]string{
		{s.company.Name, s.company.Address, "Tax no: " + s.company.TaxNumber, s.company.Email},
		buyerLines(snapshot),
		shippingLines(snapshot),
	}
	titles := []string{"Issuer", "Buyer", "Shipping"}
	blockWidth := 63.3
	top := pdf.GetY()
	bottom := top
	for i, block := range blocks {
		pdf.SetXY(10+float64(i)*blockWidth, top)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(blockWidth, 5, titles[i], "", 2, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, line := range block {
			pdf.CellFormat(blockWidth, 4.5, tr(line), "", 2, "L", false, 0, "")
		}
		if y := pdf.GetY(); y > bottom {
			bottom = y
		}
	}
	pdf.SetY(bottom + 6)

	writeTableHead := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, pdfRowHeight, col.title, "1", 0, col.align, true, 0, "")
		}
		pdf.Ln(pdfRowHeight)
		pdf.SetFont("Helvetica", "", 9)
	}
	writeTableHead()

	for _, item := range snapshot.Order.Items {
		if pdf.GetY() > pdfBreakMarginY {
			pdf.AddPage()
			writeTableHead()
		}
		cells := []string{
			item.SKU,
			item.ProductName,
			item.Size,
			fmt.Sprintf("%d", item.Quantity),
			formatAmount(item.UnitPrice),
			formatAmount(item.UnitPrice * int64(item.Quantity)),
		}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, pdfRowHeight, tr(cells[i]), "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(pdfRowHeight)
	}

	totals := ComputeTotals(snapshot.Order.TotalAmount)
	labelWidth := 155.0
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(labelWidth, 6, "Net total", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, formatAmount(totals.Net), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelWidth, 6, fmt.Sprintf("VAT (%d%%)", vatRatePercent), "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, formatAmount(totals.VAT), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelWidth, 7, "Gross total", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, formatAmount(totals.Gross), "", 1, "R", false, 0, "")

	if snapshot.Order.Comment != nil && *snapshot.Order.Comment != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, tr("Comment: "+*snapshot.Order.Comment), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return &Document{
		Filename:    fmt.Sprintf("Order_%s.pdf", documentRef(snapshot.Order)),
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
	}, nil
}
