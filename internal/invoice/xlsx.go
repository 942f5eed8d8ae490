package invoice

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Order"

func (s *service) XLSX(snapshot Snapshot) (*Document, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	widths := map[string]float64{"A": 18, "B": 40, "C": 10, "D": 10, "E": 16, "F": 16}
	for col, width := range widths {
		if err := f.SetColWidth(xlsxSheet, col, col, width); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	rows := [][]any{
		{"Order", documentRef(snapshot.Order)},
		{"Status", snapshot.Order.Status.String()},
		{"Created", snapshot.Order.CreatedAt.Format("2006-01-02")},
		{},
		{"Issuer", s.company.Name, s.company.Address, "Tax no: " + s.company.TaxNumber},
		append([]any{"Buyer"}, toAnySlice(buyerLines(snapshot))...),
		append([]any{"Shipping"}, toAnySlice(shippingLines(snapshot))...),
		{},
		{"SKU", "Product", "Size", "Qty", "Unit price", "Line total"},
	}
	for _, item := range snapshot.Order.Items {
		rows = append(rows, []any{
			item.SKU,
			item.ProductName,
			item.Size,
			item.Quantity,
			item.UnitPrice,
			item.UnitPrice * int64(item.Quantity),
		})
	}
	totals := ComputeTotals(snapshot.Order.TotalAmount)
	rows = append(rows,
		[]any{},
		[]any{"", "", "", "", "Net total", totals.Net},
		[]any{"", "", "", "", fmt.Sprintf("VAT (%d%%)", vatRatePercent), totals.VAT},
		[]any{"", "", "", "", "Gross total", totals.Gross},
	)

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return &Document{
		Filename:    fmt.Sprintf("Order_%s.xlsx", documentRef(snapshot.Order)),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
