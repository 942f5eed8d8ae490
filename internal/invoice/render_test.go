package invoice

import (
	"bytes"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/harpsglobal/harps-portal-backend/pkg/config"
	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	"github.com/harpsglobal/harps-portal-backend/pkg/enums"
	"github.com/harpsglobal/harps-portal-backend/pkg/types"
)

func testSnapshot(items int) Snapshot {
	order := models.Order{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		OrderNumber: "ORD-123456-7",
		Status:      enums.OrderStatusPending,
		ShippingAddress: types.ShippingAddress{
			SiteName:    "Main site",
			Address:     "1044 Budapest, Ezred utca 2.",
			ContactName: "Kiss Anna",
		},
		CreatedAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
	var total int64
	for i := 0; i < items; i++ {
		line := models.OrderItem{
			ProductName: "Nitrile glove",
			SKU:         "NG-" + strconv.Itoa(100+i),
			Size:        "M",
			Quantity:    2,
			UnitPrice:   87000,
		}
		order.Items = append(order.Items, line)
		total += line.UnitPrice * int64(line.Quantity)
	}
	order.TotalAmount = total

	email := "buyer@acme.hu"
	taxID := "12345678-2-41"
	return Snapshot{
		Order: order,
		Buyer: &models.Profile{
			UserID:      order.UserID,
			CompanyName: "Acme Kft.",
			Email:       email,
			TaxID:       &taxID,
		},
	}
}

func testCompany() config.CompanyConfig {
	return config.CompanyConfig{
		Name:      "HARPS Global Kft.",
		Address:   "1044 Budapest, Ezred utca 2.",
		TaxNumber: "25487770-2-41",
		Email:     "office@harps.hu",
	}
}

func newRenderer(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(testCompany())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestPDFRendersDocument(t *testing.T) {
	svc := newRenderer(t)

	doc, err := svc.PDF(testSnapshot(3))
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if doc.Filename != "Order_ORD-123456-7.pdf" {
		t.Fatalf("unexpected filename %q", doc.Filename)
	}
	if doc.ContentType != "application/pdf" {
		t.Fatalf("unexpected content type %q", doc.ContentType)
	}
	if !bytes.HasPrefix(doc.Data, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestPDFPaginatesLongOrders(t *testing.T) {
	svc := newRenderer(t)

	short, err := svc.PDF(testSnapshot(2))
	if err != nil {
		t.Fatalf("PDF short: %v", err)
	}
	long, err := svc.PDF(testSnapshot(120))
	if err != nil {
		t.Fatalf("PDF long: %v", err)
	}
	if len(long.Data) <= len(short.Data) {
		t.Fatal("long order should produce a larger, multi-page document")
	}
}

func TestXLSXMatchesComputedTotals(t *testing.T) {
	svc := newRenderer(t)
	snapshot := testSnapshot(2)

	doc, err := svc.XLSX(snapshot)
	if err != nil {
		t.Fatalf("XLSX: %v", err)
	}
	if doc.Filename != "Order_ORD-123456-7.xlsx" {
		t.Fatalf("unexpected filename %q", doc.Filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(doc.Data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}

	want := ComputeTotals(snapshot.Order.TotalAmount)
	found := map[string]string{}
	for _, row := range rows {
		if len(row) >= 6 {
			found[row[4]] = row[5]
		}
	}
	if found["Net total"] != strconv.FormatInt(want.Net, 10) {
		t.Fatalf("net = %q, want %d", found["Net total"], want.Net)
	}
	if found["VAT (27%)"] != strconv.FormatInt(want.VAT, 10) {
		t.Fatalf("vat = %q, want %d", found["VAT (27%)"], want.VAT)
	}
	if found["Gross total"] != strconv.FormatInt(want.Gross, 10) {
		t.Fatalf("gross = %q, want %d", found["Gross total"], want.Gross)
	}
}

func TestExportsShareTotals(t *testing.T) {
	// both renderers derive their totals block from the same snapshot
	// through ComputeTotals; a mismatch would mean one format rendered
	// stale numbers
	snapshot := testSnapshot(5)
	fromItems := int64(0)
	for _, item := range snapshot.Order.Items {
		fromItems += item.UnitPrice * int64(item.Quantity)
	}
	if fromItems != snapshot.Order.TotalAmount {
		t.Fatalf("stored total %d must equal item sum %d", snapshot.Order.TotalAmount, fromItems)
	}

	svc := newRenderer(t)
	pdf, err := svc.PDF(snapshot)
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	xlsx, err := svc.XLSX(snapshot)
	if err != nil {
		t.Fatalf("XLSX: %v", err)
	}
	if len(pdf.Data) == 0 || len(xlsx.Data) == 0 {
		t.Fatal("both exports must produce output")
	}
}
