package invoice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harpsglobal/harps-portal-backend/pkg/config"
	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
)

// Snapshot is everything a rendered order document needs: the immutable
// order with its items and the buyer profile as known at render time.
// The issuer block comes from the renderer's own configuration.
type Snapshot struct {
	Order models.Order
	Buyer *models.Profile
}

// Document is a rendered export ready to stream to the client.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Service renders order snapshots into downloadable documents. Both
// formats must reproduce identical totals from the same snapshot.
type Service interface {
	PDF(snapshot Snapshot) (*Document, error)
	XLSX(snapshot Snapshot) (*Document, error)
}

type service struct {
	company config.CompanyConfig
}

// NewService builds an invoice renderer for the configured issuer.
func NewService(company config.CompanyConfig) (Service, error) {
	if company.Name == "" {
		return nil, fmt.Errorf("issuer company name required")
	}
	return &service{company: company}, nil
}

// documentRef is the order number when present, the raw id otherwise.
func documentRef(order models.Order) string {
	if order.OrderNumber != "" {
		return order.OrderNumber
	}
	return order.ID.String()
}

// formatAmount renders whole forints with space-grouped thousands.
func formatAmount(value int64) string {
	raw := strconv.FormatInt(value, 10)
	negative := strings.HasPrefix(raw, "-")
	if negative {
		raw = raw[1:]
	}
	var groups []string
	for len(raw) > 3 {
		groups = append([]string{raw[len(raw)-3:]}, groups...)
		raw = raw[:len(raw)-3]
	}
	groups = append([]string{raw}, groups...)
	out := strings.Join(groups, " ")
	if negative {
		out = "-" + out
	}
	return out + " Ft"
}

func buyerName(snapshot Snapshot) string {
	if snapshot.Buyer != nil && snapshot.Buyer.CompanyName != "" {
		return snapshot.Buyer.CompanyName
	}
	return "-"
}

func buyerLines(snapshot Snapshot) []string {
	lines := []string{buyerName(snapshot)}
	buyer := snapshot.Buyer
	if buyer == nil {
		return lines
	}
	var location []string
	if buyer.Zip != nil && *buyer.Zip != "" {
		location = append(location, *buyer.Zip)
	}
	if buyer.City != nil && *buyer.City != "" {
		location = append(location, *buyer.City)
	}
	if buyer.Address != nil && *buyer.Address != "" {
		location = append(location, *buyer.Address)
	}
	if len(location) > 0 {
		lines = append(lines, strings.Join(location, " "))
	}
	if buyer.TaxID != nil && *buyer.TaxID != "" {
		lines = append(lines, "Tax no: "+*buyer.TaxID)
	}
	if buyer.Email != "" {
		lines = append(lines, buyer.Email)
	}
	return lines
}

func shippingLines(snapshot Snapshot) []string {
	shipping := snapshot.Order.ShippingAddress
	var lines []string
	if shipping.SiteName != "" {
		lines = append(lines, shipping.SiteName)
	}
	if shipping.Address != "" {
		lines = append(lines, shipping.Address)
	}
	if shipping.ContactName != "" {
		lines = append(lines, shipping.ContactName)
	}
	if len(lines) == 0 {
		lines = append(lines, "-")
	}
	return lines
}
