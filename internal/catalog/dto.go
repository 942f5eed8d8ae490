package catalog

import (
	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
)

// ProductView is a catalog row with its derived display prices.
type ProductView struct {
	models.Product
	Prices Prices `json:"prices"`
}

// NewProductView attaches derived prices to a product row.
func NewProductView(product models.Product) ProductView {
	return ProductView{
		Product: product,
		Prices:  DerivePrices(&product),
	}
}

// CreateInput carries the fields for a new catalog listing.
type CreateInput struct {
	SKU            string
	Name           string
	Category       string
	BasePrice      int64
	ImageURL       *string
	Specifications map[string]string
	Variants       []string
}

// UpdateInput carries editable product fields. Nil means keep.
type UpdateInput struct {
	Name           *string
	Category       *string
	BasePrice      *int64
	ImageURL       *string
	Specifications map[string]string
	Variants       []string
}
