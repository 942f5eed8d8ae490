package catalog

import (
	"strconv"
	"strings"

	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	"github.com/harpsglobal/harps-portal-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// Reserved specification keys driving price derivation.
const (
	SpecKeyUnit                = "unit"
	SpecKeyItemsPerDispenser   = "items_per_dispenser"
	SpecKeyDispensersPerCarton = "dispensers_per_carton"

	defaultPackagingCount = 1
)

// Prices are derived on read. BasePrice is the net price of one
// dispenser box; unit and carton prices follow from the packaging
// counts in the specification map.
type Prices struct {
	Base   int64 `json:"base_price"`
	Unit   int64 `json:"unit_price"`
	Carton int64 `json:"carton_price"`
}

// DerivePrices computes display prices for a product. Unit price is the
// base divided by items per dispenser, rounded half up; carton price is
// the base multiplied by dispensers per carton. Zero, absent, or
// non-numeric counts fall back to 1 so a product is always priceable.
func DerivePrices(product *models.Product) Prices {
	items := packagingCount(product.Specifications, SpecKeyItemsPerDispenser)
	dispensers := packagingCount(product.Specifications, SpecKeyDispensersPerCarton)

	unit := decimal.NewFromInt(product.BasePrice).
		Div(decimal.NewFromInt(items)).
		Round(0).
		IntPart()

	return Prices{
		Base:   product.BasePrice,
		Unit:   unit,
		Carton: product.BasePrice * dispensers,
	}
}

func packagingCount(spec types.JSONMap, key string) int64 {
	if spec == nil {
		return defaultPackagingCount
	}
	raw, ok := spec[key]
	if !ok {
		return defaultPackagingCount
	}

	var count int64
	switch v := raw.(type) {
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return defaultPackagingCount
		}
		count = parsed
	case float64:
		count = int64(v)
	case int:
		count = int64(v)
	case int64:
		count = v
	default:
		return defaultPackagingCount
	}

	if count <= 0 {
		return defaultPackagingCount
	}
	return count
}
