package invoice

import "github.com/shopspring/decimal"

// vatRatePercent is the Hungarian standard VAT rate applied to every
// order document.
const vatRatePercent = 27

// Totals carries the derived monetary summary of an order. Net is the
// stored order total; VAT and gross are recomputed at render time and
// never stored.
type Totals struct {
	Net   int64 `json:"net"`
	VAT   int64 `json:"vat"`
	Gross int64 `json:"gross"`
}

// ComputeTotals derives VAT and gross from a net amount in whole
// forints. VAT rounds half away from zero.
func ComputeTotals(net int64) Totals {
	vat := decimal.NewFromInt(net).
		Mul(decimal.NewFromInt(vatRatePercent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
	return Totals{Net: net, VAT: vat, Gross: net + vat}
}
