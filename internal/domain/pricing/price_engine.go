package pricing

import (
	"strings"

	"github.com/meatshop/backend/internal/domain/cart"
	"github.com/shopspring/decimal"
)

// Weight units the catalog declares. The Cyrillic spellings are the localized
// variants used alongside the Latin ones.
var (
	kilogramUnits = map[string]struct{}{"kg": {}, "кг": {}}
	gramUnits     = map[string]struct{}{"g": {}, "г": {}}
)

var grams = decimal.NewFromInt(1000)

// Engine converts a catalog item's declared weight, unit and quantity into a
// monetary amount at a fixed price-per-kilogram rate. It is pure: no state
// beyond the rate, no I/O, no failure modes. Malformed inputs fall back to
// defined defaults instead of erroring.
type Engine struct {
	pricePerKilogram decimal.Decimal
}

// NewEngine creates a price engine with the given price per kilogram
func NewEngine(pricePerKilogram decimal.Decimal) *Engine {
	return &Engine{pricePerKilogram: pricePerKilogram}
}

// WeightInKilograms normalizes a declared weight to kilograms.
// Grams are divided by 1000, kilograms pass through, and an unrecognized unit
// passes the value through unchanged. An absent weight is priced as exactly
// one kilogram equivalent rather than erroring.
func WeightInKilograms(w *cart.Weight) decimal.Decimal {
	if w == nil {
		return decimal.NewFromInt(1)
	}
	unit := strings.ToLower(strings.TrimSpace(w.Unit))
	value := decimal.NewFromFloat(w.Value)
	if _, ok := kilogramUnits[unit]; ok {
		return value
	}
	if _, ok := gramUnits[unit]; ok {
		return value.Div(grams)
	}
	return value
}

// UnitPrice returns the price of one unit of an item with the given weight.
// The result is unrounded; rounding happens only at final formatting so that
// multi-item sums do not compound rounding error.
func (e *Engine) UnitPrice(w *cart.Weight) decimal.Decimal {
	return e.pricePerKilogram.Mul(WeightInKilograms(w))
}

// LineTotal returns the unrounded total for one line item
func (e *Engine) LineTotal(item cart.Item) decimal.Decimal {
	return e.UnitPrice(item.Weight).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// CartTotal sums the line totals of all items without intermediate rounding
func (e *Engine) CartTotal(items []cart.Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(e.LineTotal(item))
	}
	return total
}

// FormatAmount renders a monetary amount with exactly two fraction digits.
// Rounding mode is decimal's half-away-from-zero; this is the single place
// amounts are rounded.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// CartTotalString returns the formatted cart total, rounded as the final step
func (e *Engine) CartTotalString(items []cart.Item) string {
	return FormatAmount(e.CartTotal(items))
}
