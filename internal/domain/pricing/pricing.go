// Package pricing computes cart totals. All functions are total over valid
// input and keep full decimal precision; rounding to two places happens only
// when values are rendered.
package pricing

import (
	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the flat SST rate.
var DefaultTaxRate = decimal.RequireFromString("0.06")

var hundred = decimal.NewFromInt(100)

// Engine applies a flat tax rate.
type Engine struct {
	taxRate decimal.Decimal
}

// New creates an engine with the given tax rate (0.06 for 6%).
func New(taxRate decimal.Decimal) *Engine {
	return &Engine{taxRate: taxRate}
}

// Default creates an engine with DefaultTaxRate.
func Default() *Engine {
	return New(DefaultTaxRate)
}

func (e *Engine) TaxRate() decimal.Decimal {
	return e.taxRate
}

// Summary is the full price breakdown of a cart.
type Summary struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Base     decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
	Profit   decimal.Decimal
}

// Subtotal is the sum of unit price snapshot times quantity.
func Subtotal(lines []entity.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

// DiscountAmount returns the raw discount. It is not clamped to the
// subtotal; Base floors the discounted amount at zero instead.
func DiscountAmount(lines []entity.CartLine, d entity.DiscountSpec) decimal.Decimal {
	return discountOf(Subtotal(lines), d)
}

func discountOf(subtotal decimal.Decimal, d entity.DiscountSpec) decimal.Decimal {
	if d.Kind == enum.DiscountPercentage {
		return subtotal.Mul(d.Value).Div(hundred)
	}
	return d.Value
}

// Base is max(0, subtotal - discount).
func Base(subtotal, discount decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, subtotal.Sub(discount))
}

// TaxAmount applies the rate to the discounted base when tax is enabled.
func (e *Engine) TaxAmount(base decimal.Decimal, enabled bool) decimal.Decimal {
	if !enabled {
		return decimal.Zero
	}
	return base.Mul(e.taxRate)
}

// Total is max(0, subtotal - discount) + tax.
func (e *Engine) Total(lines []entity.CartLine, d entity.DiscountSpec, taxEnabled bool) decimal.Decimal {
	return e.Summarize(lines, d, taxEnabled).Total
}

// GrossProfit is sum((price - cost) * qty) - discount. The whole discount is
// subtracted once instead of being apportioned per line, so large discounts
// understate margin slightly. Reported margins depend on this formula.
func GrossProfit(lines []entity.CartLine, d entity.DiscountSpec) decimal.Decimal {
	margin := decimal.Zero
	for _, l := range lines {
		unit := l.UnitPriceSnapshot.Sub(l.UnitCostSnapshot)
		margin = margin.Add(unit.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return margin.Sub(DiscountAmount(lines, d))
}

// Summarize computes every figure of the breakdown in one pass.
func (e *Engine) Summarize(lines []entity.CartLine, d entity.DiscountSpec, taxEnabled bool) Summary {
	subtotal := Subtotal(lines)
	discount := discountOf(subtotal, d)
	base := Base(subtotal, discount)
	tax := e.TaxAmount(base, taxEnabled)
	return Summary{
		Subtotal: subtotal,
		Discount: discount,
		Base:     base,
		Tax:      tax,
		Total:    base.Add(tax),
		Profit:   GrossProfit(lines, d),
	}
}

// Change is received - total, or zero when nothing was collected.
func Change(received, total decimal.Decimal) decimal.Decimal {
	if received.IsZero() {
		return decimal.Zero
	}
	return received.Sub(total)
}
