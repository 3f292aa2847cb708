package decimal

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Hundred returns 100 as a decimal.
func Hundred() decimal.Decimal { return hundred }

// RoundMoney rounds a monetary value to centavos.
func RoundMoney(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// RoundWeight rounds kilograms to two places.
func RoundWeight(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// RoundArrobas rounds arroba quantities to four places.
func RoundArrobas(d decimal.Decimal) decimal.Decimal { return d.Round(4) }

// SafeDiv divides a by b and returns zero when b is zero.
func SafeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

// PercentOf returns pct% of base.
func PercentOf(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred)
}

// GrowthFactor returns 1 + pct/100.
func GrowthFactor(pct decimal.Decimal) decimal.Decimal {
	return one.Add(pct.Div(hundred))
}

// ShrinkFactor returns 1 - pct/100.
func ShrinkFactor(pct decimal.Decimal) decimal.Decimal {
	return one.Sub(pct.Div(hundred))
}

// ValueOr dereferences d or returns fallback when d is nil.
func ValueOr(d *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if d == nil {
		return fallback
	}
	return *d
}

// Ptr returns a pointer to a copy of d.
func Ptr(d decimal.Decimal) *decimal.Decimal { return &d }
