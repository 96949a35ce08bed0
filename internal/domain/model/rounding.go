package model

import "github.com/shopspring/decimal"

// RoundingPolicy turns an intermediate amount into whole currency units.
type RoundingPolicy func(decimal.Decimal) decimal.Decimal

// RoundHalfEven rounds to the nearest unit, ties to even.
func RoundHalfEven(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(0)
}

// RoundCeiling rounds toward positive infinity.
func RoundCeiling(d decimal.Decimal) decimal.Decimal {
	return d.Ceil()
}

// RoundMonthlyRate rounds a monthly rate fraction to 4 places, ties to even.
func RoundMonthlyRate(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(4)
}
