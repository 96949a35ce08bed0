package valueobject

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// RateConfig is a partner's tenure-bucketed annual interest addend table.
// Keys are tenures in months rendered as strings, values are percentage
// points added on top of the loan's base annual rate.
type RateConfig struct {
	rates  map[string]decimal.Decimal
	active bool
}

var hundred = decimal.NewFromInt(100)

// DefaultBNIRateTable is applied when no active BNI configuration exists.
var DefaultBNIRateTable = map[string]decimal.Decimal{
	"1":  decimal.RequireFromString("1.5"),
	"2":  decimal.RequireFromString("1.5"),
	"3":  decimal.RequireFromString("1.5"),
	"4":  decimal.RequireFromString("2"),
	"5":  decimal.RequireFromString("2"),
	"6":  decimal.RequireFromString("2"),
	"7":  decimal.RequireFromString("2.5"),
	"8":  decimal.RequireFromString("2.5"),
	"9":  decimal.RequireFromString("2.5"),
	"10": decimal.RequireFromString("3"),
	"11": decimal.RequireFromString("3"),
	"12": decimal.RequireFromString("3"),
}

// NewRateConfig copies rates into a new config.
func NewRateConfig(rates map[string]decimal.Decimal, active bool) RateConfig {
	cp := make(map[string]decimal.Decimal, len(rates))
	for k, v := range rates {
		cp[k] = v
	}
	return RateConfig{rates: cp, active: active}
}

// DefaultBNIRateConfig returns the fallback BNI table as an active config.
func DefaultBNIRateConfig() RateConfig {
	return NewRateConfig(DefaultBNIRateTable, true)
}

// Active reports whether the config is enabled.
func (c RateConfig) Active() bool { return c.active }

// IsZero returns true for a config that was never loaded.
func (c RateConfig) IsZero() bool { return c.rates == nil && !c.active }

// Rates returns a copy of the tenure table.
func (c RateConfig) Rates() map[string]decimal.Decimal {
	cp := make(map[string]decimal.Decimal, len(c.rates))
	for k, v := range c.rates {
		cp[k] = v
	}
	return cp
}

// Addend returns the percentage-point addend for tenure, or zero when the
// tenure has no entry.
func (c RateConfig) Addend(tenure int) decimal.Decimal {
	v, ok := c.rates[strconv.Itoa(tenure)]
	if !ok {
		return decimal.Zero
	}
	return v
}

// ResolveAnnualRate folds the tenure addend into base. An inactive config
// resolves against DefaultBNIRateTable instead.
func (c RateConfig) ResolveAnnualRate(base decimal.Decimal, tenure int) decimal.Decimal {
	cfg := c
	if !c.active {
		cfg = DefaultBNIRateConfig()
	}
	return base.Add(cfg.Addend(tenure).Div(hundred))
}
