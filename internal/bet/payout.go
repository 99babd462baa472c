package bet

import "github.com/shopspring/decimal"

// Rate is one band of the server's game-rate table: staking Min returns Max
// gross on a win.
type Rate struct {
	Min decimal.Decimal `json:"min" yaml:"min"`
	Max decimal.Decimal `json:"max" yaml:"max"`
}

// RateTable maps rate categories to their bands, as served by the public
// game-rate endpoint.
type RateTable map[RateCategory]Rate

// ParseRateCategory accepts both snake_case and camelCase spellings of a
// rate category tag.
func ParseRateCategory(tag string) (RateCategory, bool) {
	t, ok := ParseType(tag)
	if !ok {
		return "", false
	}
	cat, err := t.RateCategory()
	if err != nil {
		return "", false
	}
	return cat, true
}

// EstimatePayout computes the displayed gross payout for staking amount on
// a bet of type t: round((amount/min)*max). Missing or non-positive inputs
// degrade to zero rather than an error; the estimate decorates a form and
// must never break it.
func EstimatePayout(amount decimal.Decimal, t Type, rates RateTable) decimal.Decimal {
	if amount.Sign() <= 0 || rates == nil {
		return decimal.Zero
	}
	cat, err := t.RateCategory()
	if err != nil {
		return decimal.Zero
	}
	rate, ok := rates[cat]
	if !ok || rate.Min.Sign() <= 0 || rate.Max.Sign() <= 0 {
		return decimal.Zero
	}
	return amount.Div(rate.Min).Mul(rate.Max).Round(0)
}

// Multiplier returns the per-unit payout factor (max/min) for t, zero when
// the table has no usable band. Used by rate displays.
func Multiplier(t Type, rates RateTable) decimal.Decimal {
	if rates == nil {
		return decimal.Zero
	}
	cat, err := t.RateCategory()
	if err != nil {
		return decimal.Zero
	}
	rate, ok := rates[cat]
	if !ok || rate.Min.Sign() <= 0 || rate.Max.Sign() <= 0 {
		return decimal.Zero
	}
	return rate.Max.Div(rate.Min)
}
