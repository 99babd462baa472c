package bet

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rt(cat RateCategory, min, max int64) RateTable {
	return RateTable{cat: Rate{
		Min: decimal.NewFromInt(min),
		Max: decimal.NewFromInt(max),
	}}
}

func TestEstimatePayout(t *testing.T) {
	// stake 100 at a 10/95 band pays 950 gross
	got := EstimatePayout(decimal.NewFromInt(100), TypeSingle, rt(RateSingleDigit, 10, 95))
	assert.True(t, got.Equal(decimal.NewFromInt(950)), "got %s", got)

	// fractional stakes round to the nearest rupee
	got = EstimatePayout(decimal.NewFromInt(15), TypeSingle, rt(RateSingleDigit, 10, 95))
	assert.True(t, got.Equal(decimal.NewFromInt(143)), "got %s", got) // 142.5 rounds up

	got = EstimatePayout(decimal.NewFromInt(50), TypeJodi, rt(RateJodiDigit, 10, 950))
	assert.True(t, got.Equal(decimal.NewFromInt(4750)), "got %s", got)
}

func TestEstimatePayoutDegradesToZero(t *testing.T) {
	table := rt(RateSingleDigit, 10, 95)
	hundred := decimal.NewFromInt(100)

	// nil/missing inputs must never panic or error, only display zero
	assert.True(t, EstimatePayout(hundred, TypeSingle, nil).IsZero())
	assert.True(t, EstimatePayout(decimal.Zero, TypeSingle, table).IsZero())
	assert.True(t, EstimatePayout(decimal.NewFromInt(-5), TypeSingle, table).IsZero())
	assert.True(t, EstimatePayout(hundred, Type("bogus"), table).IsZero())
	assert.True(t, EstimatePayout(hundred, TypeJodi, table).IsZero()) // no jodi band

	// non-positive bands
	assert.True(t, EstimatePayout(hundred, TypeSingle, rt(RateSingleDigit, 0, 95)).IsZero())
	assert.True(t, EstimatePayout(hundred, TypeSingle, rt(RateSingleDigit, 10, 0)).IsZero())
}

func TestMultiplier(t *testing.T) {
	m := Multiplier(TypeSingle, rt(RateSingleDigit, 10, 95))
	assert.True(t, m.Equal(decimal.RequireFromString("9.5")), "got %s", m)

	assert.True(t, Multiplier(TypeSingle, nil).IsZero())
	assert.True(t, Multiplier(TypeJodi, rt(RateSingleDigit, 10, 95)).IsZero())
}

func TestRateCategoryMapping(t *testing.T) {
	cases := map[Type]RateCategory{
		TypeSingle:          RateSingleDigit,
		TypeJodi:            RateJodiDigit,
		TypeSinglePanna:     RateSinglePana,
		TypeDoublePanna:     RateDoublePana,
		TypeTriplePanna:     RateTriplePana,
		TypeHalfSangamOpen:  RateHalfSangam,
		TypeHalfSangamClose: RateHalfSangam,
		TypeFullSangam:      RateFullSangam,
	}
	for typ, want := range cases {
		got, err := typ.RateCategory()
		require.NoError(t, err)
		assert.Equal(t, want, got, typ)
	}
}

// Both client and server spellings of a bet-type tag must resolve to the
// same rate category.
func TestParseRateCategoryAcceptsBothSpellings(t *testing.T) {
	pairs := [][2]string{
		{"single_panna", "singlePanna"},
		{"double_panna", "doublePanna"},
		{"triple_panna", "triplePanna"},
		{"half_sangam", "halfSangam"},
		{"full_sangam", "fullSangam"},
	}
	for _, p := range pairs {
		a, ok := ParseRateCategory(p[0])
		require.True(t, ok, p[0])
		b, ok := ParseRateCategory(p[1])
		require.True(t, ok, p[1])
		assert.Equal(t, a, b)
	}

	_, ok := ParseRateCategory("roulette")
	assert.False(t, ok)
}
