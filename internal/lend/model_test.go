package lend

import (
	"testing"

	"github.com/bmizerany/assert"
	"github.com/shopspring/decimal"
)

func TestUtilizationRate(t *testing.T) {
	cases := []struct {
		cash     string
		borrows  string
		interest string
		expect   string
	}{
		{"40000", "0", "0", "0"},
		{"20000", "20000", "0", "0.5"},
		{"0", "100", "0", "1"},
		{"100", "100", "100", "1"},
		{"0", "0", "0", "0"},
	}

	for _, c := range cases {
		rate := UtilizationRate(decimal.RequireFromString(c.cash), decimal.RequireFromString(c.borrows), decimal.RequireFromString(c.interest))
		assert.Equal(t, c.expect, rate.String())

		if rate.IsNegative() || rate.GreaterThan(decimal.New(1, 0)) {
			t.Error("utilization out of [0,1]:", rate)
		}
	}
}

func TestUtilizationRateInterestExceedsCash(t *testing.T) {
	// protocol interest above cash shrinks the effective pool below total
	// borrows and the rate goes past 1; no clamp, the curve prices the
	// degenerate state accordingly
	rate := UtilizationRate(decimal.NewFromInt(50), decimal.NewFromInt(100), decimal.NewFromInt(100))
	assert.Equal(t, "2", rate.String())
}

func TestGetBorrowRatePerBlock(t *testing.T) {
	kink := decimal.RequireFromString("0.8")
	baseRate := decimal.Zero
	multiplier := decimal.RequireFromString("0.000000009")
	jumpMultiplier := decimal.RequireFromString("0.000000207")

	// deposit 40000 then borrow 20000
	util := UtilizationRate(decimal.NewFromInt(20000), decimal.NewFromInt(20000), decimal.Zero)
	assert.Equal(t, "0.5", util.String())

	rate := GetBorrowRatePerBlock(util, baseRate, multiplier, jumpMultiplier, kink)
	assert.Equal(t, "0.0000000045", rate.String())

	// at the kink the flat branch applies
	atKink := GetBorrowRatePerBlock(kink, baseRate, multiplier, jumpMultiplier, kink)
	assert.Equal(t, kink.Mul(multiplier).String(), atKink.String())

	// above the kink the jump multiplier raises the rate
	aboveKink := GetBorrowRatePerBlock(decimal.RequireFromString("0.9"), baseRate, multiplier, jumpMultiplier, kink)
	if !aboveKink.GreaterThan(atKink) {
		t.Error("rate above kink should exceed rate at kink:", aboveKink, atKink)
	}

	normal := kink.Mul(multiplier).Add(baseRate)
	excess := decimal.RequireFromString("0.9").Mul(kink)
	expect := excess.Mul(jumpMultiplier).Add(normal).Truncate(MaxPrecision)
	assert.Equal(t, expect.String(), aboveKink.String())
}

func TestGetSupplyRatePerBlock(t *testing.T) {
	util := decimal.RequireFromString("0.5")
	multiplier := decimal.RequireFromString("0.000000009")
	factor := decimal.RequireFromString("0.1")

	borrowRate := GetBorrowRatePerBlock(util, decimal.Zero, multiplier, decimal.Zero, decimal.RequireFromString("0.8"))
	expect := util.Mul(borrowRate.Mul(decimal.New(1, 0).Sub(factor))).Truncate(MaxPrecision)

	rate := GetSupplyRatePerBlock(util, decimal.Zero, multiplier, decimal.Zero, decimal.RequireFromString("0.8"), factor)
	assert.Equal(t, expect.String(), rate.String())
}

func TestGetExchangeRate(t *testing.T) {
	initRate := decimal.New(1, 0)

	// no ctokens yet falls back to the initial rate
	rate := GetExchangeRate(decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, initRate)
	assert.Equal(t, initRate.String(), rate.String())

	rate = GetExchangeRate(decimal.NewFromInt(110), decimal.NewFromInt(10), decimal.NewFromInt(20), decimal.NewFromInt(100), initRate)
	assert.Equal(t, "1", rate.String())
}
