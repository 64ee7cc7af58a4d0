package lend

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestShouldCompleteLiquidation(t *testing.T) {
	fee := decimal.RequireFromString("1.05")
	minPartial := decimal.NewFromInt(100)

	// 90000 debt against 100000 seizable at attempts >= max forces the
	// complete path
	if !ShouldCompleteLiquidation(decimal.NewFromInt(90000), decimal.NewFromInt(90000), decimal.NewFromInt(100000), fee, 3, 3, minPartial) {
		t.Error("expected complete liquidation when attempts are exhausted")
	}

	// reward adjusted debt above the seizable collateral
	if !ShouldCompleteLiquidation(decimal.NewFromInt(100000), decimal.NewFromInt(100000), decimal.NewFromInt(100000), fee, 0, 3, minPartial) {
		t.Error("expected complete liquidation when collateral cannot cover the reward")
	}

	// tiny debt falls below the partial minimum
	if !ShouldCompleteLiquidation(decimal.NewFromInt(50), decimal.NewFromInt(50), decimal.NewFromInt(100000), fee, 0, 3, minPartial) {
		t.Error("expected complete liquidation below the partial minimum")
	}

	// healthy partial case
	if ShouldCompleteLiquidation(decimal.NewFromInt(10000), decimal.NewFromInt(10000), decimal.NewFromInt(100000), fee, 0, 3, minPartial) {
		t.Error("expected partial liquidation")
	}
}

func TestPartialRepayValue(t *testing.T) {
	fee := decimal.RequireFromString("1.25")

	v := PartialRepayValue(decimal.NewFromInt(1000), fee, decimal.NewFromInt(100))
	if v.String() != "800" {
		t.Error("unexpected partial repay value:", v)
	}

	// floored at the minimum
	v = PartialRepayValue(decimal.NewFromInt(100), fee, decimal.NewFromInt(100))
	if v.String() != "100" {
		t.Error("unexpected floored repay value:", v)
	}
}
