package lend

import (
	"lever/pkg/number"

	"github.com/shopspring/decimal"
)

// ShouldCompleteLiquidation complete vs partial decision
//
// complete when the reward adjusted debt cannot be covered by the seizable
// collateral, when the borrower ran out of partial attempts, or when the
// partial bite would be too small to bother with
func ShouldCompleteLiquidation(totalDebtValue, debtValue, seizableValue, liquidationFee decimal.Decimal, attempts, maxAttempts int64, minPartialSum decimal.Decimal) bool {
	if totalDebtValue.Mul(liquidationFee).GreaterThan(seizableValue) {
		return true
	}

	if attempts >= maxAttempts {
		return true
	}

	partial, ok := number.Div(debtValue, liquidationFee)
	if !ok {
		return true
	}

	return partial.LessThan(minPartialSum)
}

// PartialRepayValue usd value repaid by one partial liquidation step
func PartialRepayValue(debtValue, liquidationFee, minPartialSum decimal.Decimal) decimal.Decimal {
	partial, ok := number.Div(debtValue, liquidationFee)
	if !ok {
		return decimal.Zero
	}

	return number.Max(partial, minPartialSum)
}
