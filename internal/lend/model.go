package lend

import (
	"github.com/shopspring/decimal"
)

var (
	// MaxPrecision working precision of rate math
	MaxPrecision int32 = 16
)

// UtilizationRate utilization rate
//
// utilization_rate = total_borrows / (cash + total_borrows - protocol_interest)
//
// defined as 0 when there are no borrows, so the formula never divides by zero
func UtilizationRate(cash, borrows, protocolInterest decimal.Decimal) decimal.Decimal {
	if !borrows.IsPositive() {
		return decimal.Zero
	}

	total := cash.Add(borrows).Sub(protocolInterest)
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return borrows.Div(total).Truncate(MaxPrecision)
}

// GetBorrowRatePerBlock borrow rate per block
//
// piecewise linear kink curve:
//
//	utilization <= kink: rate = utilization * multiplier + base_rate
//	utilization >  kink: normal = kink * multiplier + base_rate
//	                     excess = utilization * kink
//	                     rate = excess * jump_multiplier + normal
func GetBorrowRatePerBlock(utilizationRate, baseRate, multiplier, jumpMultiplier, kink decimal.Decimal) decimal.Decimal {
	if kink.IsZero() ||
		utilizationRate.LessThanOrEqual(kink) {
		return utilizationRate.Mul(multiplier).Add(baseRate).Truncate(MaxPrecision)
	}

	normalRate := kink.Mul(multiplier).Add(baseRate)
	excessUtilRate := utilizationRate.Mul(kink)
	return excessUtilRate.Mul(jumpMultiplier).Add(normalRate).Truncate(MaxPrecision)
}

// GetSupplyRatePerBlock supply rate per block
//
// supply_rate = utilization * borrow_rate * (1 - protocol_interest_factor)
func GetSupplyRatePerBlock(utilizationRate, baseRate, multiplier, jumpMultiplier, kink, protocolInterestFactor decimal.Decimal) decimal.Decimal {
	borrowRate := GetBorrowRatePerBlock(utilizationRate, baseRate, multiplier, jumpMultiplier, kink)
	rateToPool := borrowRate.Mul(decimal.New(1, 0).Sub(protocolInterestFactor))
	return utilizationRate.Mul(rateToPool).Truncate(MaxPrecision)
}

// GetExchangeRate ctoken exchange rate
//
// exchange_rate = (cash + total_borrows - protocol_interest) / ctokens
func GetExchangeRate(cash, borrows, protocolInterest, ctokens, initialExchangeRate decimal.Decimal) decimal.Decimal {
	if !ctokens.IsPositive() {
		return initialExchangeRate
	}

	return cash.Add(borrows).Sub(protocolInterest).Div(ctokens).Truncate(MaxPrecision)
}

// InterestFactor simple interest factor accumulated over blockDelta blocks
func InterestFactor(borrowRate decimal.Decimal, blockDelta int64) decimal.Decimal {
	return borrowRate.Mul(decimal.NewFromInt(blockDelta))
}
