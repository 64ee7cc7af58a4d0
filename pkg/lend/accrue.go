package lend

import (
	"lever/core"
	"lever/internal/lend"

	"github.com/shopspring/decimal"
)

// Accrue advances the market's compounding state from the controller's last
// accrual block up to block. Mutates market and controller in place; callers
// persist both atomically.
//
//	interest_factor = borrow_rate * block_delta
//	interest_accumulated = interest_factor * total_borrows
//	total_borrows += interest_accumulated
//	protocol_interest += interest_accumulated * protocol_interest_factor
//	borrow_index += borrow_index * interest_factor
func Accrue(market *core.Market, controller *core.Controller, model *core.InterestModel, cash decimal.Decimal, block int64) error {
	// accrual happens at most once per block per market
	if controller.LastAccrualBlock == block {
		return nil
	}

	if controller.LastAccrualBlock > block {
		return core.ErrClockMovedBack
	}

	if !market.BorrowIndex.IsPositive() {
		market.BorrowIndex = decimal.New(1, 0)
	}

	utilizationRate := lend.UtilizationRate(cash, market.TotalBorrows, market.ProtocolInterest)
	borrowRate := lend.GetBorrowRatePerBlock(utilizationRate, model.BaseRate, model.Multiplier, model.JumpMultiplier, model.Kink)

	if controller.MaxBorrowRate.IsPositive() && borrowRate.GreaterThan(controller.MaxBorrowRate) {
		return core.ErrBorrowRateTooHigh
	}

	blockDelta := block - controller.LastAccrualBlock
	interestFactor := lend.InterestFactor(borrowRate, blockDelta)
	interestAccumulated := market.TotalBorrows.Mul(interestFactor).Truncate(lend.MaxPrecision)

	market.TotalBorrows = market.TotalBorrows.Add(interestAccumulated)
	market.ProtocolInterest = market.ProtocolInterest.Add(
		interestAccumulated.Mul(controller.ProtocolInterestFactor).Truncate(lend.MaxPrecision))
	market.BorrowIndex = market.BorrowIndex.Add(
		market.BorrowIndex.Mul(interestFactor).
			Shift(lend.MaxPrecision).Ceil().Shift(-lend.MaxPrecision))

	controller.LastAccrualBlock = block

	return nil
}
