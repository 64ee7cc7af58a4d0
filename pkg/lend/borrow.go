package lend

import (
	"lever/core"
	"lever/internal/lend"

	"github.com/shopspring/decimal"
)

// BorrowBalance current debt of a position
//
// balance = position.principal * market.borrow_index / position.interest_index
//
// the principal is scaled lazily on read so accrual never iterates accounts
func BorrowBalance(b *core.Position, market *core.Market) (decimal.Decimal, error) {
	if b == nil || !b.Principal.IsPositive() {
		return decimal.Zero, nil
	}

	index := market.BorrowIndex
	if !index.IsPositive() {
		index = decimal.New(1, 0)
	}

	interestIndex := b.InterestIndex
	if !interestIndex.IsPositive() {
		interestIndex = index
	}

	principalTimesIndex := b.Principal.Mul(index)
	result := principalTimesIndex.Div(interestIndex).
		Shift(lend.MaxPrecision).Ceil().Shift(-lend.MaxPrecision)

	return result, nil
}
