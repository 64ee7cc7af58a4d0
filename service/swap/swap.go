package swap

import (
	"context"

	"lever/core"
	"lever/internal/lend"
	"lever/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type service struct {
	ledger core.ILedger
	oracle core.IPriceOracleService
}

// New oracle priced swap venue
//
// converts at feed prices with no slippage, settling against the ledger. Good
// enough for a single node deployment; a dex backed venue plugs in behind the
// same interface.
func New(ledger core.ILedger, oracle core.IPriceOracleService) core.ISwapService {
	return &service{
		ledger: ledger,
		oracle: oracle,
	}
}

func (s *service) SwapExactTarget(ctx context.Context, tx *db.DB, payer, sourceAssetID, targetAssetID string, maxSourceAmount, targetAmount decimal.Decimal) (decimal.Decimal, error) {
	if !targetAmount.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	sourcePrice, e := s.oracle.GetUnderlyingPrice(ctx, sourceAssetID)
	if e != nil {
		return decimal.Zero, e
	}

	targetPrice, e := s.oracle.GetUnderlyingPrice(ctx, targetAssetID)
	if e != nil {
		return decimal.Zero, e
	}

	sourceAmount, ok := number.Div(targetAmount.Mul(targetPrice), sourcePrice)
	if !ok {
		return decimal.Zero, core.ErrSwapFailed
	}
	sourceAmount = number.Ceil(sourceAmount, lend.MaxPrecision)

	if sourceAmount.GreaterThan(maxSourceAmount) {
		return decimal.Zero, core.ErrSwapFailed
	}

	if e := s.ledger.Withdraw(ctx, tx, sourceAssetID, payer, sourceAmount); e != nil {
		return decimal.Zero, core.ErrSwapFailed
	}

	if e := s.ledger.Deposit(ctx, tx, targetAssetID, payer, targetAmount); e != nil {
		return decimal.Zero, e
	}

	return sourceAmount, nil
}
