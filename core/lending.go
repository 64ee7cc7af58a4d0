package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// ILendingService balance changing user operations
//
// every operation first brings the market's compounding state current, then
// asks the risk layer to approve the effect on account health, then mutates
// the ledger inside one db transaction
type ILendingService interface {
	Supply(ctx context.Context, userID, assetID string, amount decimal.Decimal) error
	Redeem(ctx context.Context, userID, assetID string, ctokens decimal.Decimal) error
	Borrow(ctx context.Context, userID, assetID string, amount decimal.Decimal) error
	Repay(ctx context.Context, userID, assetID string, amount decimal.Decimal) error
	SetCollateral(ctx context.Context, userID, assetID string, collateral bool) error
}
