package core

import (
	"context"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// ISwapService swap venue collaborator
type ISwapService interface {
	// SwapExactTarget converts payer funds so that the payer receives exactly
	// targetAmount of targetAsset, spending at most maxSourceAmount of
	// sourceAsset. Returns the amount of source asset actually spent.
	SwapExactTarget(ctx context.Context, tx *db.DB, payer, sourceAssetID, targetAssetID string, maxSourceAmount, targetAmount decimal.Decimal) (decimal.Decimal, error)
}
