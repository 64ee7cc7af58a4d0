package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// RiskParams per asset liquidation decision params
type RiskParams struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID string `sql:"size:36;unique_index:risk_asset_idx" json:"asset_id"`
	// 连续部分清算次数上限, 超过则强制全额清算
	MaxAttempts int64 `sql:"default:0" json:"max_attempts"`
	// 部分清算金额下限(USD), 低于此值直接全额清算
	MinPartialSum decimal.Decimal `sql:"type:decimal(32,16)" json:"min_partial_sum"`
	// 要求的抵押率, > 1
	Threshold decimal.Decimal `sql:"type:decimal(20,16)" json:"threshold"`
	// 清算奖励因子, >= 1
	LiquidationFee decimal.Decimal `sql:"type:decimal(20,16)" json:"liquidation_fee"`
	Version        int64           `sql:"default:0" json:"version"`
	CreatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Liquidation emitted record of one executed liquidation
type Liquidation struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID string `sql:"size:36;unique_index:liquidation_trace_idx" json:"trace_id"`
	UserID  string `sql:"size:36;index:liquidation_user_idx" json:"user_id"`
	// AssetID originating borrow asset
	AssetID string `sql:"size:36" json:"asset_id"`
	// RepayValue repaid debt value in USD
	RepayValue decimal.Decimal `sql:"type:decimal(32,16)" json:"repay_value"`
	// SeizedAssets json list of collateral assets drawn from
	SeizedAssets string    `sql:"type:text" json:"seized_assets"`
	Partial      bool      `sql:"default:0" json:"partial"`
	CreatedAt    time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// IRiskParamsStore risk params store interface
type IRiskParamsStore interface {
	Save(ctx context.Context, tx *db.DB, params *RiskParams) error
	Find(ctx context.Context, assetID string) (*RiskParams, error)
	All(ctx context.Context) ([]*RiskParams, error)
	Update(ctx context.Context, tx *db.DB, params *RiskParams) error
}

// ILiquidationStore liquidation record store interface
type ILiquidationStore interface {
	Create(ctx context.Context, tx *db.DB, liquidation *Liquidation) error
	FindByUser(ctx context.Context, userID string) ([]*Liquidation, error)
}

// IRiskService risk manager interface
type IRiskService interface {
	// LiquidateUnsafeLoan seizes collateral of an undercollateralized account,
	// either partially or completely, settling against the liquidation reserve
	LiquidateUnsafeLoan(ctx context.Context, userID, assetID string) (*Liquidation, error)
	// IsUnsafe reports whether the account's collateral no longer covers
	// debt * threshold for the given borrow asset
	IsUnsafe(ctx context.Context, userID, assetID string) (bool, error)

	SetMaxAttempts(ctx context.Context, userID, assetID string, max int64) error
	SetMinPartialSum(ctx context.Context, userID, assetID string, min decimal.Decimal) error
	SetThreshold(ctx context.Context, userID, assetID string, threshold decimal.Decimal) error
	SetLiquidationFee(ctx context.Context, userID, assetID string, fee decimal.Decimal) error
}

// IAccountService account health interface
type IAccountService interface {
	// GetHypotheticalAccountLiquidity determines what the account liquidity
	// would be if the given amounts were redeemed/borrowed. Returns the excess
	// of collateral value over debt value and the shortfall below it; at most
	// one of the two is nonzero.
	GetHypotheticalAccountLiquidity(ctx context.Context, userID, assetID string, redeemTokens, borrowAmount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error)
	// AccountValues total collateral value and borrow value in USD
	AccountValues(ctx context.Context, userID string) (decimal.Decimal, decimal.Decimal, error)
	// SeizableValue total value of collateral enabled supplies in USD
	SeizableValue(ctx context.Context, userID string) (decimal.Decimal, error)
	RedeemAllowed(ctx context.Context, userID, assetID string, redeemTokens decimal.Decimal) error
	BorrowAllowed(ctx context.Context, userID, assetID string, borrowAmount decimal.Decimal) error
}
