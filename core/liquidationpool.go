package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// LiquidationPool per asset liquidation reserve params
type LiquidationPool struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID string `sql:"size:36;unique_index:lpool_asset_idx" json:"asset_id"`
	// 偏离容忍度 [0,1], 实际值在理想值上下该比例内不触发调仓
	DeviationThreshold decimal.Decimal `sql:"type:decimal(20,16)" json:"deviation_threshold"`
	// 理想储备 = 工作池流动性 * balance_ratio
	BalanceRatio decimal.Decimal `sql:"type:decimal(20,16)" json:"balance_ratio"`
	// 理想储备上限(USD), 0 表示不限制
	MaxIdealBalance decimal.Decimal `sql:"type:decimal(32,16);default:0" json:"max_ideal_balance"`
	Version         int64           `sql:"default:0" json:"version"`
	CreatedAt       time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Transfer one balancing move between two liquidation reserves
type Transfer struct {
	// FromAssetID reserve with oversupply, the debited side
	FromAssetID string `json:"from_asset_id"`
	// ToAssetID reserve with shortfall
	ToAssetID string `json:"to_asset_id"`
	// Amount in units of the debited asset
	Amount decimal.Decimal `json:"amount"`
	// TargetAmount in units of the credited asset
	TargetAmount decimal.Decimal `json:"target_amount"`
}

// ILiquidationPoolStore liquidation pool store interface
type ILiquidationPoolStore interface {
	Save(ctx context.Context, tx *db.DB, pool *LiquidationPool) error
	Find(ctx context.Context, assetID string) (*LiquidationPool, error)
	All(ctx context.Context) ([]*LiquidationPool, error)
	Update(ctx context.Context, tx *db.DB, pool *LiquidationPool) error
}

// IBalancingService liquidation reserve balancing engine
type IBalancingService interface {
	// CollectTransfers computes the balancing plan against the current ledger
	// snapshot without executing it
	CollectTransfers(ctx context.Context) ([]*Transfer, error)
	// Balance executes the plan through the swap venue; the first conversion
	// failure aborts the remaining transfers
	Balance(ctx context.Context) error

	SetDeviationThreshold(ctx context.Context, userID, assetID string, threshold decimal.Decimal) error
	SetBalanceRatio(ctx context.Context, userID, assetID string, ratio decimal.Decimal) error
	SetMaxIdealBalance(ctx context.Context, userID, assetID string, max decimal.Decimal) error
}
