package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// InterestModel per asset rate curve params
//
// borrow rate follows a piecewise linear curve of the utilization rate with a
// jump multiplier applied above the kink point
type InterestModel struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID string `sql:"size:36;unique_index:model_asset_idx" json:"asset_id"`
	// 拐点 [0,1]
	Kink decimal.Decimal `sql:"type:decimal(20,16)" json:"kink"`
	// 基础利率 per block
	BaseRate decimal.Decimal `sql:"type:decimal(20,16)" json:"base_rate"`
	// 利率斜率 per block
	Multiplier decimal.Decimal `sql:"type:decimal(20,16)" json:"multiplier"`
	// 拐点之后的利率斜率 per block
	JumpMultiplier decimal.Decimal `sql:"type:decimal(20,16)" json:"jump_multiplier"`
	Version        int64           `sql:"default:0" json:"version"`
	CreatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IInterestModelStore interest model store interface
type IInterestModelStore interface {
	Save(ctx context.Context, tx *db.DB, model *InterestModel) error
	Find(ctx context.Context, assetID string) (*InterestModel, error)
	All(ctx context.Context) ([]*InterestModel, error)
	Update(ctx context.Context, tx *db.DB, model *InterestModel) error
}

// IInterestModelService interest model service interface
type IInterestModelService interface {
	BorrowRatePerBlock(ctx context.Context, assetID string, utilizationRate decimal.Decimal) (decimal.Decimal, error)
	SupplyRatePerBlock(ctx context.Context, assetID string, utilizationRate decimal.Decimal) (decimal.Decimal, error)

	SetKink(ctx context.Context, userID, assetID string, kink decimal.Decimal) error
	SetBaseRate(ctx context.Context, userID, assetID string, rate decimal.Decimal) error
	SetMultiplier(ctx context.Context, userID, assetID string, multiplier decimal.Decimal) error
	SetJumpMultiplier(ctx context.Context, userID, assetID string, multiplier decimal.Decimal) error
}
