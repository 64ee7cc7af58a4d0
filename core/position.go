package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Position user borrow position
//
// current debt is never stored pre scaled; it is always recomputed as
// principal * market.borrow_index / interest_index
type Position struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID  string `sql:"size:36;unique_index:position_idx" json:"user_id"`
	AssetID string `sql:"size:36;unique_index:position_idx" json:"asset_id"`
	// 借款本金, 记录于上次操作时
	Principal decimal.Decimal `sql:"type:decimal(32,16)" json:"principal"`
	// 上次操作时市场的 borrow_index
	InterestIndex decimal.Decimal `sql:"type:decimal(32,16);default:1" json:"interest_index"`
	// 是否抵押
	Collateral bool `sql:"default:0" json:"collateral"`
	// 连续部分清算次数
	LiquidationAttempts int64     `sql:"default:0" json:"liquidation_attempts"`
	Version             int64     `sql:"default:0" json:"version"`
	CreatedAt           time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IPositionStore position store interface
type IPositionStore interface {
	Save(ctx context.Context, tx *db.DB, position *Position) error
	Find(ctx context.Context, userID, assetID string) (*Position, error)
	FindByUser(ctx context.Context, userID string) ([]*Position, error)
	FindByAsset(ctx context.Context, assetID string) ([]*Position, error)
	Users(ctx context.Context) ([]string, error)
	All(ctx context.Context) ([]*Position, error)
	Update(ctx context.Context, tx *db.DB, position *Position) error
}
