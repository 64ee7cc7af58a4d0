package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Operation pool operation kind, used by the pause keeper
type Operation string

const (
	// OperationSupply supply underlying asset
	OperationSupply Operation = "supply"
	// OperationRedeem redeem ctokens for the underlying asset
	OperationRedeem Operation = "redeem"
	// OperationBorrow borrow underlying asset
	OperationBorrow Operation = "borrow"
	// OperationRepay repay borrowed asset
	OperationRepay Operation = "repay"
)

// Controller per asset accrual and risk control params
type Controller struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID string `sql:"size:36;unique_index:ctrl_asset_idx" json:"asset_id"`
	// 上次计息区块
	LastAccrualBlock int64 `sql:"default:0" json:"last_accrual_block"`
	// 协议利息率 [0,1], 借款利息中划归协议的比例
	ProtocolInterestFactor decimal.Decimal `sql:"type:decimal(20,16)" json:"protocol_interest_factor"`
	// 协议利息超过该值时归集到清算储备池, 0 表示不归集
	ProtocolInterestThreshold decimal.Decimal `sql:"type:decimal(32,16)" json:"protocol_interest_threshold"`
	// 借款利率上限, 超过即报错
	MaxBorrowRate decimal.Decimal `sql:"type:decimal(20,16)" json:"max_borrow_rate"`
	// 抵押因子 (0,1], 可借贷价值 / 抵押资产价值
	CollateralFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"collateral_factor"`
	// 总借款上限(USD), 0 表示不限制
	BorrowCap decimal.Decimal `sql:"type:decimal(32,16);default:0" json:"borrow_cap"`

	SupplyPaused bool `sql:"default:0" json:"supply_paused"`
	RedeemPaused bool `sql:"default:0" json:"redeem_paused"`
	BorrowPaused bool `sql:"default:0" json:"borrow_paused"`
	RepayPaused  bool `sql:"default:0" json:"repay_paused"`

	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IsPaused reports whether the operation is paused for this market
func (c *Controller) IsPaused(op Operation) bool {
	switch op {
	case OperationSupply:
		return c.SupplyPaused
	case OperationRedeem:
		return c.RedeemPaused
	case OperationBorrow:
		return c.BorrowPaused
	case OperationRepay:
		return c.RepayPaused
	}

	return false
}

// SetPaused updates the pause flag for the operation
func (c *Controller) SetPaused(op Operation, paused bool) {
	switch op {
	case OperationSupply:
		c.SupplyPaused = paused
	case OperationRedeem:
		c.RedeemPaused = paused
	case OperationBorrow:
		c.BorrowPaused = paused
	case OperationRepay:
		c.RepayPaused = paused
	}
}

// IControllerStore controller store interface
type IControllerStore interface {
	Save(ctx context.Context, tx *db.DB, controller *Controller) error
	Find(ctx context.Context, assetID string) (*Controller, error)
	All(ctx context.Context) ([]*Controller, error)
	Update(ctx context.Context, tx *db.DB, controller *Controller) error
}

// IControllerService controller admin interface
type IControllerService interface {
	SetCollateralFactor(ctx context.Context, userID, assetID string, factor decimal.Decimal) error
	SetMaxBorrowRate(ctx context.Context, userID, assetID string, rate decimal.Decimal) error
	SetProtocolInterestFactor(ctx context.Context, userID, assetID string, factor decimal.Decimal) error
	SetProtocolInterestThreshold(ctx context.Context, userID, assetID string, threshold decimal.Decimal) error
	SetBorrowCap(ctx context.Context, userID, assetID string, cap decimal.Decimal) error
	SetPaused(ctx context.Context, userID, assetID string, op Operation, paused bool) error
}
