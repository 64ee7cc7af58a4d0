package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Market per asset pool state
type Market struct {
	ID            uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID       string          `sql:"size:36;unique_index:asset_idx" json:"asset_id"`
	Symbol        string          `sql:"size:20;unique_index:symbol_idx" json:"symbol"`
	CTokenAssetID string          `sql:"size:36;unique_index:ctoken_asset_idx" json:"ctoken_asset_id"`
	// 总借款
	TotalBorrows decimal.Decimal `sql:"type:decimal(32,16)" json:"total_borrows"`
	// 借款复利指数, 初始为 1, 只增不减
	BorrowIndex decimal.Decimal `sql:"type:decimal(32,16);default:1" json:"borrow_index"`
	// 协议累计利息
	ProtocolInterest decimal.Decimal `sql:"type:decimal(32,16)" json:"protocol_interest"`
	// CToken 累计铸造出来的币的数量
	CTokens decimal.Decimal `sql:"type:decimal(32,16)" json:"ctokens"`
	// 初始兑换率
	InitExchangeRate decimal.Decimal `sql:"type:decimal(20,8);default:1" json:"init_exchange_rate"`
	Version          int64           `sql:"default:0" json:"version"`
	CreatedAt        time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IMarketStore market store interface
type IMarketStore interface {
	Save(ctx context.Context, tx *db.DB, market *Market) error
	Find(ctx context.Context, assetID string) (*Market, error)
	FindBySymbol(ctx context.Context, symbol string) (*Market, error)
	FindByCToken(ctx context.Context, ctokenAssetID string) (*Market, error)
	All(ctx context.Context) ([]*Market, error)
	Update(ctx context.Context, tx *db.DB, market *Market) error
}

// IMarketService market service interface
type IMarketService interface {
	// AvailableLiquidity freely transferable balance of the working pool
	AvailableLiquidity(ctx context.Context, market *Market) (decimal.Decimal, error)
	CurUtilizationRate(ctx context.Context, market *Market) (decimal.Decimal, error)
	CurExchangeRate(ctx context.Context, market *Market) (decimal.Decimal, error)
	CurBorrowRatePerBlock(ctx context.Context, market *Market) (decimal.Decimal, error)
	CurSupplyRatePerBlock(ctx context.Context, market *Market) (decimal.Decimal, error)
	// AccrueInterest brings the market's compounding state up to the given block
	AccrueInterest(ctx context.Context, tx *db.DB, market *Market, block int64) error
	// SweepProtocolInterest moves accumulated protocol interest above the
	// configured threshold into the liquidation reserve
	SweepProtocolInterest(ctx context.Context, tx *db.DB, market *Market) error
}
