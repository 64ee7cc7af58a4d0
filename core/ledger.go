package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

const (
	// AccountMarkets ledger account holding all working pool funds
	AccountMarkets = "markets"
	// AccountLiquidation ledger account holding all liquidation reserves
	AccountLiquidation = "liquidation"
)

// Balance one ledger balance row
type Balance struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Account   string          `sql:"size:36;unique_index:balance_idx" json:"account"`
	AssetID   string          `sql:"size:36;unique_index:balance_idx" json:"asset_id"`
	Amount    decimal.Decimal `sql:"type:decimal(32,16)" json:"amount"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ILedger currency ledger collaborator
//
// the core only ever talks to this interface; the gorm backed implementation
// in store/ledger serves single node deployments
type ILedger interface {
	FreeBalance(ctx context.Context, assetID, account string) (decimal.Decimal, error)
	// Transfer moves amount between two accounts, fails with
	// ErrInsufficientBalance if the source balance is too low
	Transfer(ctx context.Context, tx *db.DB, assetID, from, to string, amount decimal.Decimal) error
	// Deposit issues amount into an account (ctoken mint)
	Deposit(ctx context.Context, tx *db.DB, assetID, account string, amount decimal.Decimal) error
	// Withdraw burns amount from an account (ctoken burn)
	Withdraw(ctx context.Context, tx *db.DB, assetID, account string, amount decimal.Decimal) error
}
