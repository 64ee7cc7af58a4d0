package risk

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"lever/core"
	accountservice "lever/service/account"
	marketservice "lever/service/market"
	controllerstore "lever/store/controller"
	ledgerstore "lever/store/ledger"
	marketstore "lever/store/market"
	modelstore "lever/store/model"
	positionstore "lever/store/position"
	riskstore "lever/store/risk"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type allowAll struct{}

func (allowAll) Allowed(ctx context.Context, userID string) bool { return true }

type fixedOracle map[string]decimal.Decimal

func (o fixedOracle) GetUnderlyingPrice(ctx context.Context, assetID string) (decimal.Decimal, error) {
	price, ok := o[assetID]
	if !ok || !price.IsPositive() {
		return decimal.Zero, core.ErrInvalidPrice
	}
	return price, nil
}

type fixedBlock int64

func (b fixedBlock) CurrentBlock(ctx context.Context) (int64, error) { return int64(b), nil }

func (b fixedBlock) GetBlock(ctx context.Context, t time.Time) (int64, error) {
	return int64(b), nil
}

type liquidationEnv struct {
	markets      core.IMarketStore
	positions    core.IPositionStore
	ledger       core.ILedger
	liquidations core.ILiquidationStore
	riskz        core.IRiskService
}

// one market, price 1: the user owns all 100 ctokens as collateral and owes
// 90 of the underlying, so the exchange rate is (10 cash + 90 borrows) / 100 = 1,
// seizable is 100 usd and discounted collateral (factor 0.5) is 50 usd against
// a 90 usd debt.
func newLiquidationEnv(t *testing.T, attempts int64) *liquidationEnv {
	ctx := context.Background()

	database := db.MustOpen(db.Config{
		Dialect: "sqlite3",
		Host:    filepath.Join(t.TempDir(), "lever.db"),
	})
	require.NoError(t, db.Migrate(database))
	t.Cleanup(func() { database.Close() })

	marketStore := marketstore.New(database)
	ctrlStore := controllerstore.New(database)
	modelStore := modelstore.New(database)
	positionStore := positionstore.New(database)
	riskParamsStore := riskstore.New(database)
	liquidationStore := riskstore.NewLiquidationStore(database)
	ledger := ledgerstore.New(database)
	oracle := fixedOracle{"asset-a": decimal.New(1, 0)}

	marketz := marketservice.New(marketStore, ctrlStore, modelStore, ledger)
	accountz := accountservice.New(marketStore, ctrlStore, positionStore, ledger, oracle)

	riskz := New(database,
		marketStore, positionStore, riskParamsStore, liquidationStore,
		ledger, oracle, marketz, accountz, fixedBlock(42), allowAll{})

	e := database.Tx(func(tx *db.DB) error {
		if e := marketStore.Save(ctx, tx, &core.Market{
			AssetID:          "asset-a",
			Symbol:           "A",
			CTokenAssetID:    "ctoken-a",
			TotalBorrows:     decimal.NewFromInt(90),
			BorrowIndex:      decimal.New(1, 0),
			CTokens:          decimal.NewFromInt(100),
			InitExchangeRate: decimal.New(1, 0),
		}); e != nil {
			return e
		}

		if e := ctrlStore.Save(ctx, tx, &core.Controller{
			AssetID:          "asset-a",
			LastAccrualBlock: 42,
			CollateralFactor: decimal.RequireFromString("0.5"),
		}); e != nil {
			return e
		}

		if e := riskParamsStore.Save(ctx, tx, &core.RiskParams{
			AssetID:        "asset-a",
			MaxAttempts:    3,
			MinPartialSum:  decimal.NewFromInt(10),
			Threshold:      decimal.RequireFromString("1.03"),
			LiquidationFee: decimal.RequireFromString("1.05"),
		}); e != nil {
			return e
		}

		if e := positionStore.Save(ctx, tx, &core.Position{
			UserID:              "user-1",
			AssetID:             "asset-a",
			Principal:           decimal.NewFromInt(90),
			InterestIndex:       decimal.New(1, 0),
			Collateral:          true,
			LiquidationAttempts: attempts,
		}); e != nil {
			return e
		}

		if e := ledger.Deposit(ctx, tx, "asset-a", core.AccountMarkets, decimal.NewFromInt(10)); e != nil {
			return e
		}
		if e := ledger.Deposit(ctx, tx, "asset-a", core.AccountLiquidation, decimal.NewFromInt(1000)); e != nil {
			return e
		}
		return ledger.Deposit(ctx, tx, "ctoken-a", "user-1", decimal.NewFromInt(100))
	})
	require.NoError(t, e)

	return &liquidationEnv{
		markets:      marketStore,
		positions:    positionStore,
		ledger:       ledger,
		liquidations: liquidationStore,
		riskz:        riskz,
	}
}

func TestLiquidateUnsafeLoanComplete(t *testing.T) {
	ctx := context.Background()
	// attempts already exhausted forces the complete path
	env := newLiquidationEnv(t, 3)

	liquidation, e := env.riskz.LiquidateUnsafeLoan(ctx, "user-1", "asset-a")
	require.NoError(t, e)
	assert.Equal(t, false, liquidation.Partial)
	assert.Equal(t, "90", liquidation.RepayValue.String())

	// debt cleared, receipt tokens burned from the market total too
	market, e := env.markets.Find(ctx, "asset-a")
	require.NoError(t, e)
	assert.Equal(t, "0", market.TotalBorrows.String())
	assert.Equal(t, "5.5", market.CTokens.String())

	position, e := env.positions.Find(ctx, "user-1", "asset-a")
	require.NoError(t, e)
	assert.Equal(t, "0", position.Principal.String())
	assert.Equal(t, int64(0), position.LiquidationAttempts)

	// seized 94.5 ctokens, repay 90 flowed reserve -> pool, 94.5 underlying
	// flowed pool -> reserve
	userTokens, e := env.ledger.FreeBalance(ctx, "ctoken-a", "user-1")
	require.NoError(t, e)
	assert.Equal(t, "5.5", userTokens.String())

	cash, e := env.ledger.FreeBalance(ctx, "asset-a", core.AccountMarkets)
	require.NoError(t, e)
	assert.Equal(t, "5.5", cash.String())

	reserve, e := env.ledger.FreeBalance(ctx, "asset-a", core.AccountLiquidation)
	require.NoError(t, e)
	assert.Equal(t, "1004.5", reserve.String())

	records, e := env.liquidations.FindByUser(ctx, "user-1")
	require.NoError(t, e)
	require.Len(t, records, 1)

	// with the debt gone the account is no longer liquidatable
	_, e = env.riskz.LiquidateUnsafeLoan(ctx, "user-1", "asset-a")
	assert.Equal(t, core.ErrSeizeNotAllowed, e)
}

func TestLiquidateUnsafeLoanPartial(t *testing.T) {
	ctx := context.Background()
	env := newLiquidationEnv(t, 0)

	liquidation, e := env.riskz.LiquidateUnsafeLoan(ctx, "user-1", "asset-a")
	require.NoError(t, e)
	assert.Equal(t, true, liquidation.Partial)

	position, e := env.positions.Find(ctx, "user-1", "asset-a")
	require.NoError(t, e)
	assert.Equal(t, int64(1), position.LiquidationAttempts)
	assert.True(t, position.Principal.IsPositive())
	assert.True(t, position.Principal.LessThan(decimal.NewFromInt(90)))

	market, e := env.markets.Find(ctx, "asset-a")
	require.NoError(t, e)
	assert.True(t, market.TotalBorrows.IsPositive())
	assert.True(t, market.TotalBorrows.LessThan(decimal.NewFromInt(90)))
	assert.True(t, market.CTokens.LessThan(decimal.NewFromInt(100)))

	userTokens, e := env.ledger.FreeBalance(ctx, "ctoken-a", "user-1")
	require.NoError(t, e)
	assert.True(t, userTokens.LessThan(decimal.NewFromInt(100)))
}
