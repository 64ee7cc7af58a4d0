package balancing

import (
	"context"
	"testing"

	"lever/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePoolStore struct {
	pools []*core.LiquidationPool
}

func (s *fakePoolStore) Save(ctx context.Context, tx *db.DB, pool *core.LiquidationPool) error {
	s.pools = append(s.pools, pool)
	return nil
}

func (s *fakePoolStore) Find(ctx context.Context, assetID string) (*core.LiquidationPool, error) {
	for _, pool := range s.pools {
		if pool.AssetID == assetID {
			return pool, nil
		}
	}
	return nil, core.ErrMarketNotFound
}

func (s *fakePoolStore) All(ctx context.Context) ([]*core.LiquidationPool, error) {
	return s.pools, nil
}

func (s *fakePoolStore) Update(ctx context.Context, tx *db.DB, pool *core.LiquidationPool) error {
	return nil
}

type fakeLedger struct {
	balances map[string]decimal.Decimal
}

func key(assetID, account string) string {
	return account + ":" + assetID
}

func (l *fakeLedger) FreeBalance(ctx context.Context, assetID, account string) (decimal.Decimal, error) {
	return l.balances[key(assetID, account)], nil
}

func (l *fakeLedger) Transfer(ctx context.Context, tx *db.DB, assetID, from, to string, amount decimal.Decimal) error {
	return nil
}

func (l *fakeLedger) Deposit(ctx context.Context, tx *db.DB, assetID, account string, amount decimal.Decimal) error {
	return nil
}

func (l *fakeLedger) Withdraw(ctx context.Context, tx *db.DB, assetID, account string, amount decimal.Decimal) error {
	return nil
}

type fakeOracle struct {
	prices map[string]decimal.Decimal
}

func (o *fakeOracle) GetUnderlyingPrice(ctx context.Context, assetID string) (decimal.Decimal, error) {
	price, ok := o.prices[assetID]
	if !ok || !price.IsPositive() {
		return decimal.Zero, core.ErrInvalidPrice
	}
	return price, nil
}

func newTestService(pools []*core.LiquidationPool, balances map[string]decimal.Decimal, prices map[string]decimal.Decimal) core.IBalancingService {
	return New(nil,
		&fakePoolStore{pools: pools},
		&fakeLedger{balances: balances},
		&fakeOracle{prices: prices},
		nil, nil)
}

func pool(assetID, deviation, ratio string) *core.LiquidationPool {
	return &core.LiquidationPool{
		AssetID:            assetID,
		DeviationThreshold: decimal.RequireFromString(deviation),
		BalanceRatio:       decimal.RequireFromString(ratio),
	}
}

func TestCollectTransfersOversupplyBound(t *testing.T) {
	// asset a: ideal 2000, reserve 6000 -> oversupply 4000 usd
	// asset b: ideal 25000, reserve 5000 -> shortfall 20000 usd
	pools := []*core.LiquidationPool{
		pool("a", "0.1", "0.2"),
		pool("b", "0.1", "0.25"),
	}

	balances := map[string]decimal.Decimal{
		key("a", core.AccountMarkets):     decimal.NewFromInt(10000),
		key("a", core.AccountLiquidation): decimal.NewFromInt(6000),
		key("b", core.AccountMarkets):     decimal.NewFromInt(100000),
		key("b", core.AccountLiquidation): decimal.NewFromInt(5000),
	}

	prices := map[string]decimal.Decimal{
		"a": decimal.New(1, 0),
		"b": decimal.New(1, 0),
	}

	s := newTestService(pools, balances, prices)

	transfers, e := s.CollectTransfers(context.Background())
	require.NoError(t, e)
	require.Len(t, transfers, 1)

	assert.Equal(t, "a", transfers[0].FromAssetID)
	assert.Equal(t, "b", transfers[0].ToAssetID)
	assert.Equal(t, "4000", transfers[0].Amount.String())
	assert.Equal(t, "4000", transfers[0].TargetAmount.String())
}

func TestCollectTransfersInBand(t *testing.T) {
	// both reserves inside the hysteresis band produce no plan
	pools := []*core.LiquidationPool{
		pool("a", "0.1", "0.2"),
		pool("b", "0.1", "0.2"),
	}

	balances := map[string]decimal.Decimal{
		key("a", core.AccountMarkets):     decimal.NewFromInt(10000),
		key("a", core.AccountLiquidation): decimal.NewFromInt(2100),
		key("b", core.AccountMarkets):     decimal.NewFromInt(10000),
		key("b", core.AccountLiquidation): decimal.NewFromInt(1900),
	}

	prices := map[string]decimal.Decimal{
		"a": decimal.New(1, 0),
		"b": decimal.New(1, 0),
	}

	s := newTestService(pools, balances, prices)

	transfers, e := s.CollectTransfers(context.Background())
	require.NoError(t, e)
	assert.Len(t, transfers, 0)
}

func TestCollectTransfersTermination(t *testing.T) {
	// three oversupplied and two short reserves; the greedy matching retires
	// at least one side per round so the plan is strictly bounded
	pools := []*core.LiquidationPool{
		pool("a", "0.1", "0.1"),
		pool("b", "0.1", "0.1"),
		pool("c", "0.1", "0.1"),
		pool("d", "0.1", "0.5"),
		pool("e", "0.1", "0.5"),
	}

	balances := map[string]decimal.Decimal{
		key("a", core.AccountMarkets):     decimal.NewFromInt(10000),
		key("a", core.AccountLiquidation): decimal.NewFromInt(3000),
		key("b", core.AccountMarkets):     decimal.NewFromInt(10000),
		key("b", core.AccountLiquidation): decimal.NewFromInt(2000),
		key("c", core.AccountMarkets):     decimal.NewFromInt(10000),
		key("c", core.AccountLiquidation): decimal.NewFromInt(1500),
		key("d", core.AccountMarkets):     decimal.NewFromInt(10000),
		key("d", core.AccountLiquidation): decimal.NewFromInt(1000),
		key("e", core.AccountMarkets):     decimal.NewFromInt(10000),
		key("e", core.AccountLiquidation): decimal.NewFromInt(2000),
	}

	prices := map[string]decimal.Decimal{
		"a": decimal.New(1, 0),
		"b": decimal.New(1, 0),
		"c": decimal.New(1, 0),
		"d": decimal.New(1, 0),
		"e": decimal.New(1, 0),
	}

	s := newTestService(pools, balances, prices)

	transfers, e := s.CollectTransfers(context.Background())
	require.NoError(t, e)

	// oversupply: a 2000, b 1000, c 500 = 3500; shortfall: d 4000, e 3000
	if len(transfers) == 0 || len(transfers) > 4 {
		t.Fatal("unexpected plan size:", len(transfers))
	}

	total := decimal.Zero
	for _, transfer := range transfers {
		assert.True(t, transfer.Amount.IsPositive())
		total = total.Add(transfer.Amount)
	}

	// total moved equals the binding side, the oversupply sum
	assert.Equal(t, "3500", total.String())
}
