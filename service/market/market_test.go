package market

import (
	"context"
	"testing"

	"lever/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCtrlStore struct {
	ctrl *core.Controller
}

func (s *fakeCtrlStore) Save(ctx context.Context, tx *db.DB, ctrl *core.Controller) error {
	s.ctrl = ctrl
	return nil
}

func (s *fakeCtrlStore) Find(ctx context.Context, assetID string) (*core.Controller, error) {
	return s.ctrl, nil
}

func (s *fakeCtrlStore) All(ctx context.Context) ([]*core.Controller, error) {
	return []*core.Controller{s.ctrl}, nil
}

func (s *fakeCtrlStore) Update(ctx context.Context, tx *db.DB, ctrl *core.Controller) error {
	return nil
}

type fakeMarketStore struct {
	market  *core.Market
	updates int
}

func (s *fakeMarketStore) Save(ctx context.Context, tx *db.DB, market *core.Market) error {
	s.market = market
	return nil
}

func (s *fakeMarketStore) Find(ctx context.Context, assetID string) (*core.Market, error) {
	return s.market, nil
}

func (s *fakeMarketStore) FindBySymbol(ctx context.Context, symbol string) (*core.Market, error) {
	return s.market, nil
}

func (s *fakeMarketStore) FindByCToken(ctx context.Context, ctokenAssetID string) (*core.Market, error) {
	return s.market, nil
}

func (s *fakeMarketStore) All(ctx context.Context) ([]*core.Market, error) {
	return []*core.Market{s.market}, nil
}

func (s *fakeMarketStore) Update(ctx context.Context, tx *db.DB, market *core.Market) error {
	s.updates++
	return nil
}

type fakeLedger struct {
	cash      decimal.Decimal
	transfers []decimal.Decimal
}

func (l *fakeLedger) FreeBalance(ctx context.Context, assetID, account string) (decimal.Decimal, error) {
	return l.cash, nil
}

func (l *fakeLedger) Transfer(ctx context.Context, tx *db.DB, assetID, from, to string, amount decimal.Decimal) error {
	l.transfers = append(l.transfers, amount)
	return nil
}

func (l *fakeLedger) Deposit(ctx context.Context, tx *db.DB, assetID, account string, amount decimal.Decimal) error {
	return nil
}

func (l *fakeLedger) Withdraw(ctx context.Context, tx *db.DB, assetID, account string, amount decimal.Decimal) error {
	return nil
}

func TestSweepProtocolInterest(t *testing.T) {
	ctx := context.Background()

	market := &core.Market{
		AssetID:          "asset",
		ProtocolInterest: decimal.NewFromInt(50),
	}
	ctrl := &core.Controller{
		AssetID:                   "asset",
		ProtocolInterestThreshold: decimal.NewFromInt(100),
	}

	marketStore := &fakeMarketStore{market: market}
	ledger := &fakeLedger{cash: decimal.NewFromInt(10000)}
	s := New(marketStore, &fakeCtrlStore{ctrl: ctrl}, nil, ledger)

	// below the threshold nothing moves
	require.NoError(t, s.SweepProtocolInterest(ctx, nil, market))
	assert.Len(t, ledger.transfers, 0)
	assert.Equal(t, "50", market.ProtocolInterest.String())

	// above the threshold the whole amount moves to the reserve
	market.ProtocolInterest = decimal.NewFromInt(120)
	require.NoError(t, s.SweepProtocolInterest(ctx, nil, market))
	require.Len(t, ledger.transfers, 1)
	assert.Equal(t, "120", ledger.transfers[0].String())
	assert.Equal(t, "0", market.ProtocolInterest.String())
	assert.Equal(t, 1, marketStore.updates)

	// zero threshold disables sweeping entirely
	ctrl.ProtocolInterestThreshold = decimal.Zero
	market.ProtocolInterest = decimal.NewFromInt(500)
	require.NoError(t, s.SweepProtocolInterest(ctx, nil, market))
	assert.Len(t, ledger.transfers, 1)
}

func TestSweepCappedByCash(t *testing.T) {
	ctx := context.Background()

	market := &core.Market{
		AssetID:          "asset",
		ProtocolInterest: decimal.NewFromInt(120),
	}
	ctrl := &core.Controller{
		AssetID:                   "asset",
		ProtocolInterestThreshold: decimal.NewFromInt(100),
	}

	ledger := &fakeLedger{cash: decimal.NewFromInt(80)}
	s := New(&fakeMarketStore{market: market}, &fakeCtrlStore{ctrl: ctrl}, nil, ledger)

	require.NoError(t, s.SweepProtocolInterest(ctx, nil, market))
	require.Len(t, ledger.transfers, 1)
	assert.Equal(t, "80", ledger.transfers[0].String())
	assert.Equal(t, "40", market.ProtocolInterest.String())
}
