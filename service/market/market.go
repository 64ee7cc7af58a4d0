package market

import (
	"context"

	"lever/core"
	"lever/internal/lend"
	lendpkg "lever/pkg/lend"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type service struct {
	marketStore core.IMarketStore
	ctrlStore   core.IControllerStore
	modelStore  core.IInterestModelStore
	ledger      core.ILedger
}

// New new market service
func New(
	marketStore core.IMarketStore,
	ctrlStore core.IControllerStore,
	modelStore core.IInterestModelStore,
	ledger core.ILedger,
) core.IMarketService {
	return &service{
		marketStore: marketStore,
		ctrlStore:   ctrlStore,
		modelStore:  modelStore,
		ledger:      ledger,
	}
}

func (s *service) AvailableLiquidity(ctx context.Context, market *core.Market) (decimal.Decimal, error) {
	return s.ledger.FreeBalance(ctx, market.AssetID, core.AccountMarkets)
}

func (s *service) CurUtilizationRate(ctx context.Context, market *core.Market) (decimal.Decimal, error) {
	cash, e := s.AvailableLiquidity(ctx, market)
	if e != nil {
		return decimal.Zero, e
	}

	return lend.UtilizationRate(cash, market.TotalBorrows, market.ProtocolInterest), nil
}

func (s *service) CurExchangeRate(ctx context.Context, market *core.Market) (decimal.Decimal, error) {
	cash, e := s.AvailableLiquidity(ctx, market)
	if e != nil {
		return decimal.Zero, e
	}

	return lend.GetExchangeRate(cash, market.TotalBorrows, market.ProtocolInterest, market.CTokens, market.InitExchangeRate), nil
}

func (s *service) CurBorrowRatePerBlock(ctx context.Context, market *core.Market) (decimal.Decimal, error) {
	model, e := s.modelStore.Find(ctx, market.AssetID)
	if e != nil {
		return decimal.Zero, core.ErrMarketNotFound
	}

	utilizationRate, e := s.CurUtilizationRate(ctx, market)
	if e != nil {
		return decimal.Zero, e
	}

	return lend.GetBorrowRatePerBlock(utilizationRate, model.BaseRate, model.Multiplier, model.JumpMultiplier, model.Kink), nil
}

func (s *service) CurSupplyRatePerBlock(ctx context.Context, market *core.Market) (decimal.Decimal, error) {
	model, e := s.modelStore.Find(ctx, market.AssetID)
	if e != nil {
		return decimal.Zero, core.ErrMarketNotFound
	}

	ctrl, e := s.ctrlStore.Find(ctx, market.AssetID)
	if e != nil {
		return decimal.Zero, core.ErrMarketNotFound
	}

	utilizationRate, e := s.CurUtilizationRate(ctx, market)
	if e != nil {
		return decimal.Zero, e
	}

	return lend.GetSupplyRatePerBlock(utilizationRate, model.BaseRate, model.Multiplier, model.JumpMultiplier, model.Kink, ctrl.ProtocolInterestFactor), nil
}

// AccrueInterest accrue interest up to the given block, at most once per block
func (s *service) AccrueInterest(ctx context.Context, tx *db.DB, market *core.Market, block int64) error {
	ctrl, e := s.ctrlStore.Find(ctx, market.AssetID)
	if e != nil {
		return core.ErrMarketNotFound
	}

	if ctrl.LastAccrualBlock == block {
		return nil
	}

	model, e := s.modelStore.Find(ctx, market.AssetID)
	if e != nil {
		return core.ErrMarketNotFound
	}

	cash, e := s.ledger.FreeBalance(ctx, market.AssetID, core.AccountMarkets)
	if e != nil {
		return e
	}

	if e := lendpkg.Accrue(market, ctrl, model, cash, block); e != nil {
		return e
	}

	if e := s.marketStore.Update(ctx, tx, market); e != nil {
		return e
	}

	return s.ctrlStore.Update(ctx, tx, ctrl)
}

func (s *service) SweepProtocolInterest(ctx context.Context, tx *db.DB, market *core.Market) error {
	ctrl, e := s.ctrlStore.Find(ctx, market.AssetID)
	if e != nil {
		return core.ErrMarketNotFound
	}

	// threshold 0 disables sweeping
	if !ctrl.ProtocolInterestThreshold.IsPositive() ||
		market.ProtocolInterest.LessThan(ctrl.ProtocolInterestThreshold) {
		return nil
	}

	amount := market.ProtocolInterest

	cash, e := s.ledger.FreeBalance(ctx, market.AssetID, core.AccountMarkets)
	if e != nil {
		return e
	}

	// never drain funds backing outstanding supplies
	if amount.GreaterThan(cash) {
		amount = cash
	}

	if !amount.IsPositive() {
		return nil
	}

	if e := s.ledger.Transfer(ctx, tx, market.AssetID, core.AccountMarkets, core.AccountLiquidation, amount); e != nil {
		return e
	}

	market.ProtocolInterest = market.ProtocolInterest.Sub(amount)
	return s.marketStore.Update(ctx, tx, market)
}
