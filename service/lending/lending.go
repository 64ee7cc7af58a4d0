package lending

import (
	"context"

	"lever/core"
	"lever/internal/lend"
	lendpkg "lever/pkg/lend"
	"lever/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type service struct {
	db            *db.DB
	marketStore   core.IMarketStore
	ctrlStore     core.IControllerStore
	positionStore core.IPositionStore
	ledger        core.ILedger
	marketz       core.IMarketService
	accountz      core.IAccountService
	blockSrv      core.IBlockService
}

// New new lending service
func New(
	database *db.DB,
	marketStore core.IMarketStore,
	ctrlStore core.IControllerStore,
	positionStore core.IPositionStore,
	ledger core.ILedger,
	marketz core.IMarketService,
	accountz core.IAccountService,
	blockSrv core.IBlockService,
) core.ILendingService {
	return &service{
		db:            database,
		marketStore:   marketStore,
		ctrlStore:     ctrlStore,
		positionStore: positionStore,
		ledger:        ledger,
		marketz:       marketz,
		accountz:      accountz,
		blockSrv:      blockSrv,
	}
}

func (s *service) Supply(ctx context.Context, userID, assetID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	market, ctrl, e := s.findMarket(ctx, assetID)
	if e != nil {
		return e
	}

	if ctrl.IsPaused(core.OperationSupply) {
		return core.ErrOperationPaused
	}

	block, e := s.blockSrv.CurrentBlock(ctx)
	if e != nil {
		return e
	}

	return s.db.Tx(func(tx *db.DB) error {
		if e := s.marketz.AccrueInterest(ctx, tx, market, block); e != nil {
			return e
		}

		// exchange rate before cash moves in
		exchangeRate, e := s.marketz.CurExchangeRate(ctx, market)
		if e != nil {
			return e
		}

		ctokens, ok := number.Div(amount, exchangeRate)
		if !ok {
			return core.ErrCalculation
		}
		ctokens = ctokens.Truncate(lend.MaxPrecision)
		if !ctokens.IsPositive() {
			return core.ErrInvalidAmount
		}

		if e := s.ledger.Transfer(ctx, tx, assetID, userID, core.AccountMarkets, amount); e != nil {
			return e
		}

		if e := s.ledger.Deposit(ctx, tx, market.CTokenAssetID, userID, ctokens); e != nil {
			return e
		}

		market.CTokens = market.CTokens.Add(ctokens)
		return s.marketStore.Update(ctx, tx, market)
	})
}

func (s *service) Redeem(ctx context.Context, userID, assetID string, ctokens decimal.Decimal) error {
	if !ctokens.IsPositive() {
		return core.ErrInvalidAmount
	}

	market, ctrl, e := s.findMarket(ctx, assetID)
	if e != nil {
		return e
	}

	if ctrl.IsPaused(core.OperationRedeem) {
		return core.ErrOperationPaused
	}

	block, e := s.blockSrv.CurrentBlock(ctx)
	if e != nil {
		return e
	}

	return s.db.Tx(func(tx *db.DB) error {
		if e := s.marketz.AccrueInterest(ctx, tx, market, block); e != nil {
			return e
		}

		if e := s.accountz.RedeemAllowed(ctx, userID, assetID, ctokens); e != nil {
			return e
		}

		exchangeRate, e := s.marketz.CurExchangeRate(ctx, market)
		if e != nil {
			return e
		}

		amount := ctokens.Mul(exchangeRate).Truncate(lend.MaxPrecision)
		if !amount.IsPositive() {
			return core.ErrInvalidAmount
		}

		if e := s.ledger.Withdraw(ctx, tx, market.CTokenAssetID, userID, ctokens); e != nil {
			return e
		}

		if e := s.ledger.Transfer(ctx, tx, assetID, core.AccountMarkets, userID, amount); e != nil {
			return e
		}

		market.CTokens = market.CTokens.Sub(ctokens)
		return s.marketStore.Update(ctx, tx, market)
	})
}

func (s *service) Borrow(ctx context.Context, userID, assetID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	market, ctrl, e := s.findMarket(ctx, assetID)
	if e != nil {
		return e
	}

	if ctrl.IsPaused(core.OperationBorrow) {
		return core.ErrOperationPaused
	}

	block, e := s.blockSrv.CurrentBlock(ctx)
	if e != nil {
		return e
	}

	return s.db.Tx(func(tx *db.DB) error {
		if e := s.marketz.AccrueInterest(ctx, tx, market, block); e != nil {
			return e
		}

		if e := s.accountz.BorrowAllowed(ctx, userID, assetID, amount); e != nil {
			return e
		}

		position, e := s.findOrCreatePosition(ctx, tx, userID, assetID, market)
		if e != nil {
			return e
		}

		balance, e := lendpkg.BorrowBalance(position, market)
		if e != nil {
			return e
		}

		// repricing the whole debt at the current index keeps future reads lazy
		position.Principal = balance.Add(amount)
		position.InterestIndex = market.BorrowIndex
		if e := s.positionStore.Update(ctx, tx, position); e != nil {
			return e
		}

		market.TotalBorrows = market.TotalBorrows.Add(amount)
		if e := s.marketStore.Update(ctx, tx, market); e != nil {
			return e
		}

		return s.ledger.Transfer(ctx, tx, assetID, core.AccountMarkets, userID, amount)
	})
}

func (s *service) Repay(ctx context.Context, userID, assetID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	market, ctrl, e := s.findMarket(ctx, assetID)
	if e != nil {
		return e
	}

	if ctrl.IsPaused(core.OperationRepay) {
		return core.ErrOperationPaused
	}

	block, e := s.blockSrv.CurrentBlock(ctx)
	if e != nil {
		return e
	}

	return s.db.Tx(func(tx *db.DB) error {
		if e := s.marketz.AccrueInterest(ctx, tx, market, block); e != nil {
			return e
		}

		position, e := s.positionStore.Find(ctx, userID, assetID)
		if e != nil {
			return e
		}

		balance, e := lendpkg.BorrowBalance(position, market)
		if e != nil {
			return e
		}

		if !balance.IsPositive() {
			return core.ErrBorrowNotFound
		}

		// over repayment is rejected rather than refunded
		if amount.GreaterThan(balance) {
			return core.ErrInvalidAmount
		}

		if e := s.ledger.Transfer(ctx, tx, assetID, userID, core.AccountMarkets, amount); e != nil {
			return e
		}

		position.Principal = balance.Sub(amount)
		position.InterestIndex = market.BorrowIndex
		if e := s.positionStore.Update(ctx, tx, position); e != nil {
			return e
		}

		market.TotalBorrows = number.Max(market.TotalBorrows.Sub(amount), decimal.Zero)
		return s.marketStore.Update(ctx, tx, market)
	})
}

func (s *service) SetCollateral(ctx context.Context, userID, assetID string, collateral bool) error {
	market, _, e := s.findMarket(ctx, assetID)
	if e != nil {
		return e
	}

	if collateral {
		ctokens, e := s.ledger.FreeBalance(ctx, market.CTokenAssetID, userID)
		if e != nil {
			return e
		}

		if !ctokens.IsPositive() {
			return core.ErrInsufficientBalance
		}
	} else {
		// turning collateral off is a full hypothetical redeem
		ctokens, e := s.ledger.FreeBalance(ctx, market.CTokenAssetID, userID)
		if e != nil {
			return e
		}

		if ctokens.IsPositive() {
			_, shortfall, e := s.accountz.GetHypotheticalAccountLiquidity(ctx, userID, assetID, ctokens, decimal.Zero)
			if e != nil {
				return e
			}

			if shortfall.IsPositive() {
				return core.ErrRedeemNotAllowed
			}
		}
	}

	return s.db.Tx(func(tx *db.DB) error {
		position, e := s.findOrCreatePosition(ctx, tx, userID, assetID, market)
		if e != nil {
			return e
		}

		if position.Collateral == collateral {
			return nil
		}

		position.Collateral = collateral
		return s.positionStore.Update(ctx, tx, position)
	})
}

func (s *service) findMarket(ctx context.Context, assetID string) (*core.Market, *core.Controller, error) {
	market, e := s.marketStore.Find(ctx, assetID)
	if e != nil {
		return nil, nil, core.ErrMarketNotFound
	}

	ctrl, e := s.ctrlStore.Find(ctx, assetID)
	if e != nil {
		return nil, nil, core.ErrMarketNotFound
	}

	return market, ctrl, nil
}

func (s *service) findOrCreatePosition(ctx context.Context, tx *db.DB, userID, assetID string, market *core.Market) (*core.Position, error) {
	position, e := s.positionStore.Find(ctx, userID, assetID)
	if e != nil {
		return nil, e
	}

	if position != nil {
		return position, nil
	}

	position = &core.Position{
		UserID:        userID,
		AssetID:       assetID,
		Principal:     decimal.Zero,
		InterestIndex: market.BorrowIndex,
	}

	if e := s.positionStore.Save(ctx, tx, position); e != nil {
		return nil, e
	}

	return position, nil
}
