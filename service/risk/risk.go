package risk

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"lever/core"
	"lever/internal/lend"
	"lever/pkg/id"
	lendpkg "lever/pkg/lend"
	"lever/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type service struct {
	db               *db.DB
	marketStore      core.IMarketStore
	positionStore    core.IPositionStore
	riskStore        core.IRiskParamsStore
	liquidationStore core.ILiquidationStore
	ledger           core.ILedger
	oracle           core.IPriceOracleService
	marketz          core.IMarketService
	accountz         core.IAccountService
	blockSrv         core.IBlockService
	authz            core.IAuthzService
}

// New new risk service
func New(
	database *db.DB,
	marketStore core.IMarketStore,
	positionStore core.IPositionStore,
	riskStore core.IRiskParamsStore,
	liquidationStore core.ILiquidationStore,
	ledger core.ILedger,
	oracle core.IPriceOracleService,
	marketz core.IMarketService,
	accountz core.IAccountService,
	blockSrv core.IBlockService,
	authz core.IAuthzService,
) core.IRiskService {
	return &service{
		db:               database,
		marketStore:      marketStore,
		positionStore:    positionStore,
		riskStore:        riskStore,
		liquidationStore: liquidationStore,
		ledger:           ledger,
		oracle:           oracle,
		marketz:          marketz,
		accountz:         accountz,
		blockSrv:         blockSrv,
		authz:            authz,
	}
}

func (s *service) IsUnsafe(ctx context.Context, userID, assetID string) (bool, error) {
	params, e := s.riskStore.Find(ctx, assetID)
	if e != nil {
		return false, core.ErrMarketNotFound
	}

	seizable, e := s.accountz.SeizableValue(ctx, userID)
	if e != nil {
		return false, e
	}

	_, borrowValue, e := s.accountz.AccountValues(ctx, userID)
	if e != nil {
		return false, e
	}

	if !borrowValue.IsPositive() {
		return false, nil
	}

	return seizable.LessThan(borrowValue.Mul(params.Threshold)), nil
}

// LiquidateUnsafeLoan settle an undercollateralized borrow against the
// liquidation reserve
//
// the reserve repays the working pool and takes the borrower's collateral in
// exchange, at a discount of liquidation_fee. Complete liquidation clears the
// whole debt; partial liquidation repays debt_value / liquidation_fee worth
// and bumps the attempt counter.
func (s *service) LiquidateUnsafeLoan(ctx context.Context, userID, assetID string) (*core.Liquidation, error) {
	log := logger.FromContext(ctx).WithField("user", userID).WithField("asset", assetID)

	market, e := s.marketStore.Find(ctx, assetID)
	if e != nil {
		return nil, core.ErrMarketNotFound
	}

	params, e := s.riskStore.Find(ctx, assetID)
	if e != nil {
		return nil, core.ErrMarketNotFound
	}

	block, e := s.blockSrv.CurrentBlock(ctx)
	if e != nil {
		return nil, e
	}

	var liquidation *core.Liquidation

	e = s.db.Tx(func(tx *db.DB) error {
		if e := s.marketz.AccrueInterest(ctx, tx, market, block); e != nil {
			return e
		}

		_, shortfall, e := s.accountz.GetHypotheticalAccountLiquidity(ctx, userID, "", decimal.Zero, decimal.Zero)
		if e != nil {
			return e
		}

		if !shortfall.IsPositive() {
			return core.ErrSeizeNotAllowed
		}

		position, e := s.positionStore.Find(ctx, userID, assetID)
		if e != nil {
			return e
		}

		debt, e := lendpkg.BorrowBalance(position, market)
		if e != nil {
			return e
		}

		if !debt.IsPositive() {
			return core.ErrBorrowNotFound
		}

		price, e := s.oracle.GetUnderlyingPrice(ctx, assetID)
		if e != nil {
			return e
		}
		debtValue := debt.Mul(price)

		seizable, e := s.accountz.SeizableValue(ctx, userID)
		if e != nil {
			return e
		}

		_, totalBorrowValue, e := s.accountz.AccountValues(ctx, userID)
		if e != nil {
			return e
		}

		complete := lendpkg.ShouldCompleteLiquidation(
			totalBorrowValue, debtValue, seizable,
			params.LiquidationFee,
			position.LiquidationAttempts, params.MaxAttempts,
			params.MinPartialSum)

		var (
			repayAmount decimal.Decimal
			repayValue  decimal.Decimal
			seizeValue  decimal.Decimal
		)

		if complete {
			repayAmount = debt
			repayValue = debtValue
			seizeValue = debtValue.Mul(params.LiquidationFee)
		} else {
			repayValue = lendpkg.PartialRepayValue(debtValue, params.LiquidationFee, params.MinPartialSum)
			amount, ok := number.Div(repayValue, price)
			if !ok {
				return core.ErrInvalidPrice
			}
			repayAmount = number.Min(amount.Truncate(lend.MaxPrecision), debt)
			// the fee bonus makes the seized value cover the repayment and reward
			seizeValue = repayValue.Mul(params.LiquidationFee)
		}

		// the reserve funds the repayment
		if e := s.ledger.Transfer(ctx, tx, assetID, core.AccountLiquidation, core.AccountMarkets, repayAmount); e != nil {
			return e
		}

		seized, e := s.seizeCollateral(ctx, tx, userID, market, seizeValue)
		if e != nil {
			return e
		}

		if complete {
			position.Principal = decimal.Zero
			position.LiquidationAttempts = 0
		} else {
			position.Principal = debt.Sub(repayAmount)
			position.LiquidationAttempts++
		}
		position.InterestIndex = market.BorrowIndex
		if e := s.positionStore.Update(ctx, tx, position); e != nil {
			return e
		}

		market.TotalBorrows = number.Max(market.TotalBorrows.Sub(repayAmount), decimal.Zero)
		if e := s.marketStore.Update(ctx, tx, market); e != nil {
			return e
		}

		seizedAssets, _ := json.Marshal(seized)
		liquidation = &core.Liquidation{
			TraceID:      id.TraceIDFrom(fmt.Sprintf("liquidation:%s:%s:%d", userID, assetID, block)),
			UserID:       userID,
			AssetID:      assetID,
			RepayValue:   repayValue,
			SeizedAssets: string(seizedAssets),
			Partial:      !complete,
		}

		return s.liquidationStore.Create(ctx, tx, liquidation)
	})
	if e != nil {
		return nil, e
	}

	log.WithField("partial", liquidation.Partial).
		WithField("repay_value", liquidation.RepayValue).
		Infoln("loan liquidated")

	return liquidation, nil
}

// seizeCollateral draws collateral enabled supplies in ascending asset order
// until value is covered or nothing is left, moving the underlying into the
// liquidation reserve. Returns the list of assets drawn from.
//
// borrowMarket is the instance already mutated inside the transaction; the
// store listing would hand back a stale copy of that row, so it is
// substituted in and its write is left to the caller.
func (s *service) seizeCollateral(ctx context.Context, tx *db.DB, userID string, borrowMarket *core.Market, value decimal.Decimal) ([]string, error) {
	markets, e := s.marketStore.All(ctx)
	if e != nil {
		return nil, e
	}

	for idx, market := range markets {
		if market.AssetID == borrowMarket.AssetID {
			markets[idx] = borrowMarket
		}
	}

	sort.Slice(markets, func(i, j int) bool {
		return markets[i].AssetID < markets[j].AssetID
	})

	remaining := value
	var seized []string

	for _, market := range markets {
		if !remaining.IsPositive() {
			break
		}

		position, e := s.positionStore.Find(ctx, userID, market.AssetID)
		if e != nil {
			return nil, e
		}

		if position == nil || !position.Collateral {
			continue
		}

		ctokens, e := s.ledger.FreeBalance(ctx, market.CTokenAssetID, userID)
		if e != nil {
			return nil, e
		}

		if !ctokens.IsPositive() {
			continue
		}

		price, e := s.oracle.GetUnderlyingPrice(ctx, market.AssetID)
		if e != nil {
			return nil, e
		}

		cash, e := s.ledger.FreeBalance(ctx, market.AssetID, core.AccountMarkets)
		if e != nil {
			return nil, e
		}

		exchangeRate := lend.GetExchangeRate(cash, market.TotalBorrows, market.ProtocolInterest, market.CTokens, market.InitExchangeRate)

		tokenValue := exchangeRate.Mul(price)
		if !tokenValue.IsPositive() {
			continue
		}

		seizeTokens := number.Min(ctokens, remaining.Div(tokenValue).
			Shift(lend.MaxPrecision).Ceil().Shift(-lend.MaxPrecision))

		underlying := seizeTokens.Mul(exchangeRate).Truncate(lend.MaxPrecision)
		if !underlying.IsPositive() {
			continue
		}

		if e := s.ledger.Withdraw(ctx, tx, market.CTokenAssetID, userID, seizeTokens); e != nil {
			return nil, e
		}

		if e := s.ledger.Transfer(ctx, tx, market.AssetID, core.AccountMarkets, core.AccountLiquidation, underlying); e != nil {
			return nil, e
		}

		market.CTokens = market.CTokens.Sub(seizeTokens)
		if market != borrowMarket {
			if e := s.marketStore.Update(ctx, tx, market); e != nil {
				return nil, e
			}
		}

		remaining = remaining.Sub(seizeTokens.Mul(tokenValue))
		seized = append(seized, market.AssetID)
	}

	return seized, nil
}

func (s *service) SetMaxAttempts(ctx context.Context, userID, assetID string, max int64) error {
	if max < 0 {
		return core.ErrInvalidParameter
	}

	return s.update(ctx, userID, assetID, func(params *core.RiskParams) {
		params.MaxAttempts = max
	})
}

func (s *service) SetMinPartialSum(ctx context.Context, userID, assetID string, min decimal.Decimal) error {
	if min.IsNegative() {
		return core.ErrInvalidParameter
	}

	return s.update(ctx, userID, assetID, func(params *core.RiskParams) {
		params.MinPartialSum = min
	})
}

func (s *service) SetThreshold(ctx context.Context, userID, assetID string, threshold decimal.Decimal) error {
	// required coverage above 1
	if threshold.LessThanOrEqual(decimal.New(1, 0)) {
		return core.ErrInvalidParameter
	}

	return s.update(ctx, userID, assetID, func(params *core.RiskParams) {
		params.Threshold = threshold
	})
}

func (s *service) SetLiquidationFee(ctx context.Context, userID, assetID string, fee decimal.Decimal) error {
	if fee.LessThan(decimal.New(1, 0)) {
		return core.ErrInvalidParameter
	}

	return s.update(ctx, userID, assetID, func(params *core.RiskParams) {
		params.LiquidationFee = fee
	})
}

func (s *service) update(ctx context.Context, userID, assetID string, apply func(*core.RiskParams)) error {
	if !s.authz.Allowed(ctx, userID) {
		return core.ErrOperationForbidden
	}

	params, e := s.riskStore.Find(ctx, assetID)
	if e != nil {
		return core.ErrMarketNotFound
	}

	apply(params)

	return s.db.Tx(func(tx *db.DB) error {
		return s.riskStore.Update(ctx, tx, params)
	})
}
