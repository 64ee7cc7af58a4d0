package account

import (
	"context"
	"sort"

	"lever/core"
	"lever/internal/lend"
	lendpkg "lever/pkg/lend"

	"github.com/shopspring/decimal"
)

type service struct {
	marketStore   core.IMarketStore
	ctrlStore     core.IControllerStore
	positionStore core.IPositionStore
	ledger        core.ILedger
	oracle        core.IPriceOracleService
}

// New new account service
func New(
	marketStore core.IMarketStore,
	ctrlStore core.IControllerStore,
	positionStore core.IPositionStore,
	ledger core.ILedger,
	oracle core.IPriceOracleService,
) core.IAccountService {
	return &service{
		marketStore:   marketStore,
		ctrlStore:     ctrlStore,
		positionStore: positionStore,
		ledger:        ledger,
		oracle:        oracle,
	}
}

// GetHypotheticalAccountLiquidity hypothetical account liquidity
//
// walks all markets in ascending asset order and sums:
//
//	collateral_value += ctokens * exchange_rate * collateral_factor * price
//	borrow_value     += borrow_balance * price
//
// the hypothetical redeem and borrow amounts are charged against the borrow
// side for the named asset, the Compound way
func (s *service) GetHypotheticalAccountLiquidity(ctx context.Context, userID, assetID string, redeemTokens, borrowAmount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	markets, e := s.sortedMarkets(ctx)
	if e != nil {
		return decimal.Zero, decimal.Zero, e
	}

	collateralValue := decimal.Zero
	borrowValue := decimal.Zero

	for _, market := range markets {
		price, e := s.oracle.GetUnderlyingPrice(ctx, market.AssetID)
		if e != nil {
			return decimal.Zero, decimal.Zero, e
		}

		ctrl, e := s.ctrlStore.Find(ctx, market.AssetID)
		if e != nil {
			return decimal.Zero, decimal.Zero, core.ErrMarketNotFound
		}

		exchangeRate, e := s.exchangeRate(ctx, market)
		if e != nil {
			return decimal.Zero, decimal.Zero, e
		}

		position, e := s.positionStore.Find(ctx, userID, market.AssetID)
		if e != nil {
			return decimal.Zero, decimal.Zero, e
		}

		if position != nil && position.Collateral {
			ctokens, e := s.ledger.FreeBalance(ctx, market.CTokenAssetID, userID)
			if e != nil {
				return decimal.Zero, decimal.Zero, e
			}

			collateralValue = collateralValue.Add(
				ctokens.Mul(exchangeRate).Mul(ctrl.CollateralFactor).Mul(price))
		}

		borrowBalance, e := lendpkg.BorrowBalance(position, market)
		if e != nil {
			return decimal.Zero, decimal.Zero, e
		}
		borrowValue = borrowValue.Add(borrowBalance.Mul(price))

		if market.AssetID == assetID {
			if redeemTokens.IsPositive() {
				borrowValue = borrowValue.Add(
					redeemTokens.Mul(exchangeRate).Mul(ctrl.CollateralFactor).Mul(price))
			}
			if borrowAmount.IsPositive() {
				borrowValue = borrowValue.Add(borrowAmount.Mul(price))
			}
		}
	}

	if collateralValue.GreaterThanOrEqual(borrowValue) {
		return collateralValue.Sub(borrowValue), decimal.Zero, nil
	}

	return decimal.Zero, borrowValue.Sub(collateralValue), nil
}

// AccountValues discounted collateral value and borrow value in USD
func (s *service) AccountValues(ctx context.Context, userID string) (decimal.Decimal, decimal.Decimal, error) {
	markets, e := s.sortedMarkets(ctx)
	if e != nil {
		return decimal.Zero, decimal.Zero, e
	}

	collateralValue := decimal.Zero
	borrowValue := decimal.Zero

	for _, market := range markets {
		price, e := s.oracle.GetUnderlyingPrice(ctx, market.AssetID)
		if e != nil {
			return decimal.Zero, decimal.Zero, e
		}

		ctrl, e := s.ctrlStore.Find(ctx, market.AssetID)
		if e != nil {
			return decimal.Zero, decimal.Zero, core.ErrMarketNotFound
		}

		position, e := s.positionStore.Find(ctx, userID, market.AssetID)
		if e != nil {
			return decimal.Zero, decimal.Zero, e
		}

		if position != nil && position.Collateral {
			exchangeRate, e := s.exchangeRate(ctx, market)
			if e != nil {
				return decimal.Zero, decimal.Zero, e
			}

			ctokens, e := s.ledger.FreeBalance(ctx, market.CTokenAssetID, userID)
			if e != nil {
				return decimal.Zero, decimal.Zero, e
			}

			collateralValue = collateralValue.Add(
				ctokens.Mul(exchangeRate).Mul(ctrl.CollateralFactor).Mul(price))
		}

		borrowBalance, e := lendpkg.BorrowBalance(position, market)
		if e != nil {
			return decimal.Zero, decimal.Zero, e
		}
		borrowValue = borrowValue.Add(borrowBalance.Mul(price))
	}

	return collateralValue, borrowValue, nil
}

// SeizableValue value of collateral enabled supplies without the collateral
// factor discount; this is what a liquidator can actually draw from
func (s *service) SeizableValue(ctx context.Context, userID string) (decimal.Decimal, error) {
	markets, e := s.sortedMarkets(ctx)
	if e != nil {
		return decimal.Zero, e
	}

	seizable := decimal.Zero

	for _, market := range markets {
		position, e := s.positionStore.Find(ctx, userID, market.AssetID)
		if e != nil {
			return decimal.Zero, e
		}

		if position == nil || !position.Collateral {
			continue
		}

		ctokens, e := s.ledger.FreeBalance(ctx, market.CTokenAssetID, userID)
		if e != nil {
			return decimal.Zero, e
		}

		if !ctokens.IsPositive() {
			continue
		}

		price, e := s.oracle.GetUnderlyingPrice(ctx, market.AssetID)
		if e != nil {
			return decimal.Zero, e
		}

		exchangeRate, e := s.exchangeRate(ctx, market)
		if e != nil {
			return decimal.Zero, e
		}

		seizable = seizable.Add(ctokens.Mul(exchangeRate).Mul(price))
	}

	return seizable, nil
}

func (s *service) RedeemAllowed(ctx context.Context, userID, assetID string, redeemTokens decimal.Decimal) error {
	if !redeemTokens.IsPositive() {
		return core.ErrInvalidAmount
	}

	market, e := s.marketStore.Find(ctx, assetID)
	if e != nil {
		return core.ErrMarketNotFound
	}

	exchangeRate, e := s.exchangeRate(ctx, market)
	if e != nil {
		return e
	}

	cash, e := s.ledger.FreeBalance(ctx, market.AssetID, core.AccountMarkets)
	if e != nil {
		return e
	}

	if redeemTokens.Mul(exchangeRate).GreaterThan(cash) {
		return core.ErrInsufficientLiquidity
	}

	_, shortfall, e := s.GetHypotheticalAccountLiquidity(ctx, userID, assetID, redeemTokens, decimal.Zero)
	if e != nil {
		return e
	}

	if shortfall.IsPositive() {
		return core.ErrRedeemNotAllowed
	}

	return nil
}

func (s *service) BorrowAllowed(ctx context.Context, userID, assetID string, borrowAmount decimal.Decimal) error {
	if !borrowAmount.IsPositive() {
		return core.ErrInvalidAmount
	}

	market, e := s.marketStore.Find(ctx, assetID)
	if e != nil {
		return core.ErrMarketNotFound
	}

	ctrl, e := s.ctrlStore.Find(ctx, assetID)
	if e != nil {
		return core.ErrMarketNotFound
	}

	cash, e := s.ledger.FreeBalance(ctx, market.AssetID, core.AccountMarkets)
	if e != nil {
		return e
	}

	if borrowAmount.GreaterThan(cash) {
		return core.ErrInsufficientLiquidity
	}

	if ctrl.BorrowCap.IsPositive() {
		price, e := s.oracle.GetUnderlyingPrice(ctx, assetID)
		if e != nil {
			return e
		}

		if market.TotalBorrows.Add(borrowAmount).Mul(price).GreaterThan(ctrl.BorrowCap) {
			return core.ErrBorrowsOverCap
		}
	}

	_, shortfall, e := s.GetHypotheticalAccountLiquidity(ctx, userID, assetID, decimal.Zero, borrowAmount)
	if e != nil {
		return e
	}

	if shortfall.IsPositive() {
		return core.ErrBorrowNotAllowed
	}

	return nil
}

func (s *service) exchangeRate(ctx context.Context, market *core.Market) (decimal.Decimal, error) {
	cash, e := s.ledger.FreeBalance(ctx, market.AssetID, core.AccountMarkets)
	if e != nil {
		return decimal.Zero, e
	}

	return lend.GetExchangeRate(cash, market.TotalBorrows, market.ProtocolInterest, market.CTokens, market.InitExchangeRate), nil
}

func (s *service) sortedMarkets(ctx context.Context) ([]*core.Market, error) {
	markets, e := s.marketStore.All(ctx)
	if e != nil {
		return nil, e
	}

	sort.Slice(markets, func(i, j int) bool {
		return markets[i].AssetID < markets[j].AssetID
	})

	return markets, nil
}
