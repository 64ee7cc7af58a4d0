package balancing

import (
	"context"
	"sort"

	"lever/core"
	"lever/internal/lend"
	"lever/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type service struct {
	db        *db.DB
	poolStore core.ILiquidationPoolStore
	ledger    core.ILedger
	oracle    core.IPriceOracleService
	swapz     core.ISwapService
	authz     core.IAuthzService
}

// New new balancing service
func New(
	database *db.DB,
	poolStore core.ILiquidationPoolStore,
	ledger core.ILedger,
	oracle core.IPriceOracleService,
	swapz core.ISwapService,
	authz core.IAuthzService,
) core.IBalancingService {
	return &service{
		db:        database,
		poolStore: poolStore,
		ledger:    ledger,
		oracle:    oracle,
		swapz:     swapz,
		authz:     authz,
	}
}

type imbalance struct {
	assetID string
	// USD distance from the ideal reserve
	value decimal.Decimal
	price decimal.Decimal
}

// CollectTransfers liquidation reserve balancing plan
//
// reserves outside the hysteresis band around their ideal value are paired
// greedily, largest oversupply against largest shortfall, each move sized at
// the smaller of the two. Every round retires at least one side, so the loop
// is strictly bounded by the number of pools.
func (s *service) CollectTransfers(ctx context.Context) ([]*core.Transfer, error) {
	pools, e := s.poolStore.All(ctx)
	if e != nil {
		return nil, e
	}

	sort.Slice(pools, func(i, j int) bool {
		return pools[i].AssetID < pools[j].AssetID
	})

	var oversupplies, shortfalls []*imbalance

	for _, pool := range pools {
		price, e := s.oracle.GetUnderlyingPrice(ctx, pool.AssetID)
		if e != nil {
			return nil, e
		}

		reserve, e := s.ledger.FreeBalance(ctx, pool.AssetID, core.AccountLiquidation)
		if e != nil {
			return nil, e
		}

		working, e := s.ledger.FreeBalance(ctx, pool.AssetID, core.AccountMarkets)
		if e != nil {
			return nil, e
		}

		idealValue := working.Mul(pool.BalanceRatio).Mul(price)
		if pool.MaxIdealBalance.IsPositive() {
			idealValue = number.Min(idealValue, pool.MaxIdealBalance)
		}

		actualValue := reserve.Mul(price)
		band := idealValue.Mul(pool.DeviationThreshold)

		switch {
		case actualValue.GreaterThan(idealValue.Add(band)):
			oversupplies = append(oversupplies, &imbalance{
				assetID: pool.AssetID,
				value:   actualValue.Sub(idealValue),
				price:   price,
			})
		case actualValue.LessThan(idealValue.Sub(band)):
			shortfalls = append(shortfalls, &imbalance{
				assetID: pool.AssetID,
				value:   idealValue.Sub(actualValue),
				price:   price,
			})
		}
	}

	var transfers []*core.Transfer

	for len(oversupplies) > 0 && len(shortfalls) > 0 {
		over := maxImbalance(oversupplies)
		short := maxImbalance(shortfalls)

		bite := number.Min(over.value, short.value)

		amount, ok := number.Div(bite, over.price)
		if !ok {
			return nil, core.ErrInvalidPrice
		}

		targetAmount, ok := number.Div(bite, short.price)
		if !ok {
			return nil, core.ErrInvalidPrice
		}

		transfers = append(transfers, &core.Transfer{
			FromAssetID:  over.assetID,
			ToAssetID:    short.assetID,
			Amount:       number.Ceil(amount, lend.MaxPrecision),
			TargetAmount: targetAmount.Truncate(lend.MaxPrecision),
		})

		over.value = over.value.Sub(bite)
		short.value = short.value.Sub(bite)

		oversupplies = compact(oversupplies)
		shortfalls = compact(shortfalls)
	}

	return transfers, nil
}

func (s *service) Balance(ctx context.Context) error {
	log := logger.FromContext(ctx)

	transfers, e := s.CollectTransfers(ctx)
	if e != nil {
		return e
	}

	for _, transfer := range transfers {
		e := s.db.Tx(func(tx *db.DB) error {
			_, e := s.swapz.SwapExactTarget(ctx, tx,
				core.AccountLiquidation,
				transfer.FromAssetID,
				transfer.ToAssetID,
				transfer.Amount,
				transfer.TargetAmount)
			return e
		})
		if e != nil {
			log.WithError(e).
				WithField("from", transfer.FromAssetID).
				WithField("to", transfer.ToAssetID).
				Errorln("balancing transfer aborted")
			return e
		}
	}

	return nil
}

func (s *service) SetDeviationThreshold(ctx context.Context, userID, assetID string, threshold decimal.Decimal) error {
	if threshold.IsNegative() || threshold.GreaterThan(decimal.New(1, 0)) {
		return core.ErrInvalidParameter
	}

	return s.update(ctx, userID, assetID, func(pool *core.LiquidationPool) {
		pool.DeviationThreshold = threshold
	})
}

func (s *service) SetBalanceRatio(ctx context.Context, userID, assetID string, ratio decimal.Decimal) error {
	if ratio.IsNegative() || ratio.GreaterThan(decimal.New(1, 0)) {
		return core.ErrInvalidParameter
	}

	return s.update(ctx, userID, assetID, func(pool *core.LiquidationPool) {
		pool.BalanceRatio = ratio
	})
}

func (s *service) SetMaxIdealBalance(ctx context.Context, userID, assetID string, max decimal.Decimal) error {
	if max.IsNegative() {
		return core.ErrInvalidParameter
	}

	return s.update(ctx, userID, assetID, func(pool *core.LiquidationPool) {
		pool.MaxIdealBalance = max
	})
}

func (s *service) update(ctx context.Context, userID, assetID string, apply func(*core.LiquidationPool)) error {
	if !s.authz.Allowed(ctx, userID) {
		return core.ErrOperationForbidden
	}

	pool, e := s.poolStore.Find(ctx, assetID)
	if e != nil {
		return core.ErrMarketNotFound
	}

	apply(pool)

	return s.db.Tx(func(tx *db.DB) error {
		return s.poolStore.Update(ctx, tx, pool)
	})
}

// maxImbalance largest value first; ties resolve to the smaller asset id
// because the input is pre sorted
func maxImbalance(items []*imbalance) *imbalance {
	best := items[0]
	for _, item := range items[1:] {
		if item.value.GreaterThan(best.value) {
			best = item
		}
	}

	return best
}

func compact(items []*imbalance) []*imbalance {
	out := items[:0]
	for _, item := range items {
		if item.value.IsPositive() {
			out = append(out, item)
		}
	}

	return out
}
