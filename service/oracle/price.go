package oracle

import (
	"context"
	"time"

	"lever/core"

	"github.com/bluele/gcache"
	"github.com/shopspring/decimal"
)

const priceCacheExpiry = 10 * time.Second

type service struct {
	priceStore core.IPriceStore
	cache      gcache.Cache
}

// New new price oracle service
//
// reads the latest feed prices written by the external oracle; a missing or
// non positive price is a hard failure, never a default
func New(priceStore core.IPriceStore) core.IPriceOracleService {
	return &service{
		priceStore: priceStore,
		cache:      gcache.New(64).LRU().Build(),
	}
}

func (s *service) GetUnderlyingPrice(ctx context.Context, assetID string) (decimal.Decimal, error) {
	if v, err := s.cache.Get(assetID); err == nil {
		if price, ok := v.(decimal.Decimal); ok {
			return price, nil
		}
	}

	price, e := s.priceStore.Find(ctx, assetID)
	if e != nil {
		return decimal.Zero, core.ErrInvalidPrice
	}

	if !price.Price.IsPositive() {
		return decimal.Zero, core.ErrInvalidPrice
	}

	_ = s.cache.SetWithExpire(assetID, price.Price, priceCacheExpiry)

	return price.Price, nil
}
