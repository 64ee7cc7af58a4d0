package model

import (
	"context"

	"lever/core"
	"lever/internal/lend"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type service struct {
	db         *db.DB
	modelStore core.IInterestModelStore
	ctrlStore  core.IControllerStore
	authz      core.IAuthzService
}

// New new interest model service
func New(
	database *db.DB,
	modelStore core.IInterestModelStore,
	ctrlStore core.IControllerStore,
	authz core.IAuthzService,
) core.IInterestModelService {
	return &service{
		db:         database,
		modelStore: modelStore,
		ctrlStore:  ctrlStore,
		authz:      authz,
	}
}

func (s *service) BorrowRatePerBlock(ctx context.Context, assetID string, utilizationRate decimal.Decimal) (decimal.Decimal, error) {
	model, e := s.modelStore.Find(ctx, assetID)
	if e != nil {
		return decimal.Zero, core.ErrMarketNotFound
	}

	return lend.GetBorrowRatePerBlock(utilizationRate, model.BaseRate, model.Multiplier, model.JumpMultiplier, model.Kink), nil
}

func (s *service) SupplyRatePerBlock(ctx context.Context, assetID string, utilizationRate decimal.Decimal) (decimal.Decimal, error) {
	model, e := s.modelStore.Find(ctx, assetID)
	if e != nil {
		return decimal.Zero, core.ErrMarketNotFound
	}

	ctrl, e := s.ctrlStore.Find(ctx, assetID)
	if e != nil {
		return decimal.Zero, core.ErrMarketNotFound
	}

	return lend.GetSupplyRatePerBlock(utilizationRate, model.BaseRate, model.Multiplier, model.JumpMultiplier, model.Kink, ctrl.ProtocolInterestFactor), nil
}

func (s *service) SetKink(ctx context.Context, userID, assetID string, kink decimal.Decimal) error {
	if kink.IsNegative() || kink.GreaterThan(decimal.New(1, 0)) {
		return core.ErrInvalidParameter
	}

	return s.update(ctx, userID, assetID, func(model *core.InterestModel) error {
		model.Kink = kink
		return nil
	})
}

func (s *service) SetBaseRate(ctx context.Context, userID, assetID string, rate decimal.Decimal) error {
	if rate.IsNegative() {
		return core.ErrInvalidParameter
	}

	return s.update(ctx, userID, assetID, func(model *core.InterestModel) error {
		// curve must not be degenerate
		if rate.IsZero() && model.Multiplier.IsZero() {
			return core.ErrInvalidParameter
		}

		model.BaseRate = rate
		return nil
	})
}

func (s *service) SetMultiplier(ctx context.Context, userID, assetID string, multiplier decimal.Decimal) error {
	if multiplier.IsNegative() {
		return core.ErrInvalidParameter
	}

	return s.update(ctx, userID, assetID, func(model *core.InterestModel) error {
		if multiplier.IsZero() && model.BaseRate.IsZero() {
			return core.ErrInvalidParameter
		}

		model.Multiplier = multiplier
		return nil
	})
}

func (s *service) SetJumpMultiplier(ctx context.Context, userID, assetID string, multiplier decimal.Decimal) error {
	if multiplier.IsNegative() {
		return core.ErrInvalidParameter
	}

	return s.update(ctx, userID, assetID, func(model *core.InterestModel) error {
		model.JumpMultiplier = multiplier
		return nil
	})
}

func (s *service) update(ctx context.Context, userID, assetID string, apply func(*core.InterestModel) error) error {
	if !s.authz.Allowed(ctx, userID) {
		return core.ErrOperationForbidden
	}

	model, e := s.modelStore.Find(ctx, assetID)
	if e != nil {
		return core.ErrMarketNotFound
	}

	if e := apply(model); e != nil {
		return e
	}

	return s.db.Tx(func(tx *db.DB) error {
		return s.modelStore.Update(ctx, tx, model)
	})
}
