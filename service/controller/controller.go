package controller

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type service struct {
	db        *db.DB
	ctrlStore core.IControllerStore
	authz     core.IAuthzService
}

// New new controller admin service
func New(database *db.DB, ctrlStore core.IControllerStore, authz core.IAuthzService) core.IControllerService {
	return &service{
		db:        database,
		ctrlStore: ctrlStore,
		authz:     authz,
	}
}

func (s *service) SetCollateralFactor(ctx context.Context, userID, assetID string, factor decimal.Decimal) error {
	// (0, 1]
	if !factor.IsPositive() || factor.GreaterThan(decimal.New(1, 0)) {
		return core.ErrInvalidParameter
	}

	return s.update(ctx, userID, assetID, func(ctrl *core.Controller) {
		ctrl.CollateralFactor = factor
	})
}

func (s *service) SetMaxBorrowRate(ctx context.Context, userID, assetID string, rate decimal.Decimal) error {
	if rate.IsNegative() {
		return core.ErrInvalidParameter
	}

	return s.update(ctx, userID, assetID, func(ctrl *core.Controller) {
		ctrl.MaxBorrowRate = rate
	})
}

func (s *service) SetProtocolInterestFactor(ctx context.Context, userID, assetID string, factor decimal.Decimal) error {
	if factor.IsNegative() || factor.GreaterThan(decimal.New(1, 0)) {
		return core.ErrInvalidParameter
	}

	return s.update(ctx, userID, assetID, func(ctrl *core.Controller) {
		ctrl.ProtocolInterestFactor = factor
	})
}

func (s *service) SetProtocolInterestThreshold(ctx context.Context, userID, assetID string, threshold decimal.Decimal) error {
	if threshold.IsNegative() {
		return core.ErrInvalidParameter
	}

	return s.update(ctx, userID, assetID, func(ctrl *core.Controller) {
		ctrl.ProtocolInterestThreshold = threshold
	})
}

func (s *service) SetBorrowCap(ctx context.Context, userID, assetID string, cap decimal.Decimal) error {
	if cap.IsNegative() {
		return core.ErrInvalidParameter
	}

	return s.update(ctx, userID, assetID, func(ctrl *core.Controller) {
		ctrl.BorrowCap = cap
	})
}

func (s *service) SetPaused(ctx context.Context, userID, assetID string, op core.Operation, paused bool) error {
	return s.update(ctx, userID, assetID, func(ctrl *core.Controller) {
		ctrl.SetPaused(op, paused)
	})
}

func (s *service) update(ctx context.Context, userID, assetID string, apply func(*core.Controller)) error {
	if !s.authz.Allowed(ctx, userID) {
		return core.ErrOperationForbidden
	}

	ctrl, e := s.ctrlStore.Find(ctx, assetID)
	if e != nil {
		return core.ErrMarketNotFound
	}

	apply(ctrl)

	return s.db.Tx(func(tx *db.DB) error {
		return s.ctrlStore.Update(ctx, tx, ctrl)
	})
}
