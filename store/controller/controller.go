package controller

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/store/db"
)

type controllerStore struct {
	db *db.DB
}

// New new controller store
func New(db *db.DB) core.IControllerStore {
	return &controllerStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Controller{})
		if err := tx.AutoMigrate(core.Controller{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *controllerStore) Save(ctx context.Context, tx *db.DB, controller *core.Controller) error {
	if err := tx.Update().Create(controller).Error; err != nil {
		return err
	}
	return nil
}

func (s *controllerStore) Find(ctx context.Context, assetID string) (*core.Controller, error) {
	var controller core.Controller
	if err := s.db.View().Where("asset_id=?", assetID).First(&controller).Error; err != nil {
		return nil, err
	}

	return &controller, nil
}

func (s *controllerStore) All(ctx context.Context) ([]*core.Controller, error) {
	var controllers []*core.Controller
	if err := s.db.View().Find(&controllers).Error; err != nil {
		return nil, err
	}
	return controllers, nil
}

func (s *controllerStore) Update(ctx context.Context, tx *db.DB, controller *core.Controller) error {
	version := controller.Version
	controller.Version++
	updates := map[string]interface{}{
		"last_accrual_block":          controller.LastAccrualBlock,
		"protocol_interest_factor":    controller.ProtocolInterestFactor,
		"protocol_interest_threshold": controller.ProtocolInterestThreshold,
		"max_borrow_rate":             controller.MaxBorrowRate,
		"collateral_factor":           controller.CollateralFactor,
		"borrow_cap":                  controller.BorrowCap,
		"supply_paused":               controller.SupplyPaused,
		"redeem_paused":               controller.RedeemPaused,
		"borrow_paused":               controller.BorrowPaused,
		"repay_paused":                controller.RepayPaused,
		"version":                     controller.Version,
	}
	update := tx.Update().Model(core.Controller{}).Where("asset_id=? and version=?", controller.AssetID, version).Updates(updates)
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
