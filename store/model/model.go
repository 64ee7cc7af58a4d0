package model

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/store/db"
)

type modelStore struct {
	db *db.DB
}

// New new interest model store
func New(db *db.DB) core.IInterestModelStore {
	return &modelStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.InterestModel{})
		if err := tx.AutoMigrate(core.InterestModel{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *modelStore) Save(ctx context.Context, tx *db.DB, model *core.InterestModel) error {
	if err := tx.Update().Create(model).Error; err != nil {
		return err
	}
	return nil
}

func (s *modelStore) Find(ctx context.Context, assetID string) (*core.InterestModel, error) {
	var model core.InterestModel
	if err := s.db.View().Where("asset_id=?", assetID).First(&model).Error; err != nil {
		return nil, err
	}

	return &model, nil
}

func (s *modelStore) All(ctx context.Context) ([]*core.InterestModel, error) {
	var models []*core.InterestModel
	if err := s.db.View().Find(&models).Error; err != nil {
		return nil, err
	}
	return models, nil
}

func (s *modelStore) Update(ctx context.Context, tx *db.DB, model *core.InterestModel) error {
	version := model.Version
	model.Version++
	updates := map[string]interface{}{
		"kink":            model.Kink,
		"base_rate":       model.BaseRate,
		"multiplier":      model.Multiplier,
		"jump_multiplier": model.JumpMultiplier,
		"version":         model.Version,
	}
	update := tx.Update().Model(core.InterestModel{}).Where("asset_id=? and version=?", model.AssetID, version).Updates(updates)
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
