package risk

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/store/db"
)

type riskParamsStore struct {
	db *db.DB
}

// New new risk params store
func New(db *db.DB) core.IRiskParamsStore {
	return &riskParamsStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.RiskParams{})
		if err := tx.AutoMigrate(core.RiskParams{}).Error; err != nil {
			return err
		}

		if err := db.Update().Model(core.Liquidation{}).AutoMigrate(core.Liquidation{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *riskParamsStore) Save(ctx context.Context, tx *db.DB, params *core.RiskParams) error {
	if err := tx.Update().Create(params).Error; err != nil {
		return err
	}
	return nil
}

func (s *riskParamsStore) Find(ctx context.Context, assetID string) (*core.RiskParams, error) {
	var params core.RiskParams
	if err := s.db.View().Where("asset_id=?", assetID).First(&params).Error; err != nil {
		return nil, err
	}

	return &params, nil
}

func (s *riskParamsStore) All(ctx context.Context) ([]*core.RiskParams, error) {
	var params []*core.RiskParams
	if err := s.db.View().Find(&params).Error; err != nil {
		return nil, err
	}
	return params, nil
}

func (s *riskParamsStore) Update(ctx context.Context, tx *db.DB, params *core.RiskParams) error {
	version := params.Version
	params.Version++
	updates := map[string]interface{}{
		"max_attempts":    params.MaxAttempts,
		"min_partial_sum": params.MinPartialSum,
		"threshold":       params.Threshold,
		"liquidation_fee": params.LiquidationFee,
		"version":         params.Version,
	}
	update := tx.Update().Model(core.RiskParams{}).Where("asset_id=? and version=?", params.AssetID, version).Updates(updates)
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

type liquidationStore struct {
	db *db.DB
}

// NewLiquidationStore new liquidation record store
func NewLiquidationStore(db *db.DB) core.ILiquidationStore {
	return &liquidationStore{db: db}
}

func (s *liquidationStore) Create(ctx context.Context, tx *db.DB, liquidation *core.Liquidation) error {
	if err := tx.Update().Where("trace_id=?", liquidation.TraceID).FirstOrCreate(liquidation).Error; err != nil {
		return err
	}
	return nil
}

func (s *liquidationStore) FindByUser(ctx context.Context, userID string) ([]*core.Liquidation, error) {
	var liquidations []*core.Liquidation
	if err := s.db.View().Where("user_id=?", userID).Order("id desc").Find(&liquidations).Error; err != nil {
		return nil, err
	}
	return liquidations, nil
}
