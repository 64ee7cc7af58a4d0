package liquidationpool

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/store/db"
)

type poolStore struct {
	db *db.DB
}

// New new liquidation pool store
func New(db *db.DB) core.ILiquidationPoolStore {
	return &poolStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.LiquidationPool{})
		if err := tx.AutoMigrate(core.LiquidationPool{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *poolStore) Save(ctx context.Context, tx *db.DB, pool *core.LiquidationPool) error {
	if err := tx.Update().Create(pool).Error; err != nil {
		return err
	}
	return nil
}

func (s *poolStore) Find(ctx context.Context, assetID string) (*core.LiquidationPool, error) {
	var pool core.LiquidationPool
	if err := s.db.View().Where("asset_id=?", assetID).First(&pool).Error; err != nil {
		return nil, err
	}

	return &pool, nil
}

func (s *poolStore) All(ctx context.Context) ([]*core.LiquidationPool, error) {
	var pools []*core.LiquidationPool
	if err := s.db.View().Find(&pools).Error; err != nil {
		return nil, err
	}
	return pools, nil
}

func (s *poolStore) Update(ctx context.Context, tx *db.DB, pool *core.LiquidationPool) error {
	version := pool.Version
	pool.Version++
	updates := map[string]interface{}{
		"deviation_threshold": pool.DeviationThreshold,
		"balance_ratio":       pool.BalanceRatio,
		"max_ideal_balance":   pool.MaxIdealBalance,
		"version":             pool.Version,
	}
	update := tx.Update().Model(core.LiquidationPool{}).Where("asset_id=? and version=?", pool.AssetID, version).Updates(updates)
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
