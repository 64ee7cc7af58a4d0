package ledger

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type ledgerStore struct {
	db *db.DB
}

// New gorm backed currency ledger
func New(db *db.DB) core.ILedger {
	return &ledgerStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Balance{})
		if err := tx.AutoMigrate(core.Balance{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *ledgerStore) FreeBalance(ctx context.Context, assetID, account string) (decimal.Decimal, error) {
	var balance core.Balance
	if err := s.db.View().Where("account=? and asset_id=?", account, assetID).First(&balance).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	return balance.Amount, nil
}

func (s *ledgerStore) Transfer(ctx context.Context, tx *db.DB, assetID, from, to string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	if err := s.sub(ctx, tx, assetID, from, amount); err != nil {
		return err
	}

	return s.add(ctx, tx, assetID, to, amount)
}

func (s *ledgerStore) Deposit(ctx context.Context, tx *db.DB, assetID, account string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	return s.add(ctx, tx, assetID, account, amount)
}

func (s *ledgerStore) Withdraw(ctx context.Context, tx *db.DB, assetID, account string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	return s.sub(ctx, tx, assetID, account, amount)
}

func (s *ledgerStore) add(ctx context.Context, tx *db.DB, assetID, account string, amount decimal.Decimal) error {
	balance, err := s.lock(ctx, tx, assetID, account)
	if err != nil {
		if !gorm.IsRecordNotFoundError(err) {
			return err
		}

		return tx.Update().Create(&core.Balance{
			Account: account,
			AssetID: assetID,
			Amount:  amount,
		}).Error
	}

	return s.set(tx, balance, balance.Amount.Add(amount))
}

func (s *ledgerStore) sub(ctx context.Context, tx *db.DB, assetID, account string, amount decimal.Decimal) error {
	balance, err := s.lock(ctx, tx, assetID, account)
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return core.ErrInsufficientBalance
		}
		return err
	}

	if balance.Amount.LessThan(amount) {
		return core.ErrInsufficientBalance
	}

	return s.set(tx, balance, balance.Amount.Sub(amount))
}

func (s *ledgerStore) lock(ctx context.Context, tx *db.DB, assetID, account string) (*core.Balance, error) {
	var balance core.Balance
	if err := tx.Update().Where("account=? and asset_id=?", account, assetID).First(&balance).Error; err != nil {
		return nil, err
	}

	return &balance, nil
}

func (s *ledgerStore) set(tx *db.DB, balance *core.Balance, amount decimal.Decimal) error {
	version := balance.Version
	updates := map[string]interface{}{
		"amount":  amount,
		"version": version + 1,
	}
	update := tx.Update().Model(core.Balance{}).Where("account=? and asset_id=? and version=?", balance.Account, balance.AssetID, version).Updates(updates)
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
