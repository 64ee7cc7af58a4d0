package cmd

import (
	"lever/core"
	accountservice "lever/service/account"
	authzservice "lever/service/authz"
	balancingservice "lever/service/balancing"
	blockservice "lever/service/block"
	controllerservice "lever/service/controller"
	lendingservice "lever/service/lending"
	marketservice "lever/service/market"
	modelservice "lever/service/model"
	oracleservice "lever/service/oracle"
	riskservice "lever/service/risk"
	swapservice "lever/service/swap"
	controllerstore "lever/store/controller"
	ledgerstore "lever/store/ledger"
	liquidationpoolstore "lever/store/liquidationpool"
	marketstore "lever/store/market"
	modelstore "lever/store/model"
	positionstore "lever/store/position"
	pricestore "lever/store/price"
	riskstore "lever/store/risk"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideMarketStore(db *db.DB) core.IMarketStore {
	return marketstore.New(db)
}

func provideModelStore(db *db.DB) core.IInterestModelStore {
	return modelstore.New(db)
}

func provideControllerStore(db *db.DB) core.IControllerStore {
	return controllerstore.New(db)
}

func providePositionStore(db *db.DB) core.IPositionStore {
	return positionstore.New(db)
}

func provideLiquidationPoolStore(db *db.DB) core.ILiquidationPoolStore {
	return liquidationpoolstore.New(db)
}

func provideRiskParamsStore(db *db.DB) core.IRiskParamsStore {
	return riskstore.New(db)
}

func provideLiquidationStore(db *db.DB) core.ILiquidationStore {
	return riskstore.NewLiquidationStore(db)
}

func providePriceStore(db *db.DB) core.IPriceStore {
	return pricestore.New(db)
}

func provideLedger(db *db.DB) core.ILedger {
	return ledgerstore.New(db)
}

// ------------------service------------------------------------

func provideBlockService() core.IBlockService {
	return blockservice.New(provideConfig())
}

func provideAuthzService() core.IAuthzService {
	return authzservice.New(provideConfig())
}

func providePriceService(db *db.DB) core.IPriceOracleService {
	return oracleservice.New(providePriceStore(db))
}

func provideMarketService(db *db.DB) core.IMarketService {
	return marketservice.New(
		provideMarketStore(db),
		provideControllerStore(db),
		provideModelStore(db),
		provideLedger(db))
}

func provideModelService(db *db.DB) core.IInterestModelService {
	return modelservice.New(db,
		provideModelStore(db),
		provideControllerStore(db),
		provideAuthzService())
}

func provideControllerService(db *db.DB) core.IControllerService {
	return controllerservice.New(db,
		provideControllerStore(db),
		provideAuthzService())
}

func provideAccountService(db *db.DB) core.IAccountService {
	return accountservice.New(
		provideMarketStore(db),
		provideControllerStore(db),
		providePositionStore(db),
		provideLedger(db),
		providePriceService(db))
}

func provideLendingService(db *db.DB) core.ILendingService {
	return lendingservice.New(db,
		provideMarketStore(db),
		provideControllerStore(db),
		providePositionStore(db),
		provideLedger(db),
		provideMarketService(db),
		provideAccountService(db),
		provideBlockService())
}

func provideSwapService(db *db.DB) core.ISwapService {
	return swapservice.New(
		provideLedger(db),
		providePriceService(db))
}

func provideBalancingService(db *db.DB) core.IBalancingService {
	return balancingservice.New(db,
		provideLiquidationPoolStore(db),
		provideLedger(db),
		providePriceService(db),
		provideSwapService(db),
		provideAuthzService())
}

func provideRiskService(db *db.DB) core.IRiskService {
	return riskservice.New(db,
		provideMarketStore(db),
		providePositionStore(db),
		provideRiskParamsStore(db),
		provideLiquidationStore(db),
		provideLedger(db),
		providePriceService(db),
		provideMarketService(db),
		provideAccountService(db),
		provideBlockService(),
		provideAuthzService())
}
