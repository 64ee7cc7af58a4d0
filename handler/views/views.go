package views

import (
	"lever/core"

	"github.com/shopspring/decimal"
)

// Market market view
type Market struct {
	core.Market
	UtilizationRate    decimal.Decimal `json:"utilization_rate"`
	ExchangeRate       decimal.Decimal `json:"exchange_rate"`
	BorrowRatePerBlock decimal.Decimal `json:"borrow_rate_per_block"`
	SupplyRatePerBlock decimal.Decimal `json:"supply_rate_per_block"`
	Liquidity          decimal.Decimal `json:"liquidity"`
}

// Account account health view
type Account struct {
	UserID          string          `json:"user_id"`
	CollateralValue decimal.Decimal `json:"collateral_value"`
	BorrowValue     decimal.Decimal `json:"borrow_value"`
	Excess          decimal.Decimal `json:"excess"`
	Shortfall       decimal.Decimal `json:"shortfall"`
}
