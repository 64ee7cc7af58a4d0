package lend

import (
	"testing"

	"lever/core"

	"github.com/bmizerany/assert"
	"github.com/shopspring/decimal"
)

func newTestMarket() (*core.Market, *core.Controller, *core.InterestModel) {
	market := &core.Market{
		AssetID:      "asset",
		TotalBorrows: decimal.NewFromInt(20000),
		BorrowIndex:  decimal.New(1, 0),
	}

	controller := &core.Controller{
		AssetID:                "asset",
		ProtocolInterestFactor: decimal.RequireFromString("0.1"),
	}

	model := &core.InterestModel{
		AssetID:    "asset",
		Kink:       decimal.RequireFromString("0.8"),
		Multiplier: decimal.RequireFromString("0.000000009"),
	}

	return market, controller, model
}

func TestAccrue(t *testing.T) {
	market, controller, model := newTestMarket()
	cash := decimal.NewFromInt(20000)

	if e := Accrue(market, controller, model, cash, 10); e != nil {
		t.Fatal(e)
	}

	// utilization 0.5, borrow rate 4.5e-9, 10 blocks
	assert.Equal(t, int64(10), controller.LastAccrualBlock)
	assert.Equal(t, "1.000000045", market.BorrowIndex.String())
	assert.Equal(t, "20000.0009", market.TotalBorrows.String())
	assert.Equal(t, "0.00009", market.ProtocolInterest.String())
}

func TestAccrueIdempotent(t *testing.T) {
	market, controller, model := newTestMarket()
	cash := decimal.NewFromInt(20000)

	if e := Accrue(market, controller, model, cash, 10); e != nil {
		t.Fatal(e)
	}

	index := market.BorrowIndex
	borrows := market.TotalBorrows

	if e := Accrue(market, controller, model, cash, 10); e != nil {
		t.Fatal(e)
	}

	assert.Equal(t, index.String(), market.BorrowIndex.String())
	assert.Equal(t, borrows.String(), market.TotalBorrows.String())
}

func TestAccrueMonotoneIndex(t *testing.T) {
	market, controller, model := newTestMarket()
	cash := decimal.NewFromInt(20000)

	prev := market.BorrowIndex
	for _, block := range []int64{1, 5, 6, 100} {
		if e := Accrue(market, controller, model, cash, block); e != nil {
			t.Fatal(e)
		}

		if market.BorrowIndex.LessThan(prev) {
			t.Error("borrow index decreased at block", block)
		}
		prev = market.BorrowIndex
	}
}

func TestAccrueClockMovedBack(t *testing.T) {
	market, controller, model := newTestMarket()
	cash := decimal.NewFromInt(20000)

	if e := Accrue(market, controller, model, cash, 10); e != nil {
		t.Fatal(e)
	}

	e := Accrue(market, controller, model, cash, 5)
	assert.Equal(t, core.ErrClockMovedBack, e)
}

func TestAccrueMaxBorrowRate(t *testing.T) {
	market, controller, model := newTestMarket()
	controller.MaxBorrowRate = decimal.RequireFromString("0.000000001")
	cash := decimal.NewFromInt(20000)

	e := Accrue(market, controller, model, cash, 10)
	assert.Equal(t, core.ErrBorrowRateTooHigh, e)
	assert.Equal(t, int64(0), controller.LastAccrualBlock)
}
