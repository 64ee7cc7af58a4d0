package lend

import (
	"testing"

	"lever/core"

	"github.com/bmizerany/assert"
	"github.com/shopspring/decimal"
)

func TestBorrowBalance(t *testing.T) {
	market := &core.Market{
		BorrowIndex: decimal.New(1, 0),
	}

	position := &core.Position{
		Principal:     decimal.NewFromInt(100),
		InterestIndex: decimal.New(1, 0),
	}

	// untouched index returns the principal exactly
	balance, e := BorrowBalance(position, market)
	if e != nil {
		t.Fatal(e)
	}
	assert.Equal(t, "100", balance.String())

	market.BorrowIndex = decimal.New(2, 0)
	balance, e = BorrowBalance(position, market)
	if e != nil {
		t.Fatal(e)
	}
	assert.Equal(t, "200", balance.String())

	position.InterestIndex = decimal.RequireFromString("1.25")
	balance, e = BorrowBalance(position, market)
	if e != nil {
		t.Fatal(e)
	}
	assert.Equal(t, "160", balance.String())
}

func TestBorrowBalanceEmpty(t *testing.T) {
	market := &core.Market{BorrowIndex: decimal.New(1, 0)}

	balance, e := BorrowBalance(nil, market)
	if e != nil {
		t.Fatal(e)
	}
	assert.Equal(t, "0", balance.String())

	balance, e = BorrowBalance(&core.Position{}, market)
	if e != nil {
		t.Fatal(e)
	}
	assert.Equal(t, "0", balance.String())
}
