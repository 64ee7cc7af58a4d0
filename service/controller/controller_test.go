package controller

import (
	"context"
	"testing"

	"lever/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type denyAll struct{}

func (denyAll) Allowed(ctx context.Context, userID string) bool { return false }

func TestSetterValidation(t *testing.T) {
	ctx := context.Background()
	s := New(nil, nil, denyAll{})

	// collateral factor must stay inside (0, 1]
	assert.Equal(t, core.ErrInvalidParameter, s.SetCollateralFactor(ctx, "admin", "asset", decimal.Zero))
	assert.Equal(t, core.ErrInvalidParameter, s.SetCollateralFactor(ctx, "admin", "asset", decimal.RequireFromString("1.1")))

	assert.Equal(t, core.ErrInvalidParameter, s.SetMaxBorrowRate(ctx, "admin", "asset", decimal.RequireFromString("-1")))
	assert.Equal(t, core.ErrInvalidParameter, s.SetProtocolInterestFactor(ctx, "admin", "asset", decimal.RequireFromString("1.5")))
	assert.Equal(t, core.ErrInvalidParameter, s.SetProtocolInterestThreshold(ctx, "admin", "asset", decimal.RequireFromString("-1")))
	assert.Equal(t, core.ErrInvalidParameter, s.SetBorrowCap(ctx, "admin", "asset", decimal.RequireFromString("-100")))

	// unauthorized callers stop before the store
	assert.Equal(t, core.ErrOperationForbidden, s.SetCollateralFactor(ctx, "someone", "asset", decimal.RequireFromString("0.9")))
	assert.Equal(t, core.ErrOperationForbidden, s.SetPaused(ctx, "someone", "asset", core.OperationSupply, true))
}
