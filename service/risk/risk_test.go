package risk

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
	s := New(nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, denyAll{})

	assert.Equal(t, core.ErrInvalidParameter, s.SetMaxAttempts(ctx, "admin", "asset", -1))
	assert.Equal(t, core.ErrInvalidParameter, s.SetMinPartialSum(ctx, "admin", "asset", decimal.RequireFromString("-1")))

	// required coverage must exceed the debt
	assert.Equal(t, core.ErrInvalidParameter, s.SetThreshold(ctx, "admin", "asset", decimal.New(1, 0)))

	// the fee pays the liquidator, below 1 it would burn reserve funds
	assert.Equal(t, core.ErrInvalidParameter, s.SetLiquidationFee(ctx, "admin", "asset", decimal.RequireFromString("0.99")))

	assert.Equal(t, core.ErrOperationForbidden, s.SetMaxAttempts(ctx, "someone", "asset", 3))
	assert.Equal(t, core.ErrOperationForbidden, s.SetThreshold(ctx, "someone", "asset", decimal.RequireFromString("1.03")))
}
