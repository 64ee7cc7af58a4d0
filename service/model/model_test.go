package model

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
	s := New(nil, nil, nil, denyAll{})

	// out of range params are rejected before anything else
	assert.Equal(t, core.ErrInvalidParameter, s.SetKink(ctx, "admin", "asset", decimal.RequireFromString("1.5")))
	assert.Equal(t, core.ErrInvalidParameter, s.SetKink(ctx, "admin", "asset", decimal.RequireFromString("-0.1")))
	assert.Equal(t, core.ErrInvalidParameter, s.SetBaseRate(ctx, "admin", "asset", decimal.RequireFromString("-1")))
	assert.Equal(t, core.ErrInvalidParameter, s.SetMultiplier(ctx, "admin", "asset", decimal.RequireFromString("-1")))
	assert.Equal(t, core.ErrInvalidParameter, s.SetJumpMultiplier(ctx, "admin", "asset", decimal.RequireFromString("-1")))

	// unauthorized callers are rejected before the store is touched
	assert.Equal(t, core.ErrOperationForbidden, s.SetKink(ctx, "someone", "asset", decimal.RequireFromString("0.8")))
	assert.Equal(t, core.ErrOperationForbidden, s.SetJumpMultiplier(ctx, "someone", "asset", decimal.Zero))
}
