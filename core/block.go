package core

import (
	"context"
	"time"
)

// IBlockService block service interface
//
// blocks are the accrual periods; the block number is derived from wall clock
// time and is monotonically non decreasing
type IBlockService interface {
	CurrentBlock(ctx context.Context) (int64, error)
	GetBlock(ctx context.Context, t time.Time) (int64, error)
}
