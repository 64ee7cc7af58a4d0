package lend

import (
	"context"
	"testing"
	"time"
)

func TestGetBlockByTime(t *testing.T) {
	genesis := int64(1603366002)

	block, e := GetBlockByTime(context.Background(), 15, genesis, time.Unix(genesis+150, 0))
	if e != nil {
		t.Error(e)
	}

	if block != 10 {
		t.Error("unexpected block:", block)
	}

	if _, e := GetBlockByTime(context.Background(), 0, genesis, time.Now()); e == nil {
		t.Error("expected error for zero seconds per block")
	}
}
