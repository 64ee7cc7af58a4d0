package market

import (
	"context"
	"path/filepath"
	"testing"

	"lever/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *db.DB {
	database := db.MustOpen(db.Config{
		Dialect: "sqlite3",
		Host:    filepath.Join(t.TempDir(), "lever.db"),
	})
	require.NoError(t, db.Migrate(database))
	t.Cleanup(func() { database.Close() })
	return database
}

func TestMarketUpdateRoundTrip(t *testing.T) {
	ctx := context.Background()
	database := testDB(t)
	store := New(database)

	market := &core.Market{
		AssetID:          "asset-a",
		Symbol:           "A",
		CTokenAssetID:    "ctoken-a",
		TotalBorrows:     decimal.NewFromInt(90),
		BorrowIndex:      decimal.New(1, 0),
		CTokens:          decimal.NewFromInt(100),
		InitExchangeRate: decimal.New(1, 0),
	}
	require.NoError(t, store.Save(ctx, database, market))

	// zero values must be written out too
	market.TotalBorrows = decimal.Zero
	market.CTokens = decimal.RequireFromString("5.5")
	market.ProtocolInterest = decimal.RequireFromString("1.2")
	require.NoError(t, store.Update(ctx, database, market))

	found, e := store.Find(ctx, "asset-a")
	require.NoError(t, e)
	assert.Equal(t, "0", found.TotalBorrows.String())
	assert.Equal(t, "5.5", found.CTokens.String())
	assert.Equal(t, "1.2", found.ProtocolInterest.String())
	assert.Equal(t, int64(1), found.Version)

	byCToken, e := store.FindByCToken(ctx, "ctoken-a")
	require.NoError(t, e)
	assert.Equal(t, "asset-a", byCToken.AssetID)
}

func TestMarketUpdateStaleVersion(t *testing.T) {
	ctx := context.Background()
	database := testDB(t)
	store := New(database)

	market := &core.Market{
		AssetID:     "asset-a",
		Symbol:      "A",
		BorrowIndex: decimal.New(1, 0),
	}
	require.NoError(t, store.Save(ctx, database, market))
	require.NoError(t, store.Update(ctx, database, market))

	stale := *market
	stale.Version = 0
	assert.Equal(t, db.ErrOptimisticLock, store.Update(ctx, database, &stale))
}
