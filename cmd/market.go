package cmd

import (
	"strings"

	"lever/core"
	"lever/pkg/number"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var addMarketCmd = &cobra.Command{
	Use:     "add-market",
	Aliases: []string{"am"},
	Short:   "add market",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		symbol, e := cmd.Flags().GetString("symbol")
		if e != nil || symbol == "" {
			panic("invalid symbol")
		}
		assetID, e := cmd.Flags().GetString("asset")
		if e != nil || !govalidator.IsUUID(assetID) {
			panic("invalid asset id")
		}
		ctokenAssetID, e := cmd.Flags().GetString("ctoken")
		if e != nil || !govalidator.IsUUID(ctokenAssetID) {
			panic("invalid ctoken asset id")
		}

		flagDecimal := func(name string) decimal.Decimal {
			v, e := cmd.Flags().GetString(name)
			if e != nil {
				panic(e)
			}
			return number.Decimal(v)
		}

		market := &core.Market{
			AssetID:          assetID,
			Symbol:           strings.ToUpper(symbol),
			CTokenAssetID:    ctokenAssetID,
			BorrowIndex:      decimal.New(1, 0),
			InitExchangeRate: flagDecimal("exchange-rate"),
		}

		model := &core.InterestModel{
			AssetID:        assetID,
			Kink:           flagDecimal("kink"),
			BaseRate:       flagDecimal("base-rate"),
			Multiplier:     flagDecimal("multiplier"),
			JumpMultiplier: flagDecimal("jump-multiplier"),
		}

		controller := &core.Controller{
			AssetID:                assetID,
			ProtocolInterestFactor: flagDecimal("interest-factor"),
			MaxBorrowRate:          flagDecimal("max-borrow-rate"),
			CollateralFactor:       flagDecimal("collateral-factor"),
		}

		pool := &core.LiquidationPool{
			AssetID:            assetID,
			DeviationThreshold: flagDecimal("deviation"),
			BalanceRatio:       flagDecimal("balance-ratio"),
		}

		riskParams := &core.RiskParams{
			AssetID:        assetID,
			MaxAttempts:    cast.ToInt64(cmd.Flag("max-attempts").Value.String()),
			MinPartialSum:  flagDecimal("min-partial-sum"),
			Threshold:      flagDecimal("threshold"),
			LiquidationFee: flagDecimal("liquidation-fee"),
		}

		database := provideDatabase()
		defer database.Close()

		marketStore := provideMarketStore(database)
		modelStore := provideModelStore(database)
		controllerStore := provideControllerStore(database)
		poolStore := provideLiquidationPoolStore(database)
		riskStore := provideRiskParamsStore(database)

		e = database.Tx(func(tx *db.DB) error {
			if e := marketStore.Save(ctx, tx, market); e != nil {
				return e
			}
			if e := modelStore.Save(ctx, tx, model); e != nil {
				return e
			}
			if e := controllerStore.Save(ctx, tx, controller); e != nil {
				return e
			}
			if e := poolStore.Save(ctx, tx, pool); e != nil {
				return e
			}
			return riskStore.Save(ctx, tx, riskParams)
		})
		if e != nil {
			cmd.PrintErrln("add market error:", e)
			return
		}

		cmd.Println("market added:", market.Symbol)
	},
}

func init() {
	rootCmd.AddCommand(addMarketCmd)

	addMarketCmd.Flags().String("symbol", "", "market symbol")
	addMarketCmd.Flags().String("asset", "", "underlying asset id")
	addMarketCmd.Flags().String("ctoken", "", "ctoken asset id")
	addMarketCmd.Flags().String("exchange-rate", "1", "initial ctoken exchange rate")
	addMarketCmd.Flags().String("kink", "0.8", "rate curve kink")
	addMarketCmd.Flags().String("base-rate", "0", "base rate per block")
	addMarketCmd.Flags().String("multiplier", "0.000000009", "rate multiplier per block")
	addMarketCmd.Flags().String("jump-multiplier", "0.000000207", "jump multiplier per block")
	addMarketCmd.Flags().String("interest-factor", "0.1", "protocol interest factor")
	addMarketCmd.Flags().String("max-borrow-rate", "0", "max borrow rate per block, 0 for unlimited")
	addMarketCmd.Flags().String("collateral-factor", "0.9", "collateral factor")
	addMarketCmd.Flags().String("deviation", "0.1", "liquidation pool deviation threshold")
	addMarketCmd.Flags().String("balance-ratio", "0.2", "liquidation pool balance ratio")
	addMarketCmd.Flags().String("max-attempts", "3", "max partial liquidation attempts")
	addMarketCmd.Flags().String("min-partial-sum", "100", "min partial liquidation sum in usd")
	addMarketCmd.Flags().String("threshold", "1.03", "liquidation threshold")
	addMarketCmd.Flags().String("liquidation-fee", "1.05", "liquidation fee factor")
}
