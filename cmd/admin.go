package cmd

import (
	"context"

	"lever/core"
	"lever/pkg/number"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

// set-param routes a governance update to the owning service so the same
// validation and authz run as for any other caller
var setParamCmd = &cobra.Command{
	Use:     "set-param",
	Aliases: []string{"param"},
	Short:   "update a market risk or rate parameter",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		assetID, e := cmd.Flags().GetString("asset")
		if e != nil || !govalidator.IsUUID(assetID) {
			panic("invalid asset id")
		}

		userID, e := cmd.Flags().GetString("user")
		if e != nil {
			panic(e)
		}
		if userID == "" && len(cfg.Admins) > 0 {
			userID = cfg.Admins[0]
		}

		key, e := cmd.Flags().GetString("key")
		if e != nil || key == "" {
			panic("invalid param key")
		}

		value, e := cmd.Flags().GetString("value")
		if e != nil {
			panic(e)
		}

		database := provideDatabase()
		defer database.Close()

		e = applyParam(ctx, database, userID, assetID, key, value)
		if e != nil {
			cmd.PrintErrln("set param error:", e)
			return
		}

		cmd.Println("param updated:", key, "=", value)
	},
}

func applyParam(ctx context.Context, database *db.DB, userID, assetID, key, value string) error {
	modelz := provideModelService(database)
	controllerz := provideControllerService(database)
	balancingz := provideBalancingService(database)
	riskz := provideRiskService(database)

	d := func() decimal.Decimal { return number.Decimal(value) }

	switch key {
	case "kink":
		return modelz.SetKink(ctx, userID, assetID, d())
	case "base-rate":
		return modelz.SetBaseRate(ctx, userID, assetID, d())
	case "multiplier":
		return modelz.SetMultiplier(ctx, userID, assetID, d())
	case "jump-multiplier":
		return modelz.SetJumpMultiplier(ctx, userID, assetID, d())
	case "collateral-factor":
		return controllerz.SetCollateralFactor(ctx, userID, assetID, d())
	case "max-borrow-rate":
		return controllerz.SetMaxBorrowRate(ctx, userID, assetID, d())
	case "interest-factor":
		return controllerz.SetProtocolInterestFactor(ctx, userID, assetID, d())
	case "interest-threshold":
		return controllerz.SetProtocolInterestThreshold(ctx, userID, assetID, d())
	case "borrow-cap":
		return controllerz.SetBorrowCap(ctx, userID, assetID, d())
	case "pause-supply", "resume-supply":
		return controllerz.SetPaused(ctx, userID, assetID, core.OperationSupply, key == "pause-supply")
	case "pause-redeem", "resume-redeem":
		return controllerz.SetPaused(ctx, userID, assetID, core.OperationRedeem, key == "pause-redeem")
	case "pause-borrow", "resume-borrow":
		return controllerz.SetPaused(ctx, userID, assetID, core.OperationBorrow, key == "pause-borrow")
	case "pause-repay", "resume-repay":
		return controllerz.SetPaused(ctx, userID, assetID, core.OperationRepay, key == "pause-repay")
	case "deviation":
		return balancingz.SetDeviationThreshold(ctx, userID, assetID, d())
	case "balance-ratio":
		return balancingz.SetBalanceRatio(ctx, userID, assetID, d())
	case "max-ideal-balance":
		return balancingz.SetMaxIdealBalance(ctx, userID, assetID, d())
	case "max-attempts":
		return riskz.SetMaxAttempts(ctx, userID, assetID, cast.ToInt64(value))
	case "min-partial-sum":
		return riskz.SetMinPartialSum(ctx, userID, assetID, d())
	case "threshold":
		return riskz.SetThreshold(ctx, userID, assetID, d())
	case "liquidation-fee":
		return riskz.SetLiquidationFee(ctx, userID, assetID, d())
	}

	return core.ErrInvalidParameter
}

func init() {
	rootCmd.AddCommand(setParamCmd)

	setParamCmd.Flags().String("asset", "", "underlying asset id")
	setParamCmd.Flags().String("user", "", "acting admin, defaults to the first configured admin")
	setParamCmd.Flags().String("key", "", "param key, e.g. kink, collateral-factor, threshold")
	setParamCmd.Flags().String("value", "", "param value")
}
