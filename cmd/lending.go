package cmd

import (
	"lever/core"
	"lever/pkg/number"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

// user balance operations submitted from the operator shell. Funds move on
// the internal ledger, so the command only names the user and the amount.
var lendingCmd = &cobra.Command{
	Use:   "op",
	Short: "submit a user operation",
}

var supplyCmd = &cobra.Command{
	Use:   "supply",
	Short: "supply underlying asset and mint ctokens",
	Run: func(cmd *cobra.Command, args []string) {
		runLendingOp(cmd, func(s core.ILendingService) error {
			userID, assetID, amount := lendingOpArgs(cmd)
			return s.Supply(cmd.Context(), userID, assetID, amount)
		})
	},
}

var redeemCmd = &cobra.Command{
	Use:   "redeem",
	Short: "redeem ctokens for the underlying asset",
	Run: func(cmd *cobra.Command, args []string) {
		runLendingOp(cmd, func(s core.ILendingService) error {
			userID, assetID, amount := lendingOpArgs(cmd)
			return s.Redeem(cmd.Context(), userID, assetID, amount)
		})
	},
}

var borrowCmd = &cobra.Command{
	Use:   "borrow",
	Short: "borrow underlying asset",
	Run: func(cmd *cobra.Command, args []string) {
		runLendingOp(cmd, func(s core.ILendingService) error {
			userID, assetID, amount := lendingOpArgs(cmd)
			return s.Borrow(cmd.Context(), userID, assetID, amount)
		})
	},
}

var repayCmd = &cobra.Command{
	Use:   "repay",
	Short: "repay borrowed asset",
	Run: func(cmd *cobra.Command, args []string) {
		runLendingOp(cmd, func(s core.ILendingService) error {
			userID, assetID, amount := lendingOpArgs(cmd)
			return s.Repay(cmd.Context(), userID, assetID, amount)
		})
	},
}

var setCollateralCmd = &cobra.Command{
	Use:   "set-collateral",
	Short: "toggle a supply as collateral",
	Run: func(cmd *cobra.Command, args []string) {
		runLendingOp(cmd, func(s core.ILendingService) error {
			userID, e := cmd.Flags().GetString("user")
			if e != nil || userID == "" {
				panic("invalid user id")
			}
			assetID, e := cmd.Flags().GetString("asset")
			if e != nil || !govalidator.IsUUID(assetID) {
				panic("invalid asset id")
			}
			on := cast.ToBool(cmd.Flag("on").Value.String())
			return s.SetCollateral(cmd.Context(), userID, assetID, on)
		})
	},
}

func lendingOpArgs(cmd *cobra.Command) (userID, assetID string, amount decimal.Decimal) {
	userID, e := cmd.Flags().GetString("user")
	if e != nil || userID == "" {
		panic("invalid user id")
	}
	assetID, e = cmd.Flags().GetString("asset")
	if e != nil || !govalidator.IsUUID(assetID) {
		panic("invalid asset id")
	}
	amountStr, e := cmd.Flags().GetString("amount")
	if e != nil {
		panic(e)
	}
	amount = number.Decimal(amountStr)
	if !amount.IsPositive() {
		panic("invalid amount")
	}
	return userID, assetID, amount
}

func runLendingOp(cmd *cobra.Command, fn func(s core.ILendingService) error) {
	database := provideDatabase()
	defer database.Close()

	if e := fn(provideLendingService(database)); e != nil {
		cmd.PrintErrln("operation error:", e)
		return
	}

	cmd.Println("done")
}

func init() {
	rootCmd.AddCommand(lendingCmd)

	for _, sub := range []*cobra.Command{supplyCmd, redeemCmd, borrowCmd, repayCmd, setCollateralCmd} {
		sub.Flags().String("user", "", "user id")
		sub.Flags().String("asset", "", "underlying asset id")
		lendingCmd.AddCommand(sub)
	}

	for _, sub := range []*cobra.Command{supplyCmd, redeemCmd, borrowCmd, repayCmd} {
		sub.Flags().String("amount", "", "operation amount")
	}

	setCollateralCmd.Flags().String("on", "true", "enable or disable")
}
