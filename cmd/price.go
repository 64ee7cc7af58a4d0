package cmd

import (
	"lever/core"
	"lever/pkg/number"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

// set-price writes a feed price by hand, mostly for local runs without an
// oracle process
var setPriceCmd = &cobra.Command{
	Use:     "set-price",
	Aliases: []string{"sp"},
	Short:   "write an oracle price",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		assetID, e := cmd.Flags().GetString("asset")
		if e != nil || !govalidator.IsUUID(assetID) {
			panic("invalid asset id")
		}

		priceStr, e := cmd.Flags().GetString("price")
		if e != nil {
			panic(e)
		}

		price := number.Decimal(priceStr)
		if !price.IsPositive() {
			panic("invalid price")
		}

		database := provideDatabase()
		defer database.Close()

		priceStore := providePriceStore(database)

		e = database.Tx(func(tx *db.DB) error {
			return priceStore.Save(ctx, tx, &core.Price{
				AssetID: assetID,
				Price:   price,
			})
		})
		if e != nil {
			cmd.PrintErrln("set price error:", e)
			return
		}

		cmd.Println("price updated:", assetID, price.String())
	},
}

func init() {
	rootCmd.AddCommand(setPriceCmd)

	setPriceCmd.Flags().String("asset", "", "underlying asset id")
	setPriceCmd.Flags().String("price", "", "usd price")
}
