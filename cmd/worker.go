package cmd

import (
	"context"

	"lever/worker"
	"lever/worker/accrual"
	"lever/worker/balancing"
	"lever/worker/liquidator"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "lever job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		jobs := []worker.IJob{
			accrual.New(provideConfig(),
				database,
				provideMarketStore(database),
				provideBlockService(),
				provideMarketService(database)),
			balancing.New(provideConfig(),
				providePropertyStore(database),
				provideBalancingService(database)),
			liquidator.New(provideConfig(),
				providePositionStore(database),
				provideRiskService(database)),
		}

		for _, job := range jobs {
			if err := job.Start(); err != nil {
				log.Errorln(err)
			}
		}

		ctx, quit := context.WithCancel(ctx)
		signal.WithContextFunc(ctx, func() {
			quit()

			for _, job := range jobs {
				job.Stop()
			}
		})

		log.Infoln("workers started")
		<-ctx.Done()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
