package accrual

import (
	"context"
	"time"

	"lever/core"
	"lever/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// Worker accrual worker
//
// brings every market's compounding state current once per block and sweeps
// accumulated protocol interest into the liquidation reserve
type Worker struct {
	worker.BaseJob
	Config        *core.Config
	DB            *db.DB
	MarketStore   core.IMarketStore
	BlockService  core.IBlockService
	MarketService core.IMarketService
}

// New new accrual worker
func New(cfg *core.Config,
	database *db.DB,
	marketStore core.IMarketStore,
	blockService core.IBlockService,
	marketService core.IMarketService) *Worker {
	job := Worker{
		Config:        cfg,
		DB:            database,
		MarketStore:   marketStore,
		BlockService:  blockService,
		MarketService: marketService,
	}

	l, _ := time.LoadLocation(job.Config.App.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 1s"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "accrual")

	currentBlock, e := w.BlockService.CurrentBlock(ctx)
	if e != nil {
		log.Errorln(e)
		return e
	}

	markets, e := w.MarketStore.All(ctx)
	if e != nil {
		log.Errorln(e)
		return e
	}

	// markets accrue independently, one tx per market
	var g errgroup.Group
	g.SetLimit(4)

	for _, market := range markets {
		market := market
		g.Go(func() error {
			e := w.DB.Tx(func(tx *db.DB) error {
				if e := w.MarketService.AccrueInterest(ctx, tx, market, currentBlock); e != nil {
					return e
				}

				return w.MarketService.SweepProtocolInterest(ctx, tx, market)
			})
			if e != nil {
				log.WithField("asset", market.AssetID).Errorln(e)
			}

			return nil
		})
	}

	return g.Wait()
}
