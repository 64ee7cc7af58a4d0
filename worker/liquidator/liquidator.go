package liquidator

import (
	"context"
	"sync"
	"time"

	"lever/core"
	"lever/pkg/concurrency"
	"lever/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Worker liquidation trigger worker
//
// scans borrowers and hands unsafe loans to the risk service. The scan itself
// is read only; the write happens inside LiquidateUnsafeLoan.
type Worker struct {
	worker.BaseJob
	Config        *core.Config
	PositionStore core.IPositionStore
	RiskService   core.IRiskService
}

// New new liquidator worker
func New(cfg *core.Config,
	positionStore core.IPositionStore,
	riskService core.IRiskService) *Worker {
	job := Worker{
		Config:        cfg,
		PositionStore: positionStore,
		RiskService:   riskService,
	}

	l, _ := time.LoadLocation(job.Config.App.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 10s"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "liquidator")

	positions, e := w.PositionStore.All(ctx)
	if e != nil {
		log.Errorln(e)
		return e
	}

	golimit := concurrency.NewGoLimit(concurrency.DefaultMax)
	wg := sync.WaitGroup{}

	for _, position := range positions {
		if !position.Principal.IsPositive() {
			continue
		}

		golimit.Add()
		wg.Add(1)
		go func(position *core.Position) {
			defer wg.Done()
			defer golimit.Done()

			w.check(ctx, position)
		}(position)
	}

	wg.Wait()

	return nil
}

func (w *Worker) check(ctx context.Context, position *core.Position) {
	log := logger.FromContext(ctx).
		WithField("worker", "liquidator").
		WithField("user", position.UserID).
		WithField("asset", position.AssetID)

	unsafe, e := w.RiskService.IsUnsafe(ctx, position.UserID, position.AssetID)
	if e != nil {
		log.Errorln(e)
		return
	}

	if !unsafe {
		return
	}

	if _, e := w.RiskService.LiquidateUnsafeLoan(ctx, position.UserID, position.AssetID); e != nil {
		log.Errorln(e)
	}
}
