package balancing

import (
	"context"
	"time"

	"lever/core"
	"lever/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/robfig/cron/v3"
)

const checkpointKey = "balancing_last_run"

// Worker liquidation reserve balancing worker
type Worker struct {
	worker.BaseJob
	Config           *core.Config
	PropertyStore    property.Store
	BalancingService core.IBalancingService
	Interval         time.Duration
}

// New new balancing worker
func New(cfg *core.Config,
	propertyStore property.Store,
	balancingService core.IBalancingService) *Worker {
	job := Worker{
		Config:           cfg,
		PropertyStore:    propertyStore,
		BalancingService: balancingService,
		Interval:         10 * time.Minute,
	}

	l, _ := time.LoadLocation(job.Config.App.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 1m"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "balancing")

	v, err := w.PropertyStore.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get error")
		return err
	}

	// the checkpoint survives restarts so the engine never rebalances twice
	// within one interval
	if last := v.Int64(); last > 0 {
		if time.Since(time.Unix(last, 0)) < w.Interval {
			return nil
		}
	}

	if err := w.BalancingService.Balance(ctx); err != nil {
		log.WithError(err).Errorln("balance error")
		return err
	}

	if err := w.PropertyStore.Save(ctx, checkpointKey, time.Now().Unix()); err != nil {
		log.WithError(err).Errorln("property.Save error")
		return err
	}

	return nil
}
