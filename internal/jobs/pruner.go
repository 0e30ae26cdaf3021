// Package jobs runs scheduled maintenance against the snapshot store.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"folio/internal/logger"
	"folio/internal/services"
)

// Pruner periodically deletes stock snapshots older than the retention
// window. The latest snapshot of each symbol is always kept by the store.
type Pruner struct {
	cron       *cron.Cron
	marketData services.MarketDataServicer
	retention  time.Duration
	now        func() time.Time
}

// NewPruner creates a Pruner. A zero retention disables pruning.
func NewPruner(marketData services.MarketDataServicer, retention time.Duration) *Pruner {
	log := cronLogger{log: logger.Get()}
	return &Pruner{
		cron: cron.New(
			cron.WithLogger(log),
			cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
		),
		marketData: marketData,
		retention:  retention,
		now:        time.Now,
	}
}

// Start schedules the prune job on the given cron spec and starts the
// scheduler. Standard five-field specs and descriptors such as "@daily" are
// accepted.
func (p *Pruner) Start(spec string) error {
	if p.retention <= 0 {
		logger.Get().Info("Snapshot pruning disabled")
		return nil
	}
	if _, err := p.cron.AddFunc(spec, p.run); err != nil {
		return fmt.Errorf("invalid prune schedule %q: %w", spec, err)
	}
	p.cron.Start()
	logger.Get().Infow("Snapshot pruning scheduled", "schedule", spec, "retention", p.retention.String())
	return nil
}

// Stop stops the scheduler and returns a context that is done once a
// running job has finished.
func (p *Pruner) Stop() context.Context {
	return p.cron.Stop()
}

// RunOnce prunes immediately and returns the number of deleted snapshots.
func (p *Pruner) RunOnce() (int64, error) {
	cutoff := p.now().Add(-p.retention)
	deleted, err := p.marketData.PruneSnapshots(cutoff)
	if err != nil {
		return 0, err
	}
	logger.Get().Infow("Pruned stock snapshots", "deleted", deleted, "cutoff", cutoff.UTC().Format(time.RFC3339))
	return deleted, nil
}

func (p *Pruner) run() {
	if _, err := p.RunOnce(); err != nil {
		logger.Get().Errorw("Snapshot pruning failed", "error", err.Error())
	}
}

// cronLogger sends scheduler events to zap. Routine scheduler chatter goes
// to debug; recovered job panics go to error.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
