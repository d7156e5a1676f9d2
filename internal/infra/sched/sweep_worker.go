// File: internal/infra/sched/sweep_worker.go
package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"alertpe-admin/internal/infra/metrics"
	"alertpe-admin/internal/usecase"
)

// SweepWorker drives the subscription maintenance sweep on a fixed ticker.
// The same sweep is also reachable on demand via POST /scheduler/run; both
// paths go through the use case, so overlap is harmless.
type SweepWorker struct {
	uc       usecase.SweepUseCase
	interval time.Duration
	log      *zerolog.Logger
}

func NewSweepWorker(uc usecase.SweepUseCase, interval time.Duration, logger *zerolog.Logger) *SweepWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	l := logger.With().Str("component", "SweepWorker").Logger()
	return &SweepWorker{uc: uc, interval: interval, log: &l}
}

func (w *SweepWorker) Start(ctx context.Context) {
	t := time.NewTicker(w.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			w.tick(ctx)
		}
	}
}

func (w *SweepWorker) tick(ctx context.Context) {
	res, err := w.uc.Sweep(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("sweep failed")
		return
	}
	metrics.SweepCompleted(res.ExpiredTrials, res.Renewed, res.RemindersCreated)
}
