// Package jobs holds the background work that runs beside the HTTP server.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shlok-baraskar/skill-swap-hub/internal/config"
	"github.com/shlok-baraskar/skill-swap-hub/internal/service"
	"github.com/shlok-baraskar/skill-swap-hub/pkg/logger/sl"
)

const reconcileBatchSize = 100

// StatsReconciler periodically repairs sessions whose completion stats were
// never applied, closing the gap the two-transaction completion leaves open.
type StatsReconciler struct {
	log      *slog.Logger
	sessions service.SessionService
	cron     *cron.Cron
}

func NewStatsReconciler(log *slog.Logger, sessions service.SessionService) *StatsReconciler {
	return &StatsReconciler{
		log:      log,
		sessions: sessions,
		cron:     cron.New(),
	}
}

// Start schedules the reconciliation run and starts the cron loop.
func (r *StatsReconciler) Start(cfg config.Reconciler) error {
	const op = "internal.jobs.StatsReconciler.Start"

	_, err := r.cron.AddFunc(cfg.CronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		r.Run(ctx)
	})
	if err != nil {
		return err
	}

	r.cron.Start()

	r.log.Info("stats reconciler started",
		slog.String("op", op),
		slog.String("schedule", cfg.CronSpec),
	)

	return nil
}

// Run executes one reconciliation pass.
func (r *StatsReconciler) Run(ctx context.Context) {
	const op = "internal.jobs.StatsReconciler.Run"

	log := r.log.With(slog.String("op", op))

	repaired, err := r.sessions.ReconcileCompletionStats(ctx, reconcileBatchSize)
	if err != nil {
		log.Error("reconciliation pass failed", sl.Err(err))
		return
	}

	if repaired > 0 {
		log.Info("repaired completion stats", slog.Int("sessions", repaired))
	}
}

// Stop stops the cron loop and waits for a running pass to finish.
func (r *StatsReconciler) Stop() {
	<-r.cron.Stop().Done()
}
