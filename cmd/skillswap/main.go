package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/shlok-baraskar/skill-swap-hub/internal/config"
	"github.com/shlok-baraskar/skill-swap-hub/internal/jobs"
	"github.com/shlok-baraskar/skill-swap-hub/internal/repository/postgres"
	"github.com/shlok-baraskar/skill-swap-hub/internal/service"
	myhttp "github.com/shlok-baraskar/skill-swap-hub/internal/transport/http"

	"github.com/shlok-baraskar/skill-swap-hub/pkg/logger/sl"
	"github.com/shlok-baraskar/skill-swap-hub/pkg/logger/slogpretty"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()
	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting skill-swap-hub", slog.String("env", cfg.Env))

	errChan := make(chan error, 1)

	db, err := postgres.NewDB(cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %v", err)
	}
	defer func() {
		if err := db.DB().Close(); err != nil {
			log.Error("db close failed", sl.Err(err))
		}
	}()

	userRepo := postgres.NewUserRepository(db.DB(), log)
	skillRepo := postgres.NewSkillRepository(db.DB(), log)
	sessionRepo := postgres.NewSessionRepository(db.DB(), log)
	reviewRepo := postgres.NewReviewRepository(db.DB(), log)
	discussionRepo := postgres.NewDiscussionRepository(db.DB(), log)

	userService := service.NewUserService(log, userRepo)
	skillService := service.NewSkillService(log, skillRepo, userRepo)
	sessionService := service.NewSessionService(log, db.DB(), sessionRepo, skillRepo, userRepo)
	reviewService := service.NewReviewService(log, db.DB(), reviewRepo, sessionRepo, userRepo, skillRepo)
	discussionService := service.NewDiscussionService(log, db.DB(), discussionRepo, userRepo)

	if cfg.Reconciler.Enabled {
		reconciler := jobs.NewStatsReconciler(log, sessionService)
		if err := reconciler.Start(cfg.Reconciler); err != nil {
			return fmt.Errorf("failed to start stats reconciler: %v", err)
		}
		defer reconciler.Stop()
	}

	srv := myhttp.NewServer(log, userService, skillService, sessionService, reviewService, discussionService)
	httpServer := &http.Server{
		Addr:        net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:     srv.Routes(),
		ReadTimeout: cfg.Server.Timeout,
	}

	go startServer(log, httpServer, errChan)

	select {
	case err := <-errChan:
		return fmt.Errorf("http server error: %v", err)

	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down http server: %v", err)
	}

	return nil
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errChan <- fmt.Errorf("error listening and serving: %v", err)
	}
}
