package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Simplici0/cupcost/internal/config"
	"github.com/Simplici0/cupcost/internal/db"
	"github.com/Simplici0/cupcost/internal/httpapi"
	"github.com/Simplici0/cupcost/internal/logging"
	"github.com/Simplici0/cupcost/internal/migrations"
	"github.com/Simplici0/cupcost/internal/seed"
	"github.com/Simplici0/cupcost/internal/store"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logging.Fatal("failed to open database", "error", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database); err != nil {
			logging.Fatal("failed to run database migrations", "error", err)
		}
		stats, err := seed.Run(ctx, database)
		if err != nil {
			logging.Fatal("failed to seed database", "error", err)
		}
		slog.Info("seed completed", "inserts", stats.Inserts)
	}

	st := store.New(database)

	scheduler := cron.New()
	if cfg.RetentionDays > 0 {
		if err := scheduleRetention(scheduler, st, cfg.RetentionDays, cfg.RetentionCron); err != nil {
			logging.Fatal("failed to schedule retention job", "error", err)
		}
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.New(st, slog.Default(), cfg.Currency).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("listening", "addr", srv.Addr, "env", cfg.Env)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal("server stopped", "error", err)
	}
	slog.Info("server stopped")
}
