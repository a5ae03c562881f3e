package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type pruner interface {
	PruneCalculations(ctx context.Context, cutoff time.Time) (int64, error)
}

// scheduleRetention registers a job that deletes calculations older than days.
func scheduleRetention(c *cron.Cron, p pruner, days int, spec string) error {
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := pruneOlderThan(ctx, p, days, time.Now()); err != nil {
			slog.Error("retention job failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("add retention job %q: %w", spec, err)
	}
	return nil
}

func pruneOlderThan(ctx context.Context, p pruner, days int, now time.Time) (int64, error) {
	cutoff := now.AddDate(0, 0, -days)
	removed, err := p.PruneCalculations(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	slog.Info("pruned calculations", "removed", removed, "cutoff", cutoff.Format(time.RFC3339))
	return removed, nil
}
