package seed

import (
	"context"
	"database/sql"
	"fmt"
)

type gstPreset struct {
	id          string
	rate        float64
	description string
}

// defaultGSTPresets are the standard GST slabs.
var defaultGSTPresets = []gstPreset{
	{id: "gst-0", rate: 0, description: "Exempt"},
	{id: "gst-5", rate: 5, description: "Reduced"},
	{id: "gst-12", rate: 12, description: "Standard (lower)"},
	{id: "gst-18", rate: 18, description: "Standard"},
	{id: "gst-28", rate: 28, description: "Luxury"},
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, db *sql.DB) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	for _, preset := range defaultGSTPresets {
		if err := ensureGSTPreset(ctx, tx, preset, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureGSTPreset(ctx context.Context, tx *sql.Tx, preset gstPreset, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM gst_presets WHERE id = ? LIMIT 1)`, preset.id).Scan(&exists); err != nil {
		return fmt.Errorf("check gst preset %s existence: %w", preset.id, err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO gst_presets (id, rate, description, active)
		VALUES (?, ?, ?, ?)
	`, preset.id, preset.rate, preset.description, true); err != nil {
		return fmt.Errorf("insert gst preset %s: %w", preset.id, err)
	}
	stats.Inserts++
	return nil
}
