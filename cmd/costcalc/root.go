package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Simplici0/cupcost/internal/config"
	"github.com/Simplici0/cupcost/internal/db"
	"github.com/Simplici0/cupcost/internal/logging"
	"github.com/Simplici0/cupcost/internal/migrations"
	"github.com/Simplici0/cupcost/internal/seed"
	"github.com/Simplici0/cupcost/internal/store"
)

type options struct {
	dbPath   string
	currency string
	jsonOut  bool
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &options{}

	root := &cobra.Command{
		Use:          "costcalc",
		Short:        "Per-unit cost and GST price calculator",
		Long:         "Compute per-unit production cost and tax-inclusive prices from monthly expenses, production volume and raw material usage.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// stdout carries command output.
			slog.SetDefault(logging.New(os.Stderr, cfg.LogLevel))
		},
	}

	root.PersistentFlags().StringVar(&opts.dbPath, "db", cfg.DBPath, "SQLite database path")
	root.PersistentFlags().StringVar(&opts.currency, "currency", cfg.Currency, "Currency code shown next to amounts")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "Print JSON instead of tables")

	root.AddCommand(
		newCalcCmd(opts),
		newSaveCmd(opts),
		newHistoryCmd(opts),
		newShowCmd(opts),
		newPresetsCmd(opts),
	)

	return root
}

// openStore opens the local database, migrating and seeding it first.
func openStore(ctx context.Context, path string) (*store.Store, *sql.DB, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.Up(database); err != nil {
		database.Close()
		return nil, nil, err
	}
	if _, err := seed.Run(ctx, database); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("seed database: %w", err)
	}
	return store.New(database), database, nil
}
