package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Simplici0/cupcost/internal/cli"
)

func newHistoryCmd(opts *options) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved calculations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, database, err := openStore(cmd.Context(), opts.dbPath)
			if err != nil {
				return err
			}
			defer database.Close()

			summaries, err := st.ListCalculations(cmd.Context(), query)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOut {
				return json.NewEncoder(out).Encode(summaries)
			}
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No saved calculations.")
				return nil
			}

			table := cli.Table{Headers: []string{"ID", "Created", "Title", "Units", "Base cost", "Monthly cost"}}
			for _, s := range summaries {
				table.Rows = append(table.Rows, []string{
					s.ID,
					s.CreatedAt.Format("2006-01-02 15:04"),
					s.Title,
					cli.FormatQuantity(s.Production),
					cli.FormatUnitCost(s.BaseCostPerCup, s.Currency),
					cli.FormatMoney(s.TotalMonthlyCost, s.Currency),
				})
			}
			fmt.Fprint(out, cli.RenderTable(table))
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Filter by title or notes")

	return cmd
}

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a saved calculation as stored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, database, err := openStore(cmd.Context(), opts.dbPath)
			if err != nil {
				return err
			}
			defer database.Close()

			calc, err := st.GetCalculation(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("load calculation %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if opts.jsonOut {
				return json.NewEncoder(out).Encode(calc)
			}

			fmt.Fprintln(out, cli.RenderTitle(calc.Title))
			fmt.Fprint(out, cli.RenderResult(calc.Result, calc.Currency))
			return nil
		},
	}
}

func newPresetsCmd(opts *options) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List GST rate presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, database, err := openStore(cmd.Context(), opts.dbPath)
			if err != nil {
				return err
			}
			defer database.Close()

			presets, err := st.ListGSTPresets(cmd.Context(), !all)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOut {
				return json.NewEncoder(out).Encode(presets)
			}

			table := cli.Table{Headers: []string{"ID", "Rate", "Description", "Active"}}
			for _, p := range presets {
				active := "yes"
				if !p.Active {
					active = "no"
				}
				table.Rows = append(table.Rows, []string{p.ID, cli.FormatPercent(p.Rate), p.Description, active})
			}
			fmt.Fprint(out, cli.RenderTable(table))
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Include inactive presets")

	return cmd
}
