package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Simplici0/cupcost/internal/cli"
	"github.com/Simplici0/cupcost/internal/pricing"
	"github.com/Simplici0/cupcost/internal/scenario"
	"github.com/Simplici0/cupcost/internal/store"
)

func newCalcCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "calc FILE",
		Short: "Calculate prices for a scenario file (.yaml, .toml or .json)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(args[0], force)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), pricing.Calculate(in), opts)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Calculate even when the scenario fails validation")

	return cmd
}

func newSaveCmd(opts *options) *cobra.Command {
	var title, notes string

	cmd := &cobra.Command{
		Use:   "save FILE",
		Short: "Calculate a scenario and store the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(args[0], false)
			if err != nil {
				return err
			}

			st, database, err := openStore(cmd.Context(), opts.dbPath)
			if err != nil {
				return err
			}
			defer database.Close()

			saved, err := st.SaveCalculation(cmd.Context(), store.NewCalculation{
				Title:    title,
				Notes:    notes,
				Currency: opts.currency,
				Input:    in,
				Result:   pricing.Calculate(in),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved calculation %s\n", saved.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "Title for the saved calculation")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func loadInput(path string, force bool) (pricing.Input, error) {
	in, err := scenario.Load(path)
	if err != nil {
		return pricing.Input{}, err
	}
	if err := in.Validate(); err != nil && !force {
		return pricing.Input{}, fmt.Errorf("invalid scenario (use --force to calculate anyway):\n%w", err)
	}
	return in, nil
}

func writeResult(w io.Writer, result pricing.Result, opts *options) error {
	if opts.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		return nil
	}

	fmt.Fprintln(w, cli.RenderTitle("Cost Calculator"))
	fmt.Fprint(w, cli.RenderResult(result, opts.currency))
	return nil
}
