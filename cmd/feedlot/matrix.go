package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/confinamento/feedlot-engine/internal/config"
	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/confinamento/feedlot-engine/internal/matrix"
	"github.com/confinamento/feedlot-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMatrixCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Inspect, validate and import the pricing matrix (rate card)",
	}
	cmd.AddCommand(
		newMatrixResolveCmd(c),
		newMatrixValidateCmd(c),
		newMatrixImportCmd(c),
		newMatrixListCmd(c),
	)
	return cmd
}

func newMatrixResolveCmd(c *cli) *cobra.Command {
	var (
		key    domain.MatrixKey
		weight string
		date   string
	)
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Find the pricing row for a lot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := decimal.NewFromString(weight)
			if err != nil {
				return domain.NewValidationError("weight", "%q is not a number", weight)
			}
			day := dateutil.DateOnly(time.Now())
			if date != "" {
				if day, err = dateutil.ParseDate(date); err != nil {
					return err
				}
			}

			store, closeStore, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			row, err := c.resolver(store).Resolve(cmd.Context(), domain.MatrixQuery{Key: key, EntryWeightKg: w, DateRef: day})
			if err != nil {
				return err
			}
			return writeJSON(cmd, row)
		},
	}
	f := cmd.Flags()
	f.StringVar(&key.UnitCode, "unit", "", "unit code")
	f.StringVar(&key.Modalidade, "modalidade", "", "modality: \"Diária\" or \"Arroba Prod.\"")
	f.StringVar(&key.Dieta, "dieta", "", "diet")
	f.StringVar(&key.TipoAnimal, "tipo", "", "animal type")
	f.StringVar(&weight, "weight", "", "entry weight in kg")
	f.StringVar(&date, "date", "", "reference date YYYY-MM-DD (default today)")
	for _, name := range []string{"unit", "modalidade", "dieta", "tipo", "weight"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newMatrixValidateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <matrix.yaml>",
		Short: "Check every row and report overlapping active rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := config.NewInputParser().LoadMatrixFromFile(args[0])
			var oe *domain.OverlapError
			if errors.As(err, &oe) {
				for _, cf := range oe.Conflicts {
					fmt.Fprintf(cmd.OutOrStdout(), "conflict: %s overlaps %s (%s)\n", cf.RowID, cf.ConflictsID, cf.Label)
				}
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d rows OK\n", len(m.Rows))
			return nil
		},
	}
}

func newMatrixImportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "import <matrix.yaml>",
		Short: "Validate a rate-card file and create its rows in the configured store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := config.NewInputParser().LoadMatrixFromFile(args[0])
			if err != nil {
				return err
			}
			store, closeStore, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			created, err := matrix.NewService(store, c.logger).Import(cmd.Context(), m.Rows)
			if err != nil {
				return err
			}
			if c.settings.DB.URL == "" {
				c.logger.Warn("no database configured; imported rows are discarded on exit")
			}
			c.logger.Info("pricing rows imported", zap.String("file", args[0]), zap.Int("rows", len(created)))
			fmt.Fprintf(cmd.OutOrStdout(), "%d rows imported\n", len(created))
			return nil
		},
	}
}

func newMatrixListCmd(c *cli) *cobra.Command {
	var filter matrix.ListFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pricing rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			rows, err := matrix.NewService(store, c.logger).List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			for _, r := range rows {
				state := "active"
				if !r.IsActive {
					state = "inactive"
				}
				label := r.ConcatLabel
				if label == "" {
					label = r.BuildLabel()
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", r.ID, state, label)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.UnitCode, "unit", "", "filter by unit code")
	cmd.Flags().StringVar(&filter.Modalidade, "modalidade", "", "filter by modality")
	cmd.Flags().BoolVar(&filter.ActiveOnly, "active-only", false, "hide soft-disabled rows")
	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
