package main

import (
	"github.com/confinamento/feedlot-engine/internal/calculation"
	"github.com/confinamento/feedlot-engine/internal/config"
	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newSensitivityCmd(c *cli) *cobra.Command {
	var (
		rf         reportFlags
		priceSteps []string
		feedSteps  []string
		priceOnly  bool
	)
	cmd := &cobra.Command{
		Use:   "sensitivity <study.yaml>",
		Short: "Perturb selling price and feed cost and report margin, spread, break-even and ROI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			study, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			priceDeltas, err := parseDeltas("price-deltas", priceSteps)
			if err != nil {
				return err
			}
			feedDeltas, err := parseDeltas("feed-deltas", feedSteps)
			if err != nil {
				return err
			}
			if priceOnly {
				feedDeltas = []decimal.Decimal{decimal.Zero}
			}
			study.Sensitivity = &config.SensitivityConfig{PriceDeltas: priceDeltas, FeedDeltas: feedDeltas}

			report, err := runStudy(cmd.Context(), c.engine(study.Defaults), study, rf.title)
			if err != nil {
				return err
			}
			return rf.emit(cmd.OutOrStdout(), report)
		},
	}
	rf.register(cmd, "sensitivity-csv")
	cmd.Flags().StringSliceVar(&priceSteps, "price-deltas", nil, "selling price steps in percent (default -10,-5,0,5,10)")
	cmd.Flags().StringSliceVar(&feedSteps, "feed-deltas", nil, "feed cost steps in percent (default -10,-5,0,5,10)")
	cmd.Flags().BoolVar(&priceOnly, "price-only", false, "sweep the selling price only")
	return cmd
}

func parseDeltas(flag string, steps []string) ([]decimal.Decimal, error) {
	if len(steps) == 0 {
		return calculation.DefaultDeltas(), nil
	}
	out := make([]decimal.Decimal, 0, len(steps))
	for _, s := range steps {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, domain.NewValidationError(flag, "%q is not a number", s)
		}
		if d.LessThanOrEqual(decimal.NewFromInt(-100)) {
			return nil, domain.NewValidationError(flag, "step %s%% would make a price non-positive", d)
		}
		out = append(out, d)
	}
	return out, nil
}
