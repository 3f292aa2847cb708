package main

import (
	"context"
	"fmt"
	"io"

	"github.com/confinamento/feedlot-engine/internal/calculation"
	"github.com/confinamento/feedlot-engine/internal/config"
	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/confinamento/feedlot-engine/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type reportFlags struct {
	format    string
	outputDir string
	title     string
}

func (f *reportFlags) register(cmd *cobra.Command, defaultFormat string) {
	cmd.Flags().StringVarP(&f.format, "format", "f", defaultFormat, "output format (console, console-lite, json, csv, sensitivity-csv, html, all)")
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", "", "write a timestamped report file into this directory instead of stdout")
	cmd.Flags().StringVar(&f.title, "title", "", "report title")
}

// emit writes the report to stdout, or to files when an output directory is set.
func (f *reportFlags) emit(w io.Writer, report *output.Report) error {
	if f.outputDir != "" || output.NormalizeFormatName(f.format) == "all" {
		files, err := output.GenerateReport(report, f.format, f.outputDir)
		if err != nil {
			return err
		}
		for _, name := range files {
			fmt.Fprintln(w, name)
		}
		return nil
	}
	fm := output.GetFormatterByName(f.format)
	if fm == nil {
		return fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, f.format)
	}
	b, err := fm.Format(report)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func newSimulateCmd(c *cli) *cobra.Command {
	var rf reportFlags
	cmd := &cobra.Command{
		Use:   "simulate <study.yaml>",
		Short: "Run every lot of a study and print costs, KPIs and both DREs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			study, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			report, err := runStudy(cmd.Context(), c.engine(study.Defaults), study, rf.title)
			if err != nil {
				return err
			}
			c.logger.Info("study simulated", zap.String("file", args[0]), zap.Int("lots", len(report.Lots)))
			return rf.emit(cmd.OutOrStdout(), report)
		},
	}
	rf.register(cmd, "console")
	return cmd
}

// runStudy simulates every lot. When the study declares a sensitivity block each lot also gets a grid.
func runStudy(ctx context.Context, ce *calculation.CalculationEngine, study *config.StudyFile, title string) (*output.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	report := output.NewReport(title, ce.Defaults)
	for i := range study.Simulations {
		in := &study.Simulations[i]
		res, err := ce.CalculateSimulation(in)
		if err != nil {
			return nil, fmt.Errorf("simulation %d (%s): %w", i+1, in.Name, err)
		}
		var grid *domain.SensitivityGrid
		if s := study.Sensitivity; s != nil {
			if grid, err = ce.SensitivityGrid(ctx, *in, s.PriceDeltas, s.FeedDeltas); err != nil {
				return nil, fmt.Errorf("sensitivity %d (%s): %w", i+1, in.Name, err)
			}
		}
		report.Add(res, grid)
	}
	return report, nil
}
