package output

import (
	"bytes"
	"encoding/csv"
)

// CSVSensitivityExporter flattens every sensitivity grid into one row per scenario.
type CSVSensitivityExporter struct{}

func (c CSVSensitivityExporter) Name() string { return "sensitivity-csv" }

func (c CSVSensitivityExporter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Lot", "Row", "Col", "Scenario", "PriceDeltaPct", "FeedDeltaPct", "Margin", "Spread", "BreakEven", "ROIPct"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, lot := range sortedLots(report) {
		if lot.Sensitivity == nil {
			continue
		}
		for i, cells := range lot.Sensitivity.Cells {
			for j, s := range cells {
				row := []string{
					lot.Result.Name,
					intToString(i),
					intToString(j),
					s.Label,
					s.PriceDelta.String(),
					s.FeedDelta.String(),
					s.Margin.StringFixed(2),
					s.Spread.StringFixed(2),
					s.BreakEven.StringFixed(2),
					s.ROI.StringFixed(2),
				}
				if err := w.Write(row); err != nil {
					return nil, err
				}
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
