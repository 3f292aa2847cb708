package output

import (
	"bytes"
	"encoding/csv"
)

// CSVSummarizer writes one row of KPIs per lot.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Lot", "ExitWeightKg", "ArrobasHook", "ArrobasGain", "DMIKgDay",
		"TotalCost", "Revenue", "Margin", "BreakEven", "Spread", "CostPerArroba", "ROIPct", "PaybackDays",
		"ServiceRevenue", "RancherResultPerLot", "FeedlotResultPerLot", "Degraded",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, lot := range sortedLots(report) {
		r := lot.Result
		rancher, feedlot := "", ""
		if r.DrePecuarista != nil {
			rancher = r.DrePecuarista.ResultPerLot.StringFixed(2)
		}
		if r.DreJBS != nil {
			feedlot = r.DreJBS.ResultPerLot.StringFixed(2)
		}
		row := []string{
			r.Name,
			r.ExitWeightKg.StringFixed(2),
			r.ArrobasHook.StringFixed(4),
			r.ArrobasGain.StringFixed(4),
			r.DMIKgDay.StringFixed(3),
			r.TotalCost.StringFixed(2),
			r.Revenue.StringFixed(2),
			r.MarginTotal.StringFixed(2),
			r.BreakEven.StringFixed(2),
			r.Spread.StringFixed(2),
			r.CostPerArroba.StringFixed(2),
			r.ROIPct.StringFixed(2),
			optionalFixed(r.PaybackDays),
			r.ServiceRevenue.StringFixed(2),
			rancher,
			feedlot,
			boolToString(r.Degraded),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
