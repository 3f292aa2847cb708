package output

import (
	"bytes"
	"fmt"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "FEEDLOT SIMULATION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, lot := range sortedLots(report) {
		r := lot.Result
		fmt.Fprintf(&buf, "%s: Custo=%s Receita=%s Margem=%s ROI=%s\n",
			lotName(r.Name),
			FormatCurrency(r.TotalCost),
			FormatCurrency(r.Revenue),
			FormatCurrency(r.MarginTotal),
			FormatPercentage(r.ROIPct),
		)
		fmt.Fprintf(&buf, "  BreakEven=%s/@ Spread=%s/@ @Produzida=%s\n",
			FormatCurrency(r.BreakEven), FormatCurrency(r.Spread), FormatCurrency(r.CostPerArroba))
		if r.Degraded {
			fmt.Fprintf(&buf, "  (sem DRE: %s)\n", r.DegradedReason)
		}
	}
	rec := AnalyzeLots(report)
	if rec.LotName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (ROI %s)\n", lotName(rec.LotName), FormatPercentage(rec.ROIPct))
	}
	return buf.Bytes(), nil
}

func lotName(name string) string {
	if name == "" {
		return "(sem nome)"
	}
	return name
}
