package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the detailed console report with both income statements.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "DETAILED FEEDLOT ECONOMICS ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(report.Defaults) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, lot := range sortedLots(report) {
		r := lot.Result
		fmt.Fprintf(&buf, "LOT %d: %s\n", i+1, lotName(r.Name))
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		writeProjection(&buf, r)
		writeCosts(&buf, r)
		writeKPIs(&buf, r)
		if r.DrePecuarista != nil {
			writeRancherDRE(&buf, r.DrePecuarista)
		}
		if r.DreJBS != nil {
			writeFeedlotDRE(&buf, r.DreJBS)
		}
		if r.Degraded {
			fmt.Fprintf(&buf, "DRE not computed: %s\n\n", r.DegradedReason)
		}
		if lot.Sensitivity != nil {
			writeGrid(&buf, lot.Sensitivity)
		}
		fmt.Fprintln(&buf)
	}

	rec := AnalyzeLots(report)
	if rec.LotName != "" {
		fmt.Fprintln(&buf, "SUMMARY & RECOMMENDATIONS")
		fmt.Fprintln(&buf, "=========================")
		fmt.Fprintf(&buf, "Best lot: %s\n", lotName(rec.LotName))
		fmt.Fprintf(&buf, "ROI: %s  Margin: %s  Spread: %s/@\n", FormatPercentage(rec.ROIPct), FormatCurrency(rec.Margin), FormatCurrency(rec.Spread))
		if !rec.MarginGap.IsZero() {
			fmt.Fprintf(&buf, "Margin over runner-up: %s\n", FormatCurrency(rec.MarginGap))
		}
	}
	return buf.Bytes(), nil
}

func writeProjection(buf *bytes.Buffer, r *domain.SimulationResult) {
	fmt.Fprintln(buf, "WEIGHT PROJECTION:")
	fmt.Fprintf(buf, "  Exit Weight:            %s kg\n", FormatNumber(r.ExitWeightKg, 2))
	fmt.Fprintf(buf, "  Carcass Weight:         %s kg\n", FormatNumber(r.CarcassWeightKg, 2))
	fmt.Fprintf(buf, "  Arrobas (hook):         %s\n", FormatNumber(r.ArrobasHook, 4))
	fmt.Fprintf(buf, "  Arrobas (gain):         %s\n", FormatNumber(r.ArrobasGain, 4))
	fmt.Fprintf(buf, "  Arrobas (lean):         %s\n", FormatNumber(r.ArrobasLean, 4))
	fmt.Fprintf(buf, "  Dry Matter Intake:      %s kg/day\n", FormatNumber(r.DMIKgDay, 3))
	fmt.Fprintln(buf)
}

func writeCosts(buf *bytes.Buffer, r *domain.SimulationResult) {
	fmt.Fprintln(buf, "COST BREAKDOWN (per head):")
	line(buf, "Purchase", r.PurchaseCost)
	line(buf, "Feed", r.FeedCostTotal)
	line(buf, "Health", r.HealthCost)
	line(buf, "Transport", r.TransportCost)
	line(buf, "Financial", r.FinancialCost)
	line(buf, "Depreciation", r.Depreciation)
	line(buf, "Overhead", r.Overhead)
	line(buf, "Fixed + Admin", r.FixedAdminTotal)
	line(buf, "Mortality", r.MortalityCost)
	fmt.Fprintln(buf, "  "+strings.Repeat("-", 40))
	line(buf, "TOTAL COST", r.TotalCost)
	fmt.Fprintln(buf)
}

func writeKPIs(buf *bytes.Buffer, r *domain.SimulationResult) {
	fmt.Fprintln(buf, "RESULTS:")
	line(buf, "Revenue", r.Revenue)
	line(buf, "Margin", r.MarginTotal)
	line(buf, "Break-even (R$/@)", r.BreakEven)
	line(buf, "Spread (R$/@)", r.Spread)
	line(buf, "Cost per @ produced", r.CostPerArroba)
	fmt.Fprintf(buf, "  %-24s %16s\n", "ROI", FormatPercentage(r.ROIPct))
	if r.PaybackDays != nil {
		fmt.Fprintf(buf, "  %-24s %16s\n", "Payback", FormatNumber(*r.PaybackDays, 2)+" dias")
	} else {
		fmt.Fprintf(buf, "  %-24s %16s\n", "Payback", "n/a")
	}
	fmt.Fprintln(buf)
}

func writeRancherDRE(buf *bytes.Buffer, d *domain.RancherDRE) {
	fmt.Fprintf(buf, "DRE PECUARISTA (%d cab.):\n", d.HeadCount)
	cmpLine(buf, "Receita", d.RevenuePerHead, d.Revenue)
	cmpLine(buf, "(-) Custo magro", d.CostLeanPerHead, d.CostLean)
	cmpLine(buf, "(-) Engorda", d.CostFatteningPerHead, d.CostFattening)
	cmpLine(buf, "(-) Taxas", d.FeesPerHead, d.Fees)
	cmpLine(buf, "Resultado", d.ResultPerHead, d.ResultPerLot)
	fmt.Fprintf(buf, "  Custo @ produzida: %s  Resultado/@ magra: %s  Retorno mensal: %s\n\n",
		FormatCurrency(d.CostPerArrobaProduced), FormatCurrency(d.ResultPerArrobaLean), FormatPercentage(d.MonthlyReturnPct))
}

func writeFeedlotDRE(buf *bytes.Buffer, d *domain.FeedlotDRE) {
	qty := decimal.NewFromInt(int64(d.HeadCount))
	fmt.Fprintf(buf, "DRE BOITEL (%d cab.):\n", d.HeadCount)
	cmpLine(buf, "Receita de serviço", d.RevenuePerHead, d.ServiceRevenueTotal)
	cmpLine(buf, "(-) Ração", d.FeedCostPerHead, d.FeedCostPerHead.Mul(qty))
	cmpLine(buf, "(-) Frete", d.FreightPerHead, d.FreightPerHead.Mul(qty))
	cmpLine(buf, "(-) Sanitário", d.SanitaryPerHead, d.SanitaryPerHead.Mul(qty))
	cmpLine(buf, "(-) Estrutura", d.StructuralPerHead, d.StructuralPerHead.Mul(qty))
	cmpLine(buf, "(-) Outros", d.OtherCostPerHead, d.OtherCostPerHead.Mul(qty))
	cmpLine(buf, "Custo total", d.TotalCostPerHead, d.TotalCost)
	cmpLine(buf, "Resultado", d.ResultPerHead, d.ResultPerLot)
	fmt.Fprintf(buf, "  Resultado/@ produzida: %s\n\n", FormatCurrency(d.ResultPerArroba))
}

func writeGrid(buf *bytes.Buffer, g *domain.SensitivityGrid) {
	fmt.Fprintln(buf, "SENSITIVITY (margin, price rows × feed columns):")
	fmt.Fprintf(buf, "%10s", "")
	for _, f := range g.FeedDeltas {
		fmt.Fprintf(buf, " %14s", "Ração "+f.String()+"%")
	}
	fmt.Fprintln(buf)
	for i, cells := range g.Cells {
		fmt.Fprintf(buf, "%10s", "Preço "+g.PriceDeltas[i].String()+"%")
		for _, s := range cells {
			fmt.Fprintf(buf, " %14s", FormatCurrency(s.Margin))
		}
		fmt.Fprintln(buf)
	}
	fmt.Fprintf(buf, "Best: %s (ROI %s)  Worst: %s (ROI %s)\n",
		g.Best.Label, FormatPercentage(g.Best.ROI), g.Worst.Label, FormatPercentage(g.Worst.ROI))
}

func line(buf *bytes.Buffer, label string, v decimal.Decimal) {
	fmt.Fprintf(buf, "  %-24s %16s\n", label, FormatCurrency(v))
}

func cmpLine(buf *bytes.Buffer, label string, perHead, lot decimal.Decimal) {
	fmt.Fprintf(buf, "  %-24s %16s %18s\n", label, FormatCurrency(perHead), FormatCurrency(lot))
}
