package output

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best lot.
type Recommendation struct {
	LotName   string
	ROIPct    decimal.Decimal
	Margin    decimal.Decimal
	Spread    decimal.Decimal
	MarginGap decimal.Decimal // margin over the runner-up, zero with a single lot
}

// AnalyzeLots picks the lot with the highest ROI. Ties keep input order.
func AnalyzeLots(report *Report) Recommendation {
	type ranked struct {
		name   string
		roi    decimal.Decimal
		margin decimal.Decimal
		spread decimal.Decimal
	}
	var ranks []ranked
	for _, lot := range report.Lots {
		if lot.Result == nil {
			continue
		}
		r := lot.Result
		ranks = append(ranks, ranked{r.Name, r.ROIPct, r.MarginTotal, r.Spread})
	}
	if len(ranks) == 0 {
		return Recommendation{}
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].roi.GreaterThan(ranks[j].roi) })
	best := ranks[0]
	rec := Recommendation{LotName: best.name, ROIPct: best.roi, Margin: best.margin, Spread: best.spread}
	if len(ranks) > 1 {
		rec.MarginGap = best.margin.Sub(ranks[1].margin)
	}
	return rec
}
