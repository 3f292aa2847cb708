package calculation

import (
	"github.com/confinamento/feedlot-engine/internal/domain"
	dec "github.com/confinamento/feedlot-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// CostAggregator sums every per-animal cost component.
type CostAggregator struct{}

// PurchaseCost prices the lean animal per arroba when available, else per kg, else zero.
func (CostAggregator) PurchaseCost(in *domain.SimulationInput, arrobasLean decimal.Decimal) decimal.Decimal {
	switch {
	case in.PurchasePricePerAt != nil:
		return in.PurchasePricePerAt.Mul(arrobasLean)
	case in.PurchasePricePerKg != nil:
		return in.PurchasePricePerKg.Mul(in.EntryWeightKg)
	}
	return decimal.Zero
}

// FixedAdminTotal is the daily structural and administrative charge over the feeding period.
func (CostAggregator) FixedAdminTotal(in *domain.SimulationInput) decimal.Decimal {
	days := decimal.NewFromInt(int64(effectiveDays(in.DaysOnFeed)))
	return in.FixedCostDailyPerHead.Add(in.AdminOverheadDailyPerHead).Mul(days)
}

// Aggregate builds the full breakdown. Mortality is priced as a share of the purchase value.
func (CostAggregator) Aggregate(in *domain.SimulationInput, feedCostTotal, fixedAdminTotal, purchaseCost decimal.Decimal) domain.CostBreakdown {
	c := domain.CostBreakdown{
		PurchaseCost:    purchaseCost,
		FeedCostTotal:   feedCostTotal,
		HealthCost:      in.HealthCostTotal,
		TransportCost:   in.TransportCostTotal,
		FinancialCost:   in.FinancialCostTotal,
		Depreciation:    in.DepreciationTotal,
		Overhead:        in.OverheadTotal,
		FixedAdminTotal: fixedAdminTotal,
		MortalityCost:   dec.PercentOf(purchaseCost, in.MortalityPct),
	}
	c.TotalCost = c.Sum()
	return c
}

// roundBreakdown rounds each component to centavos and recomputes the total from the rounded parts.
func roundBreakdown(c domain.CostBreakdown) domain.CostBreakdown {
	r := domain.CostBreakdown{
		PurchaseCost:    dec.RoundMoney(c.PurchaseCost),
		FeedCostTotal:   dec.RoundMoney(c.FeedCostTotal),
		HealthCost:      dec.RoundMoney(c.HealthCost),
		TransportCost:   dec.RoundMoney(c.TransportCost),
		FinancialCost:   dec.RoundMoney(c.FinancialCost),
		Depreciation:    dec.RoundMoney(c.Depreciation),
		Overhead:        dec.RoundMoney(c.Overhead),
		FixedAdminTotal: dec.RoundMoney(c.FixedAdminTotal),
		MortalityCost:   dec.RoundMoney(c.MortalityCost),
	}
	r.TotalCost = r.Sum()
	return r
}
