package calculation

import (
	"github.com/confinamento/feedlot-engine/internal/domain"
	dec "github.com/confinamento/feedlot-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

var thirty = decimal.NewFromInt(30)

// ServiceRevenue resolves the per-head feedlot service charge for a modality. Unknown modalities
// charge nothing.
func ServiceRevenue(modality string, servicePrice, arrobasGain decimal.Decimal, daysOnFeed int) decimal.Decimal {
	switch modality {
	case domain.ModalityArrobaGain:
		return arrobasGain.Mul(servicePrice)
	case domain.ModalityDaily:
		return decimal.NewFromInt(int64(effectiveDays(daysOnFeed))).Mul(servicePrice)
	}
	return decimal.Zero
}

// DualDRECalculator builds the rancher and feedlot income statements from one projection.
type DualDRECalculator struct {
	Defaults domain.Defaults
}

// NewDualDRECalculator creates a DRE calculator using the given defaults.
func NewDualDRECalculator(defaults domain.Defaults) DualDRECalculator {
	return DualDRECalculator{Defaults: defaults.OrStandard()}
}

// dreInputs is what both statements share. Money values are already rounded to centavos.
type dreInputs struct {
	in             *domain.SimulationInput
	terms          domain.NegotiatedTerms
	projection     domain.WeightProjection
	costs          domain.CostBreakdown
	serviceRevenue decimal.Decimal
}

// Rancher computes the pecuarista statement. Per-head figures are computed first and lot figures
// are per-head times head count, except the fees: transport, abattoir and ICMS are flat lot
// amounts, so the lot carries the exact total and the per-head share is rounded for display.
// The per-head result times head count therefore matches the lot result to within half a centavo
// per head, and exactly when the fees split evenly.
func (c DualDRECalculator) Rancher(d dreInputs) *domain.RancherDRE {
	n := d.terms.NegotiationContext
	qty := decimal.NewFromInt(int64(n.HeadCount))
	arroba := c.Defaults.ArrobaKg

	hook := d.projection.ArrobasHook
	if n.ExitBreakagePct.IsPositive() {
		shipped := d.projection.ExitWeightKg.Mul(dec.ShrinkFactor(n.ExitBreakagePct))
		yield := dec.ValueOr(d.in.CarcassYieldPct, c.Defaults.CarcassYieldPct)
		hook = dec.PercentOf(shipped, yield).Div(arroba)
	}

	leanWeight := d.in.EntryWeightKg.Mul(dec.ShrinkFactor(n.EntryBreakagePct))
	if n.LeanYieldPct != nil {
		leanWeight = dec.PercentOf(leanWeight, *n.LeanYieldPct)
	}
	lean := leanWeight.Div(arroba)

	revenue := dec.RoundMoney(hook.Mul(d.in.SellingPricePerAt))
	costLean := dec.RoundMoney(lean.Mul(n.LeanPricePerAt).Add(n.AgioPerHead))
	fattening := d.serviceRevenue
	feeTotal := dec.RoundMoney(n.TransportFee.Add(n.AbattoirFee).Add(n.ICMSFee))
	fees := dec.RoundMoney(dec.SafeDiv(feeTotal, qty))
	result := revenue.Sub(costLean).Sub(fattening).Sub(fees)

	dre := &domain.RancherDRE{
		HeadCount:   n.HeadCount,
		ArrobasHook: dec.RoundArrobas(hook),
		ArrobasLean: dec.RoundArrobas(lean),
		ArrobasGain: dec.RoundArrobas(d.projection.ArrobasGain),

		RevenuePerHead:       revenue,
		CostLeanPerHead:      costLean,
		CostFatteningPerHead: fattening,
		FeesPerHead:          fees,
		ResultPerHead:        result,

		Revenue:       revenue.Mul(qty),
		CostLean:      costLean.Mul(qty),
		CostFattening: fattening.Mul(qty),
		Fees:          feeTotal,
	}
	dre.ResultPerLot = dre.Revenue.Sub(dre.CostLean).Sub(dre.CostFattening).Sub(dre.Fees)

	spent := dre.CostLean.Add(dre.CostFattening).Add(dre.Fees)
	dre.CostPerArrobaProduced = dec.RoundMoney(dec.SafeDiv(spent, d.projection.ArrobasGain.Mul(qty)))
	dre.ResultPerArrobaLean = dec.RoundMoney(dec.SafeDiv(result, lean))

	days := effectiveDays(d.in.DaysOnFeed)
	if days > 0 && costLean.IsPositive() {
		monthly := result.Div(costLean).Mul(thirty.Div(decimal.NewFromInt(int64(days)))).Mul(dec.Hundred())
		dre.MonthlyReturnPct = monthly.Round(2)
	}
	return dre
}

// Feedlot computes the Boitel/JBS statement.
func (c DualDRECalculator) Feedlot(d dreInputs) *domain.FeedlotDRE {
	n := d.terms.NegotiationContext
	qty := decimal.NewFromInt(int64(n.HeadCount))
	costs := d.costs

	dre := &domain.FeedlotDRE{
		HeadCount:         n.HeadCount,
		RevenuePerHead:    d.serviceRevenue,
		FeedCostPerHead:   costs.FeedCostTotal,
		FreightPerHead:    costs.TransportCost,
		SanitaryPerHead:   costs.HealthCost.Add(costs.MortalityCost),
		StructuralPerHead: costs.FixedAdminTotal.Add(costs.Overhead).Add(costs.Depreciation).Add(costs.FinancialCost),
		OtherCostPerHead:  dec.RoundMoney(n.OtherFeedlotCostPerHead),
	}
	dre.TotalCostPerHead = dre.FeedCostPerHead.Add(dre.FreightPerHead).Add(dre.SanitaryPerHead).
		Add(dre.StructuralPerHead).Add(dre.OtherCostPerHead)
	dre.ResultPerHead = dre.RevenuePerHead.Sub(dre.TotalCostPerHead)
	dre.ResultPerArroba = dec.RoundMoney(dec.SafeDiv(dre.ResultPerHead, d.projection.ArrobasGain))

	dre.ServiceRevenueTotal = dre.RevenuePerHead.Mul(qty)
	dre.TotalCost = dre.TotalCostPerHead.Mul(qty)
	dre.ResultPerLot = dre.ResultPerHead.Mul(qty)
	return dre
}
