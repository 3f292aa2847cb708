package calculation

import (
	"github.com/confinamento/feedlot-engine/internal/domain"
	dec "github.com/confinamento/feedlot-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ValidateInput rejects inputs that cannot produce a meaningful projection. Days on feed are not
// validated; non-positive values project no gain.
func ValidateInput(in *domain.SimulationInput) error {
	if in == nil {
		return domain.NewValidationError("input", "is required")
	}
	if !in.EntryWeightKg.IsPositive() {
		return domain.NewValidationError("entry_weight_kg", "must be greater than zero, got %s", in.EntryWeightKg)
	}
	if in.ADGKgDay.IsNegative() {
		return domain.NewValidationError("adg_kg_day", "cannot be negative, got %s", in.ADGKgDay)
	}
	if err := checkPercent("mortality_pct", in.MortalityPct); err != nil {
		return err
	}
	if err := checkPercent("feed_waste_pct", in.FeedWastePct); err != nil {
		return err
	}
	if in.CarcassYieldPct != nil {
		y := *in.CarcassYieldPct
		if !y.IsPositive() || y.GreaterThan(dec.Hundred()) {
			return domain.NewValidationError("carcass_yield_pct", "must be in (0, 100], got %s", y)
		}
	}
	if in.DMIPctBW != nil && !in.DMIPctBW.IsPositive() {
		return domain.NewValidationError("dmi_pct_bw", "must be greater than zero, got %s", *in.DMIPctBW)
	}
	if in.DMIKgDay != nil && in.DMIKgDay.IsNegative() {
		return domain.NewValidationError("dmi_kg_day", "cannot be negative, got %s", *in.DMIKgDay)
	}

	money := []struct {
		field string
		value decimal.Decimal
	}{
		{"selling_price_per_at", in.SellingPricePerAt},
		{"feed_cost_kg_dm", in.FeedCostKgDM},
		{"health_cost_total", in.HealthCostTotal},
		{"transport_cost_total", in.TransportCostTotal},
		{"financial_cost_total", in.FinancialCostTotal},
		{"depreciation_total", in.DepreciationTotal},
		{"overhead_total", in.OverheadTotal},
		{"fixed_cost_daily_per_head", in.FixedCostDailyPerHead},
		{"admin_overhead_daily_per_head", in.AdminOverheadDailyPerHead},
		{"purchase_price_per_at", dec.ValueOr(in.PurchasePricePerAt, decimal.Zero)},
		{"purchase_price_per_kg", dec.ValueOr(in.PurchasePricePerKg, decimal.Zero)},
	}
	for _, m := range money {
		if m.value.IsNegative() {
			return domain.NewValidationError(m.field, "cannot be negative, got %s", m.value)
		}
	}

	if in.Negotiation != nil {
		return validateNegotiation(in.Negotiation)
	}
	return nil
}

func validateNegotiation(n *domain.NegotiationContext) error {
	if n.HeadCount < 0 {
		return domain.NewValidationError("negotiation.qty", "cannot be negative, got %d", n.HeadCount)
	}
	for field, pct := range map[string]decimal.Decimal{
		"negotiation.entry_breakage_pct": n.EntryBreakagePct,
		"negotiation.exit_breakage_pct":  n.ExitBreakagePct,
	} {
		if pct.IsNegative() || pct.GreaterThanOrEqual(dec.Hundred()) {
			return domain.NewValidationError(field, "must be in [0, 100), got %s", pct)
		}
	}
	if n.LeanYieldPct != nil {
		y := *n.LeanYieldPct
		if !y.IsPositive() || y.GreaterThan(dec.Hundred()) {
			return domain.NewValidationError("negotiation.lean_yield_pct", "must be in (0, 100], got %s", y)
		}
	}
	values := []struct {
		field string
		value decimal.Decimal
	}{
		{"negotiation.service_price", n.ServicePrice},
		{"negotiation.agio_r", n.AgioPerHead},
		{"negotiation.lean_price_per_at", n.LeanPricePerAt},
		{"negotiation.transport_fee", n.TransportFee},
		{"negotiation.abattoir_fee", n.AbattoirFee},
		{"negotiation.icms_fee", n.ICMSFee},
		{"negotiation.other_feedlot_cost_per_head", n.OtherFeedlotCostPerHead},
	}
	for _, v := range values {
		if v.value.IsNegative() {
			return domain.NewValidationError(v.field, "cannot be negative, got %s", v.value)
		}
	}
	return nil
}

func checkPercent(field string, pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(dec.Hundred()) {
		return domain.NewValidationError(field, "must be in [0, 100], got %s", pct)
	}
	return nil
}
