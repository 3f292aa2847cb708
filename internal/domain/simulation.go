package domain

import (
	"github.com/shopspring/decimal"
)

// Contract pricing modes.
const (
	ModalityDaily       = "Diária"
	ModalityArrobaGain  = "Arroba Prod."
	ModalityUnspecified = ""
)

// SimulationInput holds the per-animal zootechnical and financial parameters of a feedlot lot.
type SimulationInput struct {
	Name string `yaml:"name" json:"name"`

	EntryWeightKg decimal.Decimal `yaml:"entry_weight_kg" json:"entry_weight_kg"`
	DaysOnFeed    int             `yaml:"days_on_feed" json:"days_on_feed"`
	ADGKgDay      decimal.Decimal `yaml:"adg_kg_day" json:"adg_kg_day"`

	// DMIKgDay takes precedence over DMIPctBW when both are present.
	DMIPctBW         *decimal.Decimal `yaml:"dmi_pct_bw,omitempty" json:"dmi_pct_bw,omitempty"`
	DMIKgDay         *decimal.Decimal `yaml:"dmi_kg_day,omitempty" json:"dmi_kg_day,omitempty"`
	UseAverageWeight bool             `yaml:"use_average_weight" json:"use_average_weight"`

	MortalityPct    decimal.Decimal  `yaml:"mortality_pct" json:"mortality_pct"`
	FeedWastePct    decimal.Decimal  `yaml:"feed_waste_pct" json:"feed_waste_pct"`
	CarcassYieldPct *decimal.Decimal `yaml:"carcass_yield_pct,omitempty" json:"carcass_yield_pct,omitempty"`

	SellingPricePerAt  decimal.Decimal  `yaml:"selling_price_per_at" json:"selling_price_per_at"`
	PurchasePricePerAt *decimal.Decimal `yaml:"purchase_price_per_at,omitempty" json:"purchase_price_per_at,omitempty"`
	PurchasePricePerKg *decimal.Decimal `yaml:"purchase_price_per_kg,omitempty" json:"purchase_price_per_kg,omitempty"`
	FeedCostKgDM       decimal.Decimal  `yaml:"feed_cost_kg_dm" json:"feed_cost_kg_dm"`

	HealthCostTotal    decimal.Decimal `yaml:"health_cost_total" json:"health_cost_total"`
	TransportCostTotal decimal.Decimal `yaml:"transport_cost_total" json:"transport_cost_total"`
	FinancialCostTotal decimal.Decimal `yaml:"financial_cost_total" json:"financial_cost_total"`
	DepreciationTotal  decimal.Decimal `yaml:"depreciation_total" json:"depreciation_total"`
	OverheadTotal      decimal.Decimal `yaml:"overhead_total" json:"overhead_total"`

	FixedCostDailyPerHead     decimal.Decimal `yaml:"fixed_cost_daily_per_head" json:"fixed_cost_daily_per_head"`
	AdminOverheadDailyPerHead decimal.Decimal `yaml:"admin_overhead_daily_per_head" json:"admin_overhead_daily_per_head"`

	Negotiation *NegotiationContext `yaml:"negotiation,omitempty" json:"negotiation,omitempty"`
}

// NegotiationContext carries the commercial terms agreed between the rancher and the feedlot.
type NegotiationContext struct {
	Modality     string          `yaml:"modalidade" json:"modalidade"`
	ServicePrice decimal.Decimal `yaml:"service_price" json:"service_price"`
	HeadCount    int             `yaml:"qty" json:"qty"`

	// Quebra between farm scale and feedlot scale on arrival, and on shipment to the abattoir.
	EntryBreakagePct decimal.Decimal `yaml:"entry_breakage_pct" json:"entry_breakage_pct"`
	ExitBreakagePct  decimal.Decimal `yaml:"exit_breakage_pct" json:"exit_breakage_pct"`

	AgioPerHead    decimal.Decimal  `yaml:"agio_r" json:"agio_r"`
	LeanYieldPct   *decimal.Decimal `yaml:"lean_yield_pct,omitempty" json:"lean_yield_pct,omitempty"`
	LeanPricePerAt decimal.Decimal  `yaml:"lean_price_per_at" json:"lean_price_per_at"`

	// Flat lot totals charged to the rancher.
	TransportFee decimal.Decimal `yaml:"transport_fee" json:"transport_fee"`
	AbattoirFee  decimal.Decimal `yaml:"abattoir_fee" json:"abattoir_fee"`
	ICMSFee      decimal.Decimal `yaml:"icms_fee" json:"icms_fee"`

	// Per-head costs borne by the feedlot that are not part of the simulation input.
	OtherFeedlotCostPerHead decimal.Decimal `yaml:"other_feedlot_cost_per_head" json:"other_feedlot_cost_per_head"`
}

// Terms is the negotiation state of a simulation. It is either BaseTerms or NegotiatedTerms.
type Terms interface {
	isTerms()
}

// BaseTerms marks a simulation without usable negotiation data.
type BaseTerms struct {
	Reason string
}

// NegotiatedTerms marks a simulation whose negotiation is complete enough to build both DREs.
type NegotiatedTerms struct {
	NegotiationContext
}

func (BaseTerms) isTerms()       {}
func (NegotiatedTerms) isTerms() {}

// Terms classifies the negotiation context. Missing head count, unknown modality or a
// non-positive service price all degrade to BaseTerms.
func (in *SimulationInput) Terms() Terms {
	n := in.Negotiation
	switch {
	case n == nil:
		return BaseTerms{Reason: "no negotiation context"}
	case n.Modality != ModalityDaily && n.Modality != ModalityArrobaGain:
		return BaseTerms{Reason: "unknown or missing modality"}
	case n.HeadCount <= 0:
		return BaseTerms{Reason: "head count is zero"}
	case !n.ServicePrice.IsPositive():
		return BaseTerms{Reason: "service price is zero"}
	}
	return NegotiatedTerms{NegotiationContext: *n}
}

// Clone returns a deep copy so callers can perturb inputs without aliasing pointer fields.
func (in SimulationInput) Clone() SimulationInput {
	out := in
	out.DMIPctBW = cloneDecimal(in.DMIPctBW)
	out.DMIKgDay = cloneDecimal(in.DMIKgDay)
	out.CarcassYieldPct = cloneDecimal(in.CarcassYieldPct)
	out.PurchasePricePerAt = cloneDecimal(in.PurchasePricePerAt)
	out.PurchasePricePerKg = cloneDecimal(in.PurchasePricePerKg)
	if in.Negotiation != nil {
		n := *in.Negotiation
		n.LeanYieldPct = cloneDecimal(in.Negotiation.LeanYieldPct)
		out.Negotiation = &n
	}
	return out
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

// WeightProjection is the output of the weight projector.
type WeightProjection struct {
	ExitWeightKg    decimal.Decimal `json:"exit_weight_kg"`
	CarcassWeightKg decimal.Decimal `json:"carcass_weight_kg"`
	ArrobasHook     decimal.Decimal `json:"arrobas_hook"`
	ArrobasGain     decimal.Decimal `json:"arrobas_gain"`
	ArrobasLean     decimal.Decimal `json:"arrobas_lean"`
}

// CostBreakdown lists every component of the per-animal total cost.
type CostBreakdown struct {
	PurchaseCost    decimal.Decimal `json:"purchase_cost"`
	FeedCostTotal   decimal.Decimal `json:"feed_cost_total"`
	HealthCost      decimal.Decimal `json:"health_cost"`
	TransportCost   decimal.Decimal `json:"transport_cost"`
	FinancialCost   decimal.Decimal `json:"financial_cost"`
	Depreciation    decimal.Decimal `json:"depreciation"`
	Overhead        decimal.Decimal `json:"overhead"`
	FixedAdminTotal decimal.Decimal `json:"fixed_admin_total"`
	MortalityCost   decimal.Decimal `json:"mortality_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
}

// Sum adds the nine cost components.
func (c CostBreakdown) Sum() decimal.Decimal {
	return c.PurchaseCost.Add(c.FeedCostTotal).
		Add(c.HealthCost).Add(c.TransportCost).Add(c.FinancialCost).
		Add(c.Depreciation).Add(c.Overhead).
		Add(c.FixedAdminTotal).Add(c.MortalityCost)
}

// RancherDRE is the income statement of the cattle owner (pecuarista).
type RancherDRE struct {
	HeadCount int `json:"qty"`

	ArrobasHook decimal.Decimal `json:"arrobas_hook"`
	ArrobasLean decimal.Decimal `json:"arrobas_lean"`
	ArrobasGain decimal.Decimal `json:"arrobas_gain"`

	RevenuePerHead       decimal.Decimal `json:"revenue_per_head"`
	CostLeanPerHead      decimal.Decimal `json:"cost_lean_per_head"`
	CostFatteningPerHead decimal.Decimal `json:"cost_fattening_per_head"`
	FeesPerHead          decimal.Decimal `json:"fees_per_head"`
	ResultPerHead        decimal.Decimal `json:"result_per_head"`

	Revenue       decimal.Decimal `json:"revenue"`
	CostLean      decimal.Decimal `json:"cost_lean"`
	CostFattening decimal.Decimal `json:"cost_fattening"`
	Fees          decimal.Decimal `json:"fees"`
	ResultPerLot  decimal.Decimal `json:"result_per_lot"`

	CostPerArrobaProduced decimal.Decimal `json:"cost_per_arroba_produced"`
	ResultPerArrobaLean   decimal.Decimal `json:"result_per_arroba_lean"`
	MonthlyReturnPct      decimal.Decimal `json:"monthly_return_pct"`
}

// FeedlotDRE is the income statement of the feedlot operator (Boitel/JBS).
type FeedlotDRE struct {
	HeadCount int `json:"qty"`

	RevenuePerHead      decimal.Decimal `json:"revenue_per_head"`
	FeedCostPerHead     decimal.Decimal `json:"feed_cost_per_head"`
	FreightPerHead      decimal.Decimal `json:"freight_per_head"`
	SanitaryPerHead     decimal.Decimal `json:"sanitary_per_head"`
	StructuralPerHead   decimal.Decimal `json:"structural_per_head"`
	OtherCostPerHead    decimal.Decimal `json:"other_cost_per_head"`
	TotalCostPerHead    decimal.Decimal `json:"total_cost_per_head"`
	ResultPerHead       decimal.Decimal `json:"result_per_head"`
	ResultPerArroba     decimal.Decimal `json:"result_per_arroba"`
	ServiceRevenueTotal decimal.Decimal `json:"revenue"`
	TotalCost           decimal.Decimal `json:"total_cost"`
	ResultPerLot        decimal.Decimal `json:"result_jbs"`
}

// SimulationResult is the derived output of a full simulation.
type SimulationResult struct {
	Name string `json:"name,omitempty"`

	WeightProjection
	DMIKgDay decimal.Decimal `json:"dmi_kg_day"`
	CostBreakdown

	Revenue       decimal.Decimal  `json:"revenue"`
	MarginTotal   decimal.Decimal  `json:"margin_total"`
	CostPerAnimal decimal.Decimal  `json:"cost_per_animal"`
	CostPerArroba decimal.Decimal  `json:"cost_per_arroba"`
	Spread        decimal.Decimal  `json:"spread"`
	BreakEven     decimal.Decimal  `json:"break_even"`
	ROIPct        decimal.Decimal  `json:"roi_pct"`
	PaybackDays   *decimal.Decimal `json:"payback_days"`

	ServiceRevenue decimal.Decimal `json:"service_revenue"`
	DrePecuarista  *RancherDRE     `json:"dre_pecuarista,omitempty"`
	DreJBS         *FeedlotDRE     `json:"dre_jbs,omitempty"`

	Degraded       bool   `json:"degraded"`
	DegradedReason string `json:"degraded_reason,omitempty"`
}

// MatrixDREResult pairs both income statements produced from a resolved pricing row.
type MatrixDREResult struct {
	Pecuarista *RancherDRE       `json:"pecuarista"`
	Boitel     *FeedlotDRE       `json:"boitel"`
	Simulation *SimulationResult `json:"simulation"`
}
