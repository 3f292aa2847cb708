package domain

import "github.com/shopspring/decimal"

// Scenario is one cell of a sensitivity grid. Scenarios are computed on demand and never stored.
type Scenario struct {
	Label      string          `json:"scenario_label"`
	PriceDelta decimal.Decimal `json:"price_delta"`
	FeedDelta  decimal.Decimal `json:"feed_delta"`
	Margin     decimal.Decimal `json:"margin"`
	Spread     decimal.Decimal `json:"spread"`
	BreakEven  decimal.Decimal `json:"break_even"`
	ROI        decimal.Decimal `json:"roi"`
}

// IsBaseline reports whether the scenario carries no perturbation.
func (s Scenario) IsBaseline() bool {
	return s.PriceDelta.IsZero() && s.FeedDelta.IsZero()
}

// SensitivityGrid holds a price × feed scenario matrix. Rows follow PriceDeltas, columns FeedDeltas.
type SensitivityGrid struct {
	PriceDeltas []decimal.Decimal `json:"price_deltas"`
	FeedDeltas  []decimal.Decimal `json:"feed_deltas"`
	Cells       [][]Scenario      `json:"cells"`
	Baseline    *Scenario         `json:"baseline,omitempty"`
	Best        Scenario          `json:"best"`
	Worst       Scenario          `json:"worst"`
}
