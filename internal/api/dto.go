package api

import (
	"github.com/confinamento/feedlot-engine/internal/calculation"
	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Field     string            `json:"field,omitempty"`
	Conflicts []domain.Conflict `json:"conflicts,omitempty"`
}

// SensitivityRequest runs a grid around Input. Empty delta lists use the default steps.
type SensitivityRequest struct {
	Input       domain.SimulationInput `json:"input"`
	PriceDeltas []decimal.Decimal      `json:"price_deltas"`
	FeedDeltas  []decimal.Decimal      `json:"feed_deltas"`
}

// MatrixSimulationRequest resolves a pricing row for Query and computes both DREs from it.
type MatrixSimulationRequest struct {
	Query       domain.MatrixQuery        `json:"query"`
	Base        domain.SimulationInput    `json:"base"`
	Negotiation domain.NegotiationContext `json:"negotiation"`
}

func (r MatrixSimulationRequest) dreInput(row domain.PricingMatrixRow) calculation.MatrixDREInput {
	base := r.Base
	if base.EntryWeightKg.IsZero() {
		base.EntryWeightKg = r.Query.EntryWeightKg
	}
	return calculation.MatrixDREInput{Row: row, Base: base, Negotiation: r.Negotiation}
}

// RowListResponse wraps a rate-card listing.
type RowListResponse struct {
	Items []domain.PricingMatrixRow `json:"items"`
	Total int                       `json:"total"`
}
