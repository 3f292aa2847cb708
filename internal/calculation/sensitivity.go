package calculation

import (
	"context"
	"fmt"

	"github.com/confinamento/feedlot-engine/internal/domain"
	dec "github.com/confinamento/feedlot-engine/pkg/decimal"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// maxParallelScenarios bounds concurrent grid recomputations.
const maxParallelScenarios = 10

// DefaultDeltas returns the conventional ±10% perturbation steps.
func DefaultDeltas() []decimal.Decimal {
	return []decimal.Decimal{
		decimal.NewFromInt(-10),
		decimal.NewFromInt(-5),
		decimal.Zero,
		decimal.NewFromInt(5),
		decimal.NewFromInt(10),
	}
}

// Analyze perturbs the selling price and feed cost by the given percentages and reruns the whole
// simulation. A zero delta leaves the field untouched, so (0, 0) reproduces the baseline exactly.
func (ce *CalculationEngine) Analyze(base domain.SimulationInput, priceDeltaPct, feedDeltaPct decimal.Decimal) (domain.Scenario, error) {
	in := base.Clone()
	if !priceDeltaPct.IsZero() {
		in.SellingPricePerAt = in.SellingPricePerAt.Mul(dec.GrowthFactor(priceDeltaPct))
	}
	if !feedDeltaPct.IsZero() {
		in.FeedCostKgDM = in.FeedCostKgDM.Mul(dec.GrowthFactor(feedDeltaPct))
	}

	res, err := ce.CalculateSimulation(&in)
	if err != nil {
		return domain.Scenario{}, err
	}
	return domain.Scenario{
		Label:      ScenarioLabel(priceDeltaPct, feedDeltaPct),
		PriceDelta: priceDeltaPct,
		FeedDelta:  feedDeltaPct,
		Margin:     res.MarginTotal,
		Spread:     res.Spread,
		BreakEven:  res.BreakEven,
		ROI:        res.ROIPct,
	}, nil
}

// ScenarioLabel renders a short pt-BR description such as "Preço +5% / Ração -10%".
func ScenarioLabel(priceDeltaPct, feedDeltaPct decimal.Decimal) string {
	if priceDeltaPct.IsZero() && feedDeltaPct.IsZero() {
		return "base"
	}
	return fmt.Sprintf("Preço %s%% / Ração %s%%", signed(priceDeltaPct), signed(feedDeltaPct))
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.String()
	}
	return d.String()
}

// SensitivityGrid computes every price × feed combination. Cells are independent and are
// recomputed concurrently; the result does not depend on scheduling order.
func (ce *CalculationEngine) SensitivityGrid(ctx context.Context, base domain.SimulationInput, priceDeltas, feedDeltas []decimal.Decimal) (*domain.SensitivityGrid, error) {
	if len(priceDeltas) == 0 || len(feedDeltas) == 0 {
		return nil, domain.NewValidationError("deltas", "price and feed deltas must not be empty")
	}
	if err := ValidateInput(&base); err != nil {
		return nil, err
	}

	cells := make([][]domain.Scenario, len(priceDeltas))
	for i := range cells {
		cells[i] = make([]domain.Scenario, len(feedDeltas))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelScenarios)
	for i, pd := range priceDeltas {
		for j, fd := range feedDeltas {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				s, err := ce.Analyze(base, pd, fd)
				if err != nil {
					return fmt.Errorf("scenario %s: %w", ScenarioLabel(pd, fd), err)
				}
				cells[i][j] = s
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	grid := &domain.SensitivityGrid{
		PriceDeltas: priceDeltas,
		FeedDeltas:  feedDeltas,
		Cells:       cells,
	}
	grid.Best, grid.Worst = bestAndWorst(cells)
	for i := range cells {
		for j := range cells[i] {
			if cells[i][j].IsBaseline() {
				b := cells[i][j]
				grid.Baseline = &b
			}
		}
	}
	ce.Logger.Debugf("sensitivity grid %dx%d: best %q worst %q", len(priceDeltas), len(feedDeltas), grid.Best.Label, grid.Worst.Label)
	return grid, nil
}

// PriceSweep is the one-dimensional grid over selling price with feed cost held constant.
func (ce *CalculationEngine) PriceSweep(ctx context.Context, base domain.SimulationInput, priceDeltas []decimal.Decimal) (*domain.SensitivityGrid, error) {
	return ce.SensitivityGrid(ctx, base, priceDeltas, []decimal.Decimal{decimal.Zero})
}

// bestAndWorst picks the highest and lowest ROI. Ties keep the first cell in row-major order.
func bestAndWorst(cells [][]domain.Scenario) (best, worst domain.Scenario) {
	first := true
	for _, row := range cells {
		for _, s := range row {
			if first {
				best, worst = s, s
				first = false
				continue
			}
			if s.ROI.GreaterThan(best.ROI) {
				best = s
			}
			if s.ROI.LessThan(worst.ROI) {
				worst = s
			}
		}
	}
	return best, worst
}
