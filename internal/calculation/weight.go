package calculation

import (
	"github.com/confinamento/feedlot-engine/internal/domain"
	dec "github.com/confinamento/feedlot-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// WeightProjector derives exit weight, carcass weight and arroba quantities.
type WeightProjector struct {
	Defaults domain.Defaults
}

// NewWeightProjector creates a projector using the given defaults.
func NewWeightProjector(defaults domain.Defaults) WeightProjector {
	return WeightProjector{Defaults: defaults.OrStandard()}
}

// Project never fails; non-positive days on feed project no gain.
func (wp WeightProjector) Project(entryWeightKg, adgKgDay decimal.Decimal, daysOnFeed int, carcassYieldPct *decimal.Decimal) domain.WeightProjection {
	days := decimal.NewFromInt(int64(effectiveDays(daysOnFeed)))
	exit := entryWeightKg.Add(adgKgDay.Mul(days))
	yield := dec.ValueOr(carcassYieldPct, wp.Defaults.CarcassYieldPct)
	carcass := dec.PercentOf(exit, yield)

	arroba := wp.Defaults.ArrobaKg
	return domain.WeightProjection{
		ExitWeightKg:    exit,
		CarcassWeightKg: carcass,
		ArrobasHook:     carcass.Div(arroba),
		ArrobasGain:     exit.Sub(entryWeightKg).Div(arroba),
		ArrobasLean:     entryWeightKg.Div(arroba),
	}
}

func effectiveDays(days int) int {
	if days < 0 {
		return 0
	}
	return days
}
