package calculation

import (
	"github.com/confinamento/feedlot-engine/internal/domain"
	dec "github.com/confinamento/feedlot-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// DailyIntakeEstimator derives dry-matter intake and the feed bill.
type DailyIntakeEstimator struct {
	Defaults domain.Defaults
}

// NewDailyIntakeEstimator creates an estimator using the given defaults.
func NewDailyIntakeEstimator(defaults domain.Defaults) DailyIntakeEstimator {
	return DailyIntakeEstimator{Defaults: defaults.OrStandard()}
}

// Estimate returns the daily dry-matter intake in kg. A direct DMI value short-circuits the
// body-weight percentage.
func (e DailyIntakeEstimator) Estimate(in *domain.SimulationInput, exitWeightKg decimal.Decimal) decimal.Decimal {
	if in.DMIKgDay != nil {
		return *in.DMIKgDay
	}
	base := exitWeightKg
	if in.UseAverageWeight {
		base = in.EntryWeightKg.Add(exitWeightKg).Div(two)
	}
	return dec.PercentOf(base, dec.ValueOr(in.DMIPctBW, e.Defaults.DMIPctBW))
}

// FeedCostTotal prices the intake over the whole feeding period including waste.
func (e DailyIntakeEstimator) FeedCostTotal(in *domain.SimulationInput, dmiKgDay decimal.Decimal) decimal.Decimal {
	days := decimal.NewFromInt(int64(effectiveDays(in.DaysOnFeed)))
	return dmiKgDay.Mul(days).Mul(in.FeedCostKgDM).Mul(dec.GrowthFactor(in.FeedWastePct))
}
